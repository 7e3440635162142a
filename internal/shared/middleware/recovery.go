package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"presskit-backend/internal/shared/response"
)

// Recovery converts panics into the UNKNOWN_ERROR envelope so even an
// unrecognized failure shape still honors the response contract.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Str("request_id", c.GetString("request_id")).
					Interface("error", err).
					Msg("Panic recovered")

				response.Unknown(c)
				c.Abort()
			}
		}()

		c.Next()
	}
}
