package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"presskit-backend/internal/domains/subscription"
	"presskit-backend/internal/shared/middleware"
	"presskit-backend/internal/shared/response"
	"presskit-backend/pkg/logger"
)

// SubscriptionHandler owns the plan catalog and current-subscription
// endpoints.
type SubscriptionHandler struct {
	service subscription.Service
}

func NewSubscriptionHandler(service subscription.Service) *SubscriptionHandler {
	return &SubscriptionHandler{service: service}
}

// ListPlans handles GET /subscription/plans. Public.
func (h *SubscriptionHandler) ListPlans(c *gin.Context) {
	plans, err := h.service.ListPlans(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, plans)
}

// Current handles GET /subscription. Requires authentication.
func (h *SubscriptionHandler) Current(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, response.MsgUnauthorized)
		return
	}

	current, err := h.service.Current(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, current)
}

func (h *SubscriptionHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, subscription.ErrProfileNotFound):
		response.Error(c, http.StatusNotFound, response.CodeProfileNotFound, response.MsgProfileNotFound)
	default:
		logger.Error("subscription handler", err)
		response.Internal(c)
	}
}
