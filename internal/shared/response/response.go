package response

import (
	"errors"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Response is the uniform envelope every endpoint returns.
// Clients branch on the single `success` discriminant.
type Response struct {
	Success   bool                `json:"success"`
	Data      interface{}         `json:"data,omitempty"`
	ErrorCode string              `json:"error_code,omitempty"`
	Message   string              `json:"message,omitempty"`
	Details   map[string][]string `json:"details,omitempty"`
}

// Machine-readable error codes.
const (
	CodeValidation       = "VALIDATION_ERROR"
	CodeAuthentication   = "AUTHENTICATION_ERROR"
	CodeUserExists       = "USER_EXISTS"
	CodeProfileNotFound  = "PROFILE_NOT_FOUND"
	CodePresskitNotFound = "PRESSKIT_NOT_FOUND"
	CodeTemplateNotFound = "TEMPLATE_NOT_FOUND"
	CodeQuotaExceeded    = "QUOTA_EXCEEDED"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeForbidden        = "FORBIDDEN"
	CodeInternal         = "INTERNAL_ERROR"
	CodeUnknown          = "UNKNOWN_ERROR"
)

// User-facing messages. These are part of the public API contract and
// stay in Spanish; clients render them verbatim.
const (
	MsgValidation         = "Datos de entrada inválidos"
	MsgInvalidCredentials = "Credenciales de acceso inválidas"
	MsgUserExists         = "El usuario ya está registrado"
	MsgProfileNotFound    = "Perfil de usuario no encontrado"
	MsgPresskitNotFound   = "Presskit no encontrado"
	MsgTemplateNotFound   = "Plantilla no encontrada"
	MsgQuotaExceeded      = "Límite de presskits alcanzado"
	MsgUnauthorized       = "No autenticado"
	MsgInternal           = "Error interno del servidor"
	MsgUnknown            = "Error desconocido"
	MsgSignedOut          = "Sesión cerrada exitosamente"
)

// Success writes {success:true, data}. Status is caller-specified:
// 200 for reads/updates, 201 for resource creation.
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Data:    data,
	})
}

// Error writes {success:false, error_code, message}.
func Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, Response{
		Success:   false,
		ErrorCode: code,
		Message:   message,
	})
}

// ErrorWithDetails adds the per-field detail map used by validation
// failures.
func ErrorWithDetails(c *gin.Context, statusCode int, code, message string, details map[string][]string) {
	c.JSON(statusCode, Response{
		Success:   false,
		ErrorCode: code,
		Message:   message,
		Details:   details,
	})
}

// ValidationError writes a 400 VALIDATION_ERROR envelope with one
// message list per offending field path.
func ValidationError(c *gin.Context, err error) {
	ErrorWithDetails(c, 400, CodeValidation, MsgValidation, ValidationDetails(err))
}

// Internal writes the redacted 500. The raw backend error never
// reaches the client.
func Internal(c *gin.Context) {
	Error(c, 500, CodeInternal, MsgInternal)
}

// Unknown is reserved for failures with no recognizable shape
// (panics surfaced by the recovery middleware).
func Unknown(c *gin.Context) {
	Error(c, 500, CodeUnknown, MsgUnknown)
}

// ValidationDetails flattens an ozzo-validation error tree into
// {"field.path": ["message", ...]}. Nested struct errors get
// dot-joined paths, e.g. "content_data.biography".
func ValidationDetails(err error) map[string][]string {
	details := make(map[string][]string)
	flattenValidation("", err, details)
	return details
}

func flattenValidation(prefix string, err error, out map[string][]string) {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		for field, fieldErr := range verrs {
			path := field
			if prefix != "" {
				path = prefix + "." + field
			}
			flattenValidation(path, fieldErr, out)
		}
		return
	}

	if prefix == "" {
		prefix = "body"
	}
	out[prefix] = append(out[prefix], err.Error())
}
