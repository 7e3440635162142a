package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"presskit-backend/internal/domains/user"
	"presskit-backend/internal/shared/middleware"
	"presskit-backend/internal/shared/response"
	"presskit-backend/pkg/logger"
)

// UserHandler owns the auth and profile endpoints. Stateless: it only
// carries its dependencies.
type UserHandler struct {
	service user.Service
}

func NewUserHandler(service user.Service) *UserHandler {
	return &UserHandler{service: service}
}

// ========================================
// AUTHENTICATION ENDPOINTS
// ========================================

// SignUp handles POST /auth/signup.
// Pipeline: parse -> validate -> one service call -> envelope.
func (h *UserHandler) SignUp(c *gin.Context) {
	var req user.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeValidation,
			response.MsgValidation, map[string][]string{"body": {err.Error()}})
		return
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		response.ValidationError(c, err)
		return
	}

	result, err := h.service.SignUp(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// SignIn handles POST /auth/signin.
func (h *UserHandler) SignIn(c *gin.Context) {
	var req user.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeValidation,
			response.MsgValidation, map[string][]string{"body": {err.Error()}})
		return
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		response.ValidationError(c, err)
		return
	}

	result, err := h.service.SignIn(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// SignOut handles POST /auth/signout. Requires authentication.
func (h *UserHandler) SignOut(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, response.MsgUnauthorized)
		return
	}

	if err := h.service.SignOut(c.Request.Context(), userID); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": response.MsgSignedOut})
}

// Refresh handles POST /auth/refresh.
func (h *UserHandler) Refresh(c *gin.Context) {
	var req user.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeValidation,
			response.MsgValidation, map[string][]string{"body": {err.Error()}})
		return
	}

	if err := req.Validate(); err != nil {
		response.ValidationError(c, err)
		return
	}

	result, err := h.service.RefreshSession(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// ========================================
// PROFILE ENDPOINTS
// ========================================

// GetProfile handles GET /users/profile. A missing profile row is a
// distinguished 404, not an internal error.
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, response.MsgUnauthorized)
		return
	}

	profile, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, profile)
}

// UpdateProfile handles PUT /users/profile with a partial patch.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, response.MsgUnauthorized)
		return
	}

	var req user.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeValidation,
			response.MsgValidation, map[string][]string{"body": {err.Error()}})
		return
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		response.ValidationError(c, err)
		return
	}

	profile, err := h.service.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, profile)
}

// DeleteProfile handles DELETE /users/profile.
func (h *UserHandler) DeleteProfile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, response.MsgUnauthorized)
		return
	}

	if err := h.service.DeleteProfile(c.Request.Context(), userID); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Perfil eliminado"})
}

// ========================================
// ERROR CLASSIFICATION
// ========================================

// handleError maps domain failures to the error taxonomy, in policy
// order: validation, authentication, conflict, not-found, internal.
func (h *UserHandler) handleError(c *gin.Context, err error) {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		response.ValidationError(c, err)
		return
	}

	switch {
	case errors.Is(err, user.ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, response.CodeAuthentication, response.MsgInvalidCredentials)
	case errors.Is(err, user.ErrEmailAlreadyExists):
		response.Error(c, http.StatusConflict, response.CodeUserExists, response.MsgUserExists)
	case errors.Is(err, user.ErrInvalidToken):
		response.Error(c, http.StatusUnauthorized, response.CodeAuthentication, "Sesión inválida o expirada")
	case errors.Is(err, user.ErrProfileNotFound):
		response.Error(c, http.StatusNotFound, response.CodeProfileNotFound, response.MsgProfileNotFound)
	default:
		// The raw error is logged, never surfaced.
		logger.Error("user handler", err)
		response.Internal(c)
	}
}
