package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"presskit-backend/internal/domains/analytics"
	"presskit-backend/internal/domains/presskit"
	"presskit-backend/internal/shared/middleware"
	"presskit-backend/internal/shared/response"
	"presskit-backend/pkg/logger"
)

// PresskitHandler owns the presskit endpoints, both the owner-scoped
// CRUD surface and the public slug paths.
type PresskitHandler struct {
	service presskit.Service
}

func NewPresskitHandler(service presskit.Service) *PresskitHandler {
	return &PresskitHandler{service: service}
}

// ========================================
// OWNER ENDPOINTS
// ========================================

// Create handles POST /presskits. New presskits start as drafts.
func (h *PresskitHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, response.MsgUnauthorized)
		return
	}

	var req presskit.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeValidation,
			response.MsgValidation, map[string][]string{"body": {err.Error()}})
		return
	}

	result, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// List handles GET /presskits, newest first.
func (h *PresskitHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, response.MsgUnauthorized)
		return
	}

	presskits, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, presskits)
}

// GetByID handles GET /presskits/:id.
func (h *PresskitHandler) GetByID(c *gin.Context) {
	userID, presskitID, ok := h.ownerAndID(c)
	if !ok {
		return
	}

	result, err := h.service.GetByID(c.Request.Context(), userID, presskitID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Update handles PUT /presskits/:id with a partial patch.
func (h *PresskitHandler) Update(c *gin.Context) {
	userID, presskitID, ok := h.ownerAndID(c)
	if !ok {
		return
	}

	var req presskit.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeValidation,
			response.MsgValidation, map[string][]string{"body": {err.Error()}})
		return
	}

	result, err := h.service.Update(c.Request.Context(), userID, presskitID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Publish handles POST /presskits/:id/publish.
func (h *PresskitHandler) Publish(c *gin.Context) {
	userID, presskitID, ok := h.ownerAndID(c)
	if !ok {
		return
	}

	result, err := h.service.Publish(c.Request.Context(), userID, presskitID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Archive handles POST /presskits/:id/archive.
func (h *PresskitHandler) Archive(c *gin.Context) {
	userID, presskitID, ok := h.ownerAndID(c)
	if !ok {
		return
	}

	result, err := h.service.Archive(c.Request.Context(), userID, presskitID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Delete handles DELETE /presskits/:id.
func (h *PresskitHandler) Delete(c *gin.Context) {
	userID, presskitID, ok := h.ownerAndID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, presskitID); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Presskit eliminado"})
}

// Stats handles GET /presskits/:id/stats.
func (h *PresskitHandler) Stats(c *gin.Context) {
	userID, presskitID, ok := h.ownerAndID(c)
	if !ok {
		return
	}

	stats, err := h.service.Stats(c.Request.Context(), userID, presskitID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, stats)
}

// ========================================
// PUBLIC ENDPOINTS
// ========================================

// GetPublic handles GET /p/:slug. No authentication; only published
// and public presskits resolve.
func (h *PresskitHandler) GetPublic(c *gin.Context) {
	result, err := h.service.GetPublic(c.Request.Context(), c.Param("slug"), requestMeta(c))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Download handles POST /p/:slug/download.
func (h *PresskitHandler) Download(c *gin.Context) {
	result, err := h.service.RegisterDownload(c.Request.Context(), c.Param("slug"), requestMeta(c))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// ========================================
// HELPERS
// ========================================

// ownerAndID pulls the authenticated user and the :id path parameter,
// writing the error envelope itself when either is missing.
func (h *PresskitHandler) ownerAndID(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, response.MsgUnauthorized)
		return uuid.Nil, uuid.Nil, false
	}

	presskitID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeValidation,
			response.MsgValidation, map[string][]string{"id": {"ID de presskit inválido"}})
		return uuid.Nil, uuid.Nil, false
	}

	return userID, presskitID, true
}

func requestMeta(c *gin.Context) analytics.RequestMeta {
	return analytics.RequestMeta{
		UserAgent: c.Request.UserAgent(),
		IPAddress: c.ClientIP(),
		Referrer:  c.Request.Referer(),
	}
}

// handleError maps domain failures to the error taxonomy, in policy
// order: validation, quota, not-found, internal.
func (h *PresskitHandler) handleError(c *gin.Context, err error) {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		response.ValidationError(c, err)
		return
	}

	switch {
	case errors.Is(err, presskit.ErrQuotaExceeded):
		response.Error(c, http.StatusForbidden, response.CodeQuotaExceeded, response.MsgQuotaExceeded)
	case errors.Is(err, presskit.ErrProfileNotFound):
		response.Error(c, http.StatusNotFound, response.CodeProfileNotFound, response.MsgProfileNotFound)
	case errors.Is(err, presskit.ErrPresskitNotFound):
		response.Error(c, http.StatusNotFound, response.CodePresskitNotFound, response.MsgPresskitNotFound)
	default:
		// The raw error is logged, never surfaced.
		logger.Error("presskit handler", err)
		response.Internal(c)
	}
}
