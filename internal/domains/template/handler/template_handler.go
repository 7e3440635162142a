package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"presskit-backend/internal/domains/presskit"
	"presskit-backend/internal/domains/template"
	"presskit-backend/internal/shared/response"
	"presskit-backend/pkg/logger"
)

// TemplateHandler owns the read-only template catalog endpoints.
type TemplateHandler struct {
	service template.Service
}

func NewTemplateHandler(service template.Service) *TemplateHandler {
	return &TemplateHandler{service: service}
}

// List handles GET /templates, optionally filtered by ?type=.
func (h *TemplateHandler) List(c *gin.Context) {
	templateType := presskit.TemplateType(c.Query("type"))
	if templateType != "" && !templateType.IsValid() {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeValidation,
			response.MsgValidation, map[string][]string{"type": {"Tipo de plantilla inválido"}})
		return
	}

	templates, err := h.service.List(c.Request.Context(), templateType)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, templates)
}

// GetByID handles GET /templates/:id.
func (h *TemplateHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeValidation,
			response.MsgValidation, map[string][]string{"id": {"ID de plantilla inválido"}})
		return
	}

	t, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, t)
}

func (h *TemplateHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, template.ErrTemplateNotFound):
		response.Error(c, http.StatusNotFound, response.CodeTemplateNotFound, response.MsgTemplateNotFound)
	default:
		logger.Error("template handler", err)
		response.Internal(c)
	}
}
