package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"voicescribe/internal/api/errors"
	"voicescribe/internal/api/middleware"
	"voicescribe/internal/api/v1/dto"
	"voicescribe/internal/app"
)

// ProviderHandler serves the provider and language catalogs.
type ProviderHandler struct {
	app *app.App
}

// NewProviderHandler creates a new provider handler.
func NewProviderHandler(a *app.App) *ProviderHandler {
	return &ProviderHandler{app: a}
}

// List handles GET /api/v1/providers.
func (h *ProviderHandler) List(c *gin.Context) {
	providers := h.app.Registry.List()
	out := make([]dto.ProviderResponse, 0, len(providers))
	for _, p := range providers {
		info := p.Info()
		_, configured := h.app.Settings.Credential(info.ID)
		out = append(out, dto.ProviderResponse{ProviderInfo: info, Configured: configured})
	}
	c.JSON(http.StatusOK, gin.H{"providers": out})
}

// Get handles GET /api/v1/providers/:id.
func (h *ProviderHandler) Get(c *gin.Context) {
	id := c.Param("id")
	p, err := h.app.Registry.Resolve(id)
	if err != nil {
		middleware.HandleError(c, errors.NewNotFoundError("provider "+id))
		return
	}
	info := p.Info()
	_, configured := h.app.Settings.Credential(info.ID)
	c.JSON(http.StatusOK, dto.ProviderResponse{ProviderInfo: info, Configured: configured})
}
