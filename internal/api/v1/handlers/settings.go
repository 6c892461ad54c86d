package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"voicescribe/internal/api/errors"
	"voicescribe/internal/api/middleware"
	"voicescribe/internal/api/v1/dto"
	"voicescribe/internal/app"
	"voicescribe/internal/app/recognition"
)

// SettingsHandler exposes the settings store over HTTP.
type SettingsHandler struct {
	app *app.App
}

// NewSettingsHandler creates a new settings handler.
func NewSettingsHandler(a *app.App) *SettingsHandler {
	return &SettingsHandler{app: a}
}

// Get handles GET /api/v1/settings.
func (h *SettingsHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, dto.SettingsResponse{
		ActiveProvider:      h.app.Settings.ActiveProvider(),
		ActiveLanguage:      h.app.Settings.ActiveLanguage(),
		ConfiguredProviders: h.app.Settings.ConfiguredProviders(),
	})
}

// Update handles PUT /api/v1/settings. Provider and language are each
// optional; whichever is present is validated against its catalog before
// anything changes.
func (h *SettingsHandler) Update(c *gin.Context) {
	var req dto.UpdateSettingsRequest
	if !middleware.ValidateRequest(c, &req) {
		return
	}

	if req.Provider != "" {
		if err := h.app.SetActiveProvider(req.Provider); err != nil {
			middleware.HandleError(c, errors.NewBadRequestError(err.Error()))
			return
		}
	}
	if req.Language != "" {
		if err := h.app.SetActiveLanguage(req.Language); err != nil {
			middleware.HandleError(c, errors.NewBadRequestError(err.Error()))
			return
		}
	}

	h.Get(c)
}

// SetCredential handles PUT /api/v1/settings/credentials/:provider.
func (h *SettingsHandler) SetCredential(c *gin.Context) {
	providerID := c.Param("provider")
	if _, err := h.app.Registry.Resolve(providerID); err != nil {
		middleware.HandleError(c, errors.NewNotFoundError("provider "+providerID))
		return
	}

	var req dto.CredentialRequest
	if !middleware.ValidateRequest(c, &req) {
		return
	}

	h.app.Settings.SetCredential(providerID, req.Credential)
	c.JSON(http.StatusOK, gin.H{"provider": providerID, "configured": true})
}

// Languages handles GET /api/v1/languages.
func (h *SettingsHandler) Languages(c *gin.Context) {
	out := make([]dto.LanguageResponse, 0, len(recognition.SupportedLanguages))
	for _, l := range recognition.SupportedLanguages {
		out = append(out, dto.LanguageResponse{Code: l.Code, Name: l.Name})
	}
	c.JSON(http.StatusOK, gin.H{"languages": out})
}
