package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"voicescribe/internal/api/errors"
	"voicescribe/internal/api/middleware"
	"voicescribe/internal/api/v1/dto"
	"voicescribe/internal/app"
	"voicescribe/internal/app/export"
)

// TranscriptHandler serves the in-memory ledger and its exports.
type TranscriptHandler struct {
	app *app.App
}

// NewTranscriptHandler creates a new transcript handler.
func NewTranscriptHandler(a *app.App) *TranscriptHandler {
	return &TranscriptHandler{app: a}
}

// List handles GET /api/v1/transcripts.
func (h *TranscriptHandler) List(c *gin.Context) {
	entries := h.app.Ledger.All()
	c.JSON(http.StatusOK, dto.TranscriptsResponse{Count: len(entries), Entries: entries})
}

// Stats handles GET /api/v1/transcripts/stats.
func (h *TranscriptHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.app.Ledger.Stats())
}

// Clear handles DELETE /api/v1/transcripts. The caller must confirm
// explicitly with ?confirm=true.
func (h *TranscriptHandler) Clear(c *gin.Context) {
	confirm := c.Query("confirm") == "true"
	if err := h.app.ClearTranscripts(confirm); err != nil {
		middleware.HandleError(c, errors.NewBadRequestError(err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"cleared": true})
}

// Export handles GET /api/v1/transcripts/export?format=txt|json|csv|xlsx
// and streams the rendered ledger as a download.
func (h *TranscriptHandler) Export(c *gin.Context) {
	format, err := export.ParseFormat(c.DefaultQuery("format", "txt"))
	if err != nil {
		middleware.HandleError(c, errors.NewBadRequestError(err.Error()))
		return
	}

	filename := fmt.Sprintf("transcripts_%s.%s", time.Now().Format("20060102_150405"), format)
	c.Header("Content-Type", format.ContentType())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := export.Write(c.Writer, format, h.app.Ledger.All()); err != nil {
		middleware.HandleError(c, err)
	}
}
