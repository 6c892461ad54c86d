package handlers

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"voicescribe/internal/api/errors"
	"voicescribe/internal/api/middleware"
	"voicescribe/internal/api/v1/dto"
	"voicescribe/internal/app"
	"voicescribe/internal/app/audio"
	"voicescribe/internal/app/ledger"
	"voicescribe/internal/app/recognition"
)

// RecognizeHandler runs one-shot recognition over an uploaded WAV file.
type RecognizeHandler struct {
	app *app.App
}

// NewRecognizeHandler creates a new recognize handler.
func NewRecognizeHandler(a *app.App) *RecognizeHandler {
	return &RecognizeHandler{app: a}
}

// Upload handles POST /api/v1/recognize with a multipart "file" part.
// A text outcome is appended to the ledger with source "upload"; no-speech
// and failure outcomes are reported but not recorded.
func (h *RecognizeHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		middleware.HandleError(c, errors.NewBadRequestError("multipart field 'file' is required"))
		return
	}

	// A fresh temp file per request; concurrent uploads may share a
	// client-side filename.
	tmp, err := os.CreateTemp("", "upload-*.wav")
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	if err := c.SaveUploadedFile(fileHeader, tmpPath); err != nil {
		middleware.HandleError(c, err)
		return
	}

	buf, err := audio.ReadFile(tmpPath)
	if err != nil {
		middleware.HandleError(c, errors.NewBadRequestError("could not decode WAV file: "+err.Error()))
		return
	}

	out := h.app.RecognizeBuffer(c.Request.Context(), buf)
	if out.Kind == recognition.OutcomeText {
		h.app.Ledger.Append(ledger.NewEntry(out.Text, out.Provider, out.Language, "upload"))
	}

	c.JSON(http.StatusOK, dto.NewRecognizeResponse(out))
}
