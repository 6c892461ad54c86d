package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"voicescribe/internal/api/errors"
	"voicescribe/internal/api/middleware"
	"voicescribe/internal/api/v1/dto"
	"voicescribe/internal/app"
)

// ArchiveHandler serves archived sessions from the transcript archive.
type ArchiveHandler struct {
	app *app.App
}

// NewArchiveHandler creates a new archive handler.
func NewArchiveHandler(a *app.App) *ArchiveHandler {
	return &ArchiveHandler{app: a}
}

// Recent handles GET /api/v1/archive?limit=N.
func (h *ArchiveHandler) Recent(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		middleware.HandleError(c, errors.NewBadRequestError("limit must be a positive integer"))
		return
	}

	sessions, err := h.app.Archive.RecentSessions(limit)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

// Get handles GET /api/v1/archive/:id.
func (h *ArchiveHandler) Get(c *gin.Context) {
	sessionID := c.Param("id")
	entries, err := h.app.Archive.GetSession(sessionID)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	if len(entries) == 0 {
		middleware.HandleError(c, errors.NewNotFoundError("session "+sessionID))
		return
	}
	c.JSON(http.StatusOK, dto.ArchivedSessionResponse{SessionID: sessionID, Entries: entries})
}
