package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"voicescribe/internal/api/errors"
	"voicescribe/internal/api/middleware"
	"voicescribe/internal/api/v1/dto"
	"voicescribe/internal/app"
	"voicescribe/internal/app/audio"
	"voicescribe/internal/app/session"
)

// SessionHandler drives the listening session lifecycle over HTTP. The
// audio itself arrives through the session's spool directory, not the
// request body.
type SessionHandler struct {
	app *app.App
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(a *app.App) *SessionHandler {
	return &SessionHandler{app: a}
}

// Start handles POST /api/v1/session/start.
func (h *SessionHandler) Start(c *gin.Context) {
	var req dto.StartSessionRequest
	if !middleware.ValidateRequest(c, &req) {
		return
	}

	src, err := audio.NewDirSource(req.SpoolDir)
	if err != nil {
		middleware.HandleError(c, errors.NewBadRequestError(err.Error()))
		return
	}

	id, err := h.app.StartListening(src, session.Config{SourceTag: "live"})
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.SessionResponse{
		SessionID: id,
		State:     h.app.SessionState().String(),
	})
}

// Pause handles POST /api/v1/session/pause.
func (h *SessionHandler) Pause(c *gin.Context) {
	if err := h.app.PauseListening(); err != nil {
		h.handleSessionError(c, err)
		return
	}
	h.State(c)
}

// Resume handles POST /api/v1/session/resume.
func (h *SessionHandler) Resume(c *gin.Context) {
	if err := h.app.ResumeListening(); err != nil {
		h.handleSessionError(c, err)
		return
	}
	h.State(c)
}

// Stop handles POST /api/v1/session/stop?archive=true. The archive
// choice belongs to the stop request itself so concurrent sessions on
// the same handler cannot leak the flag between each other.
func (h *SessionHandler) Stop(c *gin.Context) {
	archive := c.Query("archive") == "true"
	if err := h.app.StopListening(archive); err != nil {
		h.handleSessionError(c, err)
		return
	}
	h.State(c)
}

// State handles GET /api/v1/session.
func (h *SessionHandler) State(c *gin.Context) {
	c.JSON(http.StatusOK, dto.SessionResponse{
		SessionID: h.app.SessionID(),
		State:     h.app.SessionState().String(),
	})
}

// handleSessionError maps lifecycle errors onto conflict responses so
// stale UIs get a clear signal instead of a 500.
func (h *SessionHandler) handleSessionError(c *gin.Context, err error) {
	switch err.(type) {
	case *session.InvalidTransitionError:
		middleware.HandleError(c, errors.NewConflictError(err.Error()))
		return
	}
	switch err {
	case app.ErrSessionActive, app.ErrNoActiveSession:
		middleware.HandleError(c, errors.NewConflictError(err.Error()))
	default:
		middleware.HandleError(c, err)
	}
}
