package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"voicescribe/internal/api/v1/routes"
	"voicescribe/internal/app"
	"voicescribe/internal/app/audio"
	"voicescribe/internal/app/converter"
	"voicescribe/internal/app/ledger"
	"voicescribe/internal/app/recognition"
	"voicescribe/internal/app/repository"
	"voicescribe/internal/app/session"
	"voicescribe/internal/app/settings"

	_ "voicescribe/internal/app/api/google"
	_ "voicescribe/internal/app/api/wit"
)

func newTestRouter(t *testing.T) (*gin.Engine, *app.App) {
	return newRouterWith(t, nil, nil)
}

func newRouterWith(t *testing.T, overrides map[string]map[string]interface{}, arc repository.TranscriptArchive) (*gin.Engine, *app.App) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	store := settings.Load(filepath.Join(t.TempDir(), "config.json"), logger)

	registry, err := recognition.BuildRegistry(overrides)
	require.NoError(t, err)

	orch := recognition.NewOrchestrator(registry, store, logger)
	led := ledger.New()
	conv := converter.New(orch, led, logger)

	a := app.NewApp(store, registry, orch, led, arc, conv, logger)
	t.Cleanup(func() { a.Close() })

	router := gin.New()
	routes.RegisterRoutes(router.Group("/api/v1"), a)
	return router, a
}

// stubArchive records what each stop handed to the archive.
type stubArchive struct {
	mu    sync.Mutex
	saved map[string][]ledger.Entry
}

func newStubArchive() *stubArchive {
	return &stubArchive{saved: make(map[string][]ledger.Entry)}
}

func (s *stubArchive) SaveSession(sessionID string, entries []ledger.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved[sessionID] = append([]ledger.Entry(nil), entries...)
	return nil
}

func (s *stubArchive) GetSession(sessionID string) ([]ledger.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saved[sessionID], nil
}

func (s *stubArchive) RecentSessions(limit int) ([]repository.SessionSummary, error) {
	return nil, nil
}

func (s *stubArchive) Close() error { return nil }

func (s *stubArchive) archived(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.saved[sessionID]
	return ok
}

func doRequest(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestListProviders(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(t, router, http.MethodGet, "/api/v1/providers", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Providers []struct {
			ID                 string `json:"id"`
			RequiresCredential bool   `json:"requires_credential"`
			Configured         bool   `json:"configured"`
		} `json:"providers"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	ids := make(map[string]bool)
	for _, p := range resp.Providers {
		ids[p.ID] = true
	}
	assert.True(t, ids["google"])
	assert.True(t, ids["wit"])
}

func TestGetProviderNotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(t, router, http.MethodGet, "/api/v1/providers/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetSettings(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(t, router, http.MethodGet, "/api/v1/settings", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		ActiveProvider string `json:"active_provider"`
		ActiveLanguage string `json:"active_language"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, settings.DefaultProvider, resp.ActiveProvider)
	assert.Equal(t, settings.DefaultLanguage, resp.ActiveLanguage)
}

func TestUpdateSettings(t *testing.T) {
	router, a := newTestRouter(t)

	w := doRequest(t, router, http.MethodPut, "/api/v1/settings",
		`{"provider": "wit", "language": "fr-FR"}`)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "wit", a.Settings.ActiveProvider())
	assert.Equal(t, "fr-FR", a.Settings.ActiveLanguage())
}

func TestUpdateSettingsRejectsUnknownProvider(t *testing.T) {
	router, a := newTestRouter(t)

	w := doRequest(t, router, http.MethodPut, "/api/v1/settings", `{"provider": "nonsense"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, settings.DefaultProvider, a.Settings.ActiveProvider())
}

func TestUpdateSettingsRejectsUnknownLanguage(t *testing.T) {
	router, a := newTestRouter(t)

	w := doRequest(t, router, http.MethodPut, "/api/v1/settings", `{"language": "xx-XX"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, settings.DefaultLanguage, a.Settings.ActiveLanguage())
}

func TestSetCredential(t *testing.T) {
	router, a := newTestRouter(t)

	w := doRequest(t, router, http.MethodPut, "/api/v1/settings/credentials/wit",
		`{"credential": "wit-token"}`)
	require.Equal(t, http.StatusOK, w.Code)

	cred, ok := a.Settings.Credential("wit")
	require.True(t, ok)
	assert.Equal(t, "wit-token", cred)
}

func TestSetCredentialValidation(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(t, router, http.MethodPut, "/api/v1/settings/credentials/wit",
		`{"credential": ""}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestSessionCommandsWithoutSession(t *testing.T) {
	router, _ := newTestRouter(t)

	for _, path := range []string{"/api/v1/session/pause", "/api/v1/session/resume", "/api/v1/session/stop"} {
		w := doRequest(t, router, http.MethodPost, path, "")
		assert.Equal(t, http.StatusConflict, w.Code, path)
	}
}

func TestSessionStateIdle(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(t, router, http.MethodGet, "/api/v1/session", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"state":"idle"`)
}

func startSessionOverHTTP(t *testing.T, router *gin.Engine) string {
	t.Helper()
	w := doRequest(t, router, http.MethodPost, "/api/v1/session/start",
		fmt.Sprintf(`{"spool_dir": %q}`, t.TempDir()))
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		SessionID string `json:"session_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.SessionID)
	return resp.SessionID
}

func waitForStopped(t *testing.T, a *app.App) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for a.SessionState() != session.StateStopped && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	require.Equal(t, session.StateStopped, a.SessionState())
}

func TestSessionStopArchiveFlagScopedToRequest(t *testing.T) {
	arc := newStubArchive()
	router, a := newRouterWith(t, nil, arc)

	first := startSessionOverHTTP(t, router)
	w := doRequest(t, router, http.MethodPost, "/api/v1/session/stop?archive=true", "")
	require.Equal(t, http.StatusOK, w.Code)
	waitForStopped(t, a)

	// The next session's stop says nothing about archiving; the earlier
	// request's choice must not carry over.
	second := startSessionOverHTTP(t, router)
	w = doRequest(t, router, http.MethodPost, "/api/v1/session/stop", "")
	require.Equal(t, http.StatusOK, w.Code)
	waitForStopped(t, a)

	require.NoError(t, a.Close())
	assert.True(t, arc.archived(first))
	assert.False(t, arc.archived(second))
}

func newWavUploadRequest(t *testing.T, filename string) *http.Request {
	t.Helper()
	buf := &audio.Buffer{PCM: make([]byte, 3200), SampleRate: 16000, Channels: 1, BitDepth: 16}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(buf.WAV())
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/recognize", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestRecognizeUploadsWithSameFilename(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `{"result":[{"alternative":[{"transcript":"hello upload","confidence":0.9}],"final":true}]}`)
	}))
	defer server.Close()

	router, a := newRouterWith(t, map[string]map[string]interface{}{
		"google": {"endpoint": server.URL},
	}, nil)

	// Clients may upload files that share a name; each request must get
	// its own spooled copy.
	reqs := []*http.Request{
		newWavUploadRequest(t, "clip.wav"),
		newWavUploadRequest(t, "clip.wav"),
	}

	var wg sync.WaitGroup
	codes := make([]int, len(reqs))
	for i, req := range reqs {
		wg.Add(1)
		go func(i int, req *http.Request) {
			defer wg.Done()
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			codes[i] = w.Code
		}(i, req)
	}
	wg.Wait()

	for _, code := range codes {
		assert.Equal(t, http.StatusOK, code)
	}
	assert.Equal(t, 2, a.Ledger.Len())
	for _, e := range a.Ledger.All() {
		assert.Equal(t, "upload", e.Source)
		assert.Equal(t, "hello upload", e.Text)
	}
}

func TestTranscriptsListAndClear(t *testing.T) {
	router, a := newTestRouter(t)
	a.Ledger.Append(ledger.NewEntry("hello", "google", "en-US", "live"))

	w := doRequest(t, router, http.MethodGet, "/api/v1/transcripts", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":1`)

	// Clearing requires explicit confirmation.
	w = doRequest(t, router, http.MethodDelete, "/api/v1/transcripts", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 1, a.Ledger.Len())

	w = doRequest(t, router, http.MethodDelete, "/api/v1/transcripts?confirm=true", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, a.Ledger.Len())
}

func TestTranscriptStats(t *testing.T) {
	router, a := newTestRouter(t)
	a.Ledger.Append(ledger.NewEntry("hello world", "google", "en-US", "live"))

	w := doRequest(t, router, http.MethodGet, "/api/v1/transcripts/stats", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_words":2`)
}

func TestExportDownload(t *testing.T) {
	router, a := newTestRouter(t)
	a.Ledger.Append(ledger.NewEntry("hello world", "google", "en-US", "live"))

	w := doRequest(t, router, http.MethodGet, "/api/v1/transcripts/export?format=csv", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, w.Body.String(), "hello world")
}

func TestExportUnknownFormat(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(t, router, http.MethodGet, "/api/v1/transcripts/export?format=pdf", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLanguages(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(t, router, http.MethodGet, "/api/v1/languages", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "en-US")
	assert.Contains(t, w.Body.String(), "Japanese")
}
