// MODUL: routes_test
// ZWECK: Tests fuer die HTTP-Schicht
// INPUT: Synthetische Requests gegen den Router via httptest
// OUTPUT: Testresultate
// NEBENEFFEKTE: Temporaere Dateien in t.TempDir()
// ABHAENGIGKEITEN: testing, httptest, testify
// HINWEISE: Trennt Transportfehler (400/503) von Task-Fehlern (200 mit
// success=false)

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/visiond/visiond/api"
	"github.com/visiond/visiond/engine"
	"github.com/visiond/visiond/media"
	"github.com/visiond/visiond/message"
	"github.com/visiond/visiond/task"
)

// stubEngine liefert ein festes Ergebnis und zaehlt die Aufrufe.
type stubEngine struct {
	result string
	calls  int
}

func (s *stubEngine) Generate(_ context.Context, _ []message.Message, _ engine.Options) (string, error) {
	s.calls++
	return s.result, nil
}

func (s *stubEngine) GenerateStream(ctx context.Context, messages []message.Message, opts engine.Options, fn engine.StreamFunc) error {
	result, err := s.Generate(ctx, messages, opts)
	if err != nil {
		return err
	}
	return fn(result)
}

func (s *stubEngine) Ready() bool { return true }

func newTestRouter(t *testing.T, handle *engine.Handle) (http.Handler, string) {
	t.Helper()

	dir := t.TempDir()
	s := NewServer(task.NewDispatcher(handle, media.NewStore(dir)))

	h, err := s.GenerateRoutes()
	require.NoError(t, err)
	return h, dir
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewBuffer(data)
	} else {
		buf = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRoot(t *testing.T) {
	h, _ := newTestRouter(t, engine.NewHandle())

	w := doJSON(t, h, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "visiond", resp["name"])
	assert.Equal(t, "running", resp["status"])
}

func TestVersion(t *testing.T) {
	h, _ := newTestRouter(t, engine.NewHandle())

	w := doJSON(t, h, http.MethodGet, "/api/version", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["version"])
}

func TestHealthUninitialisiert(t *testing.T) {
	h, _ := newTestRouter(t, engine.NewHandle())

	w := doJSON(t, h, http.MethodGet, "/api/health", nil)

	// Uninitialisiert ist unhealthy, aber kein Transportfehler
	require.Equal(t, http.StatusOK, w.Code)

	var resp api.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "unhealthy", resp.Status)
	assert.False(t, resp.ModelLoaded)
}

func TestHealthBereit(t *testing.T) {
	h, _ := newTestRouter(t, engine.NewReadyHandle(&stubEngine{result: "ok"}))

	w := doJSON(t, h, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp api.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.True(t, resp.ModelLoaded)
}

func TestTasksListe(t *testing.T) {
	h, _ := newTestRouter(t, engine.NewHandle())

	w := doJSON(t, h, http.MethodGet, "/api/v1/tasks", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp api.TaskListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Tasks, 8)
	assert.Contains(t, resp.Tasks, api.TaskGrounding2D)
	assert.Contains(t, resp.Tasks, api.TaskImageComparison)
}

func TestTaskOhneBody(t *testing.T) {
	h, _ := newTestRouter(t, engine.NewReadyHandle(&stubEngine{result: "ok"}))

	w := doJSON(t, h, http.MethodPost, "/api/v1/grounding/2d", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "missing request body")
}

func TestTaskUninitialisierteEngine(t *testing.T) {
	h, _ := newTestRouter(t, engine.NewHandle())

	w := doJSON(t, h, http.MethodPost, "/api/v1/grounding/2d", api.Grounding2DRequest{
		ImageInput: api.ImageInput{ImageURL: "https://example.com/a.jpg"},
	})

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "inference engine not initialized")
}

func TestTaskEnvelope(t *testing.T) {
	stub := &stubEngine{result: "```json\n[{\"bbox_2d\": [1, 2, 3, 4]}]\n```"}
	h, _ := newTestRouter(t, engine.NewReadyHandle(stub))

	w := doJSON(t, h, http.MethodPost, "/api/v1/grounding/2d", api.Grounding2DRequest{
		ImageInput: api.ImageInput{ImageURL: "https://example.com/a.jpg"},
		Categories: []string{"car"},
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp api.TaskResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "[{\"bbox_2d\": [1, 2, 3, 4]}]", resp.Result)
	assert.Equal(t, "2d_grounding", resp.Metadata["task"])
	assert.Equal(t, 1, stub.calls)
}

func TestTaskFehlerEnvelope(t *testing.T) {
	h, _ := newTestRouter(t, engine.NewReadyHandle(&stubEngine{result: "ok"}))

	// Fehlende Bildquelle ist ein Task-Fehler, kein Transportfehler
	w := doJSON(t, h, http.MethodPost, "/api/v1/grounding/2d", api.Grounding2DRequest{})

	require.Equal(t, http.StatusOK, w.Code)

	var resp api.TaskResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "image_url or image_base64")
}

func TestAlleTaskEndpointsRegistriert(t *testing.T) {
	h, _ := newTestRouter(t, engine.NewReadyHandle(&stubEngine{result: "ok"}))

	paths := []string{
		"/api/v1/grounding/2d",
		"/api/v1/spatial/understanding",
		"/api/v1/video/understanding",
		"/api/v1/image/description",
		"/api/v1/document/parsing",
		"/api/v1/ocr/document",
		"/api/v1/ocr/wild",
		"/api/v1/image/comparison",
	}

	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			// Leerer Body: jeder Endpoint muss mit 400 antworten, nicht 404
			w := doJSON(t, h, http.MethodPost, path, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

// ============================================================================
// Allowed-Hosts-Middleware
// ============================================================================

func newRouterMitListenerAddr(t *testing.T, ip string) http.Handler {
	t.Helper()

	s := &Server{
		addr:       &net.TCPAddr{IP: net.ParseIP(ip), Port: 9280},
		dispatcher: task.NewDispatcher(engine.NewHandle(), media.NewStore(t.TempDir())),
	}

	h, err := s.GenerateRoutes()
	require.NoError(t, err)
	return h
}

func TestAllowedHostsAufLoopbackListener(t *testing.T) {
	h := newRouterMitListenerAddr(t, "127.0.0.1")

	cases := []struct {
		name string
		host string
		want int
	}{
		{"Loopback-IP", "127.0.0.1:9280", http.StatusOK},
		{"Localhost", "localhost:9280", http.StatusOK},
		{"Localhost-Subdomain", "app.localhost:9280", http.StatusOK},
		{"Leerer Host", "", http.StatusOK},
		{"Fremder Hostname", "evil.example.com", http.StatusForbidden},
		{"Interne TLD", "svc.internal:9280", http.StatusForbidden},
		{"Fremde IP", "203.0.113.7:9280", http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
			req.Host = tc.host

			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestAllowedHostsAufExponiertemListener(t *testing.T) {
	// Wer nicht auf Loopback lauscht, hat sich bewusst exponiert
	h := newRouterMitListenerAddr(t, "0.0.0.0")

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	req.Host = "evil.example.com"

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

// ============================================================================
// Video-Upload
// ============================================================================

func newUploadRequest(t *testing.T, fields map[string]string, filename string, content []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if filename != "" {
		fw, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}

	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/video/understanding/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestVideoUpload(t *testing.T) {
	stub := &stubEngine{result: "a cat jumps"}
	h, dir := newTestRouter(t, engine.NewReadyHandle(stub))

	req := newUploadRequest(t, map[string]string{"prompt": "describe the clip"}, "clip.mp4", []byte("fake mp4 bytes"))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp api.TaskResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "a cat jumps", resp.Result)
	assert.Equal(t, "base64", resp.Metadata["video_type"])
	assert.Equal(t, 1, stub.calls)

	// Upload und re-gestagtes Video muessen beide entfernt sein
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestVideoUploadOhneDatei(t *testing.T) {
	h, _ := newTestRouter(t, engine.NewReadyHandle(&stubEngine{result: "ok"}))

	req := newUploadRequest(t, map[string]string{"prompt": "describe"}, "", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "missing upload file")
}

func TestVideoUploadUngueltigeZahl(t *testing.T) {
	h, _ := newTestRouter(t, engine.NewReadyHandle(&stubEngine{result: "ok"}))

	cases := map[string]string{
		"max_tokens":  "viele",
		"temperature": "warm",
		"top_p":       "hoch",
		"max_frames":  "1.5x",
		"sample_fps":  "schnell",
	}

	for field, value := range cases {
		t.Run(field, func(t *testing.T) {
			req := newUploadRequest(t, map[string]string{"prompt": "p", field: value}, "clip.mp4", []byte("x"))
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), "invalid "+field), w.Body.String())
		})
	}
}

func TestVideoUploadOhnePrompt(t *testing.T) {
	stub := &stubEngine{result: "ok"}
	h, dir := newTestRouter(t, engine.NewReadyHandle(stub))

	req := newUploadRequest(t, nil, "clip.mp4", []byte("fake mp4 bytes"))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	// Fehlender Prompt ist ein Task-Fehler im Envelope
	require.Equal(t, http.StatusOK, w.Code)

	var resp api.TaskResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "prompt is required")
	assert.Equal(t, 0, stub.calls)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
