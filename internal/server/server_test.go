package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/beatporter/beatporter/config"
	"github.com/beatporter/beatporter/internal/library"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:           "8080",
			MaxUploadBytes: 1 << 20,
		},
	}
	return New(cfg, library.NewStore(time.Hour), nil)
}

// importFile uploads content through the import endpoint and returns
// the recorder.
func importFile(t *testing.T, srv *Server, filename, content string) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/import", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rr := httptest.NewRecorder()
	srv.router.ServeHTTP(rr, req)
	return rr
}

// mustImport uploads content and returns the created library id.
func mustImport(t *testing.T, srv *Server, filename, content string) string {
	t.Helper()

	rr := importFile(t, srv, filename, content)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp ImportResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.LibraryID)
	return resp.LibraryID
}

func doJSON(t *testing.T, srv *Server, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	srv.router.ServeHTTP(rr, req)
	return rr
}

func doGET(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	srv.router.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func TestHealthCheck(t *testing.T) {
	srv := newTestServer(t)

	rr := doGET(t, srv, "/health")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "ok", decodeBody(t, rr)["status"])
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rr := doGET(t, srv, "/metrics")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), "go_goroutines")
}
