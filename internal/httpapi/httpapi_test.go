package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/banana-tools-mcp/internal/catalog"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestGetPrompts(t *testing.T) {
	cat := catalog.New([]catalog.Entry{
		{Title: "Figurine", Prompt: "make a figurine"},
		{Title: "Sketch", Prompt: "pencil sketch"},
	})

	rec := get(t, NewRouter(cat), PromptsPath)
	require.Equal(t, http.StatusOK, rec.Code)

	var got []catalog.Entry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, cat.Entries(), got)
}

func TestGetPrompts_Empty(t *testing.T) {
	rec := get(t, NewRouter(catalog.New(nil)), PromptsPath)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestGetPrompts_ReadOnly(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, PromptsPath, strings.NewReader(`[]`))
	NewRouter(catalog.New(nil)).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthz(t *testing.T) {
	rec := get(t, NewRouter(catalog.New([]catalog.Entry{{Title: "a", Prompt: "b"}})), "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","prompts":1}`, rec.Body.String())
}

func TestMetrics(t *testing.T) {
	rec := get(t, NewRouter(catalog.New(nil)), "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, addr, NewRouter(catalog.New(nil))) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/healthz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestNewRouter_KeepsStdoutClean(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)

	stdout, writer, errWriter := os.Stdout, gin.DefaultWriter, gin.DefaultErrorWriter
	os.Stdout = w
	gin.DefaultWriter = w
	gin.DefaultErrorWriter = w
	gin.SetMode(gin.DebugMode)
	t.Cleanup(func() {
		os.Stdout = stdout
		gin.DefaultWriter = writer
		gin.DefaultErrorWriter = errWriter
		gin.SetMode(gin.TestMode)
	})

	router := NewRouter(catalog.New(nil))
	require.Equal(t, http.StatusOK, get(t, router, "/healthz").Code)

	require.NoError(t, w.Close())
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Empty(t, string(out), "gin wrote to stdout")
	assert.Equal(t, os.Stderr, gin.DefaultWriter)
	if os.Getenv(gin.EnvGinMode) == "" {
		assert.Equal(t, gin.ReleaseMode, gin.Mode())
	}
}
