package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/randtoken/internal/config"
	"github.com/allisson/randtoken/internal/metrics"
	"github.com/allisson/randtoken/internal/token/domain"
	tokenHTTP "github.com/allisson/randtoken/internal/token/http"
	"github.com/allisson/randtoken/internal/token/service"
	tokenUseCase "github.com/allisson/randtoken/internal/token/usecase"
)

// TestMain sets Gin to test mode for all tests in this package.
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type brokenSource struct{}

func (brokenSource) Fill(buf []byte) error {
	return errors.Join(domain.ErrEntropySource, errors.New("device unavailable"))
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() *config.Config {
	return &config.Config{
		TokenDefaultBitSize:     128,
		TokenDefaultAlphabet:    "base58",
		TokenMaxBitSize:         4096,
		TokenMaxBatchSize:       10,
		TokenBatchWorkers:       2,
		RateLimitEnabled:        false,
		RateLimitRequestsPerSec: 1,
		RateLimitBurst:          2,
	}
}

// createTestServer builds a fully routed server backed by crypto/rand.
func createTestServer(t *testing.T, cfg *config.Config, provider *metrics.Provider) *Server {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	source := service.NewCryptoSource(nil)
	uc := tokenUseCase.NewTokenUseCase(tokenUseCase.Config{
		DefaultBitSize:  cfg.TokenDefaultBitSize,
		DefaultAlphabet: domain.ResolveAlphabet(cfg.TokenDefaultAlphabet),
		MaxBitSize:      cfg.TokenMaxBitSize,
		MaxBatchSize:    cfg.TokenMaxBatchSize,
		BatchWorkers:    cfg.TokenBatchWorkers,
	}, source, nil, testLogger())

	server := NewServer(source, "127.0.0.1", 0, testLogger())
	server.SetupRouter(ctx, cfg, tokenHTTP.NewTokenHandler(uc, testLogger()), provider)
	return server
}

func serve(server *Server, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	server.GetHandler().ServeHTTP(w, req)
	return w
}

func TestHealthHandler(t *testing.T) {
	server := NewServer(nil, "localhost", 8080, testLogger())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	server.healthHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())
}

func TestReadinessHandler(t *testing.T) {
	tests := []struct {
		name           string
		source         service.EntropySource
		shuttingDown   bool
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Ready",
			source:         service.NewCryptoSource(nil),
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"ready","components":{"entropy":"ok"}}`,
		},
		{
			name:           "NotReady_NilSource",
			source:         nil,
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   `{"status":"not_ready","components":{"entropy":"error"}}`,
		},
		{
			name:           "NotReady_BrokenSource",
			source:         brokenSource{},
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   `{"status":"not_ready","components":{"entropy":"error"}}`,
		},
		{
			name:           "NotReady_ShuttingDown",
			source:         service.NewCryptoSource(nil),
			shuttingDown:   true,
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   `{"status":"not_ready","components":{"entropy":"ok"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := NewServer(tt.source, "localhost", 8080, testLogger())
			server.shuttingDown.Store(tt.shuttingDown)

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/ready", nil)

			server.readinessHandler(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestRouter_Routes(t *testing.T) {
	server := createTestServer(t, testConfig(), nil)

	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		expectedStatus int
	}{
		{name: "health", method: http.MethodGet, path: "/health", expectedStatus: http.StatusOK},
		{name: "ready", method: http.MethodGet, path: "/ready", expectedStatus: http.StatusOK},
		{name: "generate", method: http.MethodPost, path: "/v1/tokens", body: `{}`, expectedStatus: http.StatusCreated},
		{
			name:           "describe",
			method:         http.MethodPost,
			path:           "/v1/tokens/describe",
			body:           `{"preset":"base16"}`,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "validate",
			method:         http.MethodPost,
			path:           "/v1/tokens/validate",
			body:           `{"token":"abc"}`,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "verify",
			method:         http.MethodPost,
			path:           "/v1/tokens/verify",
			body:           `{"token":"abc","hash":"$argon2id$v=19$m=1,t=1,p=1$c2FsdA$aGFzaA"}`,
			expectedStatus: http.StatusOK,
		},
		{name: "presets", method: http.MethodGet, path: "/v1/presets", expectedStatus: http.StatusOK},
		{name: "preset", method: http.MethodGet, path: "/v1/presets/base62", expectedStatus: http.StatusOK},
		{name: "missing preset", method: http.MethodGet, path: "/v1/presets/base2", expectedStatus: http.StatusNotFound},
		{name: "metrics not exposed", method: http.MethodGet, path: "/metrics", expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(server, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
		})
	}
}

func TestRouter_RequestIDHeader(t *testing.T) {
	server := createTestServer(t, testConfig(), nil)

	w := serve(server, http.MethodGet, "/health", "")

	requestID := w.Header().Get("X-Request-Id")
	require.NotEmpty(t, requestID)
	parsed, err := uuid.Parse(requestID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
}

func TestRouter_GenerateBatch(t *testing.T) {
	server := createTestServer(t, testConfig(), nil)

	w := serve(server, http.MethodPost, "/v1/tokens", `{"preset":"base36","bit_size":256,"count":3}`)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp struct {
		Tokens []struct {
			Token string `json:"token"`
		} `json:"tokens"`
		TokenLength int `json:"token_length"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Tokens, 3)
	assert.Equal(t, 50, resp.TokenLength)
}

func TestRouter_RateLimitedTokenRoutes(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitEnabled = true
	server := createTestServer(t, cfg, nil)

	assert.Equal(t, http.StatusCreated, serve(server, http.MethodPost, "/v1/tokens", "").Code)
	assert.Equal(t, http.StatusCreated, serve(server, http.MethodPost, "/v1/tokens", "").Code)

	w := serve(server, http.MethodPost, "/v1/tokens", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	// Presets and probes are outside the limited group.
	assert.Equal(t, http.StatusOK, serve(server, http.MethodGet, "/v1/presets", "").Code)
	assert.Equal(t, http.StatusOK, serve(server, http.MethodGet, "/health", "").Code)
}

func TestRouter_RecordsHTTPMetrics(t *testing.T) {
	provider, err := metrics.NewProvider("router_test")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	server := createTestServer(t, testConfig(), provider)
	require.Equal(t, http.StatusCreated, serve(server, http.MethodPost, "/v1/tokens", `{}`).Code)

	w := httptest.NewRecorder()
	provider.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Regexp(t, `router_test_http_requests_total\{[^}]*path="/v1/tokens"[^}]*status_code="201"[^}]*\} 1`, w.Body.String())
}

func TestCustomLoggerMiddleware(t *testing.T) {
	var buf strings.Builder
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	router := gin.New()
	router.Use(CustomLoggerMiddleware(logger))
	router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/fail", func(c *gin.Context) { c.Status(http.StatusServiceUnavailable) })

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok?x=1", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/fail", nil))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var first, second map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))

	assert.Equal(t, "INFO", first["level"])
	assert.Equal(t, "/ok", first["path"])
	assert.Equal(t, "x=1", first["query"])
	assert.Equal(t, float64(200), first["status"])
	assert.Equal(t, "ERROR", second["level"])
	assert.Equal(t, float64(503), second["status"])
}

func TestRecoveryMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(CustomLoggerMiddleware(testLogger()))
	router.GET("/panic", func(c *gin.Context) {
		panic("test panic")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestServer_ShutdownGracefully(t *testing.T) {
	server := createTestServer(t, testConfig(), nil)

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start(context.Background())
	}()

	time.Sleep(100 * time.Millisecond)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, server.Shutdown(shutdownCtx))
	assert.NoError(t, <-errChan)
	assert.True(t, server.shuttingDown.Load())
}

func TestMetricsServer_Endpoints(t *testing.T) {
	provider, err := metrics.NewProvider("test_app")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	metricsServer := NewMetricsServer("localhost", 8081, testLogger(), provider)

	w := httptest.NewRecorder()
	metricsServer.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
}

func TestMetricsServer_NilProvider(t *testing.T) {
	metricsServer := NewMetricsServer("localhost", 8081, testLogger(), nil)

	w := httptest.NewRecorder()
	metricsServer.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
