package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sngm3741/hairline-directory/api/internal/config"
	"github.com/sngm3741/hairline-directory/api/internal/directory/application"
	"github.com/sngm3741/hairline-directory/api/internal/directory/seed"
	"github.com/sngm3741/hairline-directory/api/internal/infrastructure/blob"
	"github.com/sngm3741/hairline-directory/api/internal/infrastructure/memory"
	"github.com/sngm3741/hairline-directory/api/internal/infrastructure/metrics"
)

func testConfig() config.Config {
	return config.Config{
		Addr:           "127.0.0.1:0",
		AllowedOrigins: []string{"https://app.hairline.example"},
		JWT: config.JWTConfig{
			Issuer: "hairline-test",
			Secret: []byte("secret"),
			TTL:    time.Hour,
		},
		RateLimitPerHour: 100,
	}
}

func newTestServer(t *testing.T, checks map[string]func(context.Context) error) *Server {
	t.Helper()
	logger := zerolog.Nop()
	media := blob.NewMemory()
	recorder := metrics.NewRecorder()
	svc, err := application.NewService(context.Background(), memory.NewStore(), application.Options{
		Seed:    seed.Initial,
		Media:   blob.NewUploader(media, "https://media.test/media"),
		Metrics: recorder,
		Logger:  logger,
	})
	require.NoError(t, err)
	return New(testConfig(), Dependencies{
		Logger:       logger,
		Service:      svc,
		Media:        media,
		Metrics:      recorder.Handler(),
		HealthChecks: checks,
	})
}

func request(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, map[string]func(context.Context) error{
		"redis": func(context.Context) error { return nil },
	})
	rec := request(t, srv.Handler(), http.MethodGet, "/healthz", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"redis":"ok"`)

	degraded := newTestServer(t, map[string]func(context.Context) error{
		"mongo": func(context.Context) error { return errors.New("no primary") },
	})
	rec = request(t, degraded.Handler(), http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "degraded")
}

func TestCORS(t *testing.T) {
	srv := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/bootstrap", nil)
	req.Header.Set("Origin", "https://app.hairline.example")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://app.hairline.example", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestReviewModerationEndToEnd(t *testing.T) {
	srv := newTestServer(t, nil)
	h := srv.Handler()

	rec := request(t, h, http.MethodPost, "/auth/signup", "", map[string]string{
		"name": "Jo", "email": "jo@example.com", "password": "pw",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var auth struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &auth))

	rec = request(t, h, http.MethodPost, "/reviews", auth.Token, map[string]any{
		"clinicId": seed.ClinicBangkokID, "rating": 4, "comment": "Smooth recovery",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var review struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &review))

	rec = request(t, h, http.MethodPost, "/reviews/"+review.ID+"/approve", auth.Token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = request(t, h, http.MethodPost, "/auth/login", "", map[string]string{
		"email": "admin@hairline.example", "password": "pw",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &auth))

	rec = request(t, h, http.MethodPost, "/reviews/"+review.ID+"/approve", auth.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = request(t, h, http.MethodGet, "/clinics/"+seed.ClinicBangkokID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var clinic struct {
		ReviewCount int     `json:"reviewCount"`
		Rating      float64 `json:"rating"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &clinic))
	assert.Equal(t, 1, clinic.ReviewCount)
	assert.Equal(t, 4.0, clinic.Rating)

	rec = request(t, h, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `hairline_operations_total{operation="approve_review",status="success"} 1`)
}

func TestRunStopsOnContextCancel(t *testing.T) {
	srv := newTestServer(t, nil)
	var closed bool
	srv.closers = append(srv.closers, func(context.Context) error {
		closed = true
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
	assert.True(t, closed)
}
