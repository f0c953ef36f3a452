package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sevenstarlining/sevenstar-api/internal/business"
	"github.com/sevenstarlining/sevenstar-api/internal/config"
	"github.com/sevenstarlining/sevenstar-api/internal/ratelimit"
	"github.com/sevenstarlining/sevenstar-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingMailer struct {
	mu    sync.Mutex
	calls int
}

func (m *countingMailer) Name() string { return "counting" }

func (m *countingMailer) Send(ctx context.Context, msg *service.Email) (*service.SendResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return &service.SendResult{ID: "id-1"}, nil
}

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func testConfig() *config.Config {
	return &config.Config{
		Environment:   "development",
		Port:          "0",
		EmailProvider: config.ProviderResend,
		ResendAPIKey:  "re_test",
		ContactEmail:  "info@sevenstarliningworks.com",
		EmailFrom:     "Seven Star Lining Works <onboarding@resend.dev>",
		EdgeLimit:     3,
		EdgeWindow:    15 * time.Minute,
		ContactLimit:  3,
		ContactWindow: time.Hour,
		SweepInterval: 30 * time.Minute,
	}
}

type response struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	RetryAfter *int   `json:"retryAfter"`
}

func submit(t *testing.T, h http.Handler, ip string) (*httptest.ResponseRecorder, response) {
	t.Helper()
	body := `{"name":"Arun","phone":"+91 9790912314","message":"Need a quote for seat covers"}`
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Forwarded-For", ip)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var resp response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w, resp
}

func TestServer_BothLayersMustAdmit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	clk := &clock{now: time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)}
	mailer := &countingMailer{}
	stats := ratelimit.NewMemoryStatsStore()

	srv := NewServer(testConfig(), Options{
		Business: business.Default(),
		Mailer:   mailer,
		Stats:    stats,
		Clock:    clk.Now,
	})
	h := srv.Handler()

	for i := 0; i < 3; i++ {
		w, resp := submit(t, h, "203.0.113.7")
		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, resp.Success)
	}

	// edge layer denies first, with retryAfter
	w, resp := submit(t, h, "203.0.113.7")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "Too many requests. Please try again later.", resp.Message)
	require.NotNil(t, resp.RetryAfter)
	assert.Equal(t, 900, *resp.RetryAfter)

	// edge window has rolled over, the hourly contact window has not
	clk.Advance(15 * time.Minute)
	w, resp = submit(t, h, "203.0.113.7")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Nil(t, resp.RetryAfter)
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, 3, mailer.calls)

	snap := stats.Snapshot()
	assert.Equal(t, ratelimit.Counters{Allowed: 4, Denied: 1}, snap["edge"])
	assert.Equal(t, ratelimit.Counters{Allowed: 3, Denied: 1}, snap["contact"])

	// both windows expired
	clk.Advance(45 * time.Minute)
	w, _ = submit(t, h, "203.0.113.7")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestServer_Unconfigured(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig()
	cfg.ResendAPIKey = ""

	srv := NewServer(cfg, Options{Business: business.Default()})
	w, resp := submit(t, srv.Handler(), "203.0.113.7")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, resp.Message, "+91 9790912314")
}

func TestServer_HealthAndHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := NewServer(testConfig(), Options{Business: business.Default(), Mailer: &countingMailer{}})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"emailConfigured":true`)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
}

func TestServer_Shutdown(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig()
	srv := NewServer(cfg, Options{Business: business.Default()})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start(ctx) }()
	time.Sleep(50 * time.Millisecond)

	shutdownCtx, done := context.WithTimeout(context.Background(), 2*time.Second)
	defer done()
	require.NoError(t, srv.Shutdown(shutdownCtx))

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServer_HealthReportsDefaultStats(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := NewServer(testConfig(), Options{Business: business.Default(), Mailer: &countingMailer{}})
	h := srv.Handler()

	w, _ := submit(t, h, "203.0.113.9")
	require.Equal(t, http.StatusOK, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp struct {
		Data struct {
			RateLimit map[string]ratelimit.Counters `json:"rateLimit"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, ratelimit.Counters{Allowed: 1}, resp.Data.RateLimit["edge"])
	assert.Equal(t, ratelimit.Counters{Allowed: 1}, resp.Data.RateLimit["contact"])
}
