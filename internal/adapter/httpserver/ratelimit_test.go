package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// hit sends one request from remoteAddr through a handler wrapped by mw.
func hit(t *testing.T, mw echo.MiddlewareFunc, remoteAddr string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/surveys/pre", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()

	err := mw(func(c echo.Context) error { return c.NoContent(http.StatusAccepted) })(e.NewContext(req, rec))
	require.NoError(t, err)
	return rec
}

func TestRateLimiter(t *testing.T) {
	tests := []struct {
		name  string
		rate  float64
		burst int
		addrs []string
		want  []int
	}{
		{
			name:  "under limit",
			rate:  10,
			burst: 3,
			addrs: []string{"1.2.3.4:1", "1.2.3.4:2", "1.2.3.4:3"},
			want:  []int{202, 202, 202},
		},
		{
			name:  "burst exhausted",
			rate:  0.01,
			burst: 1,
			addrs: []string{"1.2.3.4:1", "1.2.3.4:2"},
			want:  []int{202, 429},
		},
		{
			name:  "per client ip",
			rate:  0.01,
			burst: 1,
			addrs: []string{"1.2.3.4:1", "5.6.7.8:1", "1.2.3.4:2"},
			want:  []int{202, 202, 429},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mw := newRateLimiter(tt.rate, tt.burst)
			for i, addr := range tt.addrs {
				assert.Equal(t, tt.want[i], hit(t, mw, addr).Code, "request %d from %s", i, addr)
			}
		})
	}
}

func TestRateLimiter_DenyResponse(t *testing.T) {
	mw := newRateLimiter(0.01, 1)
	hit(t, mw, "1.2.3.4:1")

	rec := hit(t, mw, "1.2.3.4:1")

	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "rate limit exceeded", resp["error"])
	assert.Equal(t, "rate_limited", resp["type"])
	assert.Equal(t, "100", rec.Header().Get("Retry-After"))
}

func TestRateLimiter_RetryAfterAtLeastOneSecond(t *testing.T) {
	mw := newRateLimiter(50, 1)
	hit(t, mw, "1.2.3.4:1")

	rec := hit(t, mw, "1.2.3.4:1")

	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
}

func TestRateLimiterAppliesToSubmissionRoutesOnly(t *testing.T) {
	cfg := testConfig()
	cfg.SubmitRateLimit = 0.01
	srv := NewServer(cfg, &mockAppService{}, nil, nil, nil)

	var codes []int
	for range submitBurst + 1 {
		rec := doJSON(t, srv, http.MethodPost, "/api/sentiment/analyze", `{"text":"hola"}`)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, http.StatusTooManyRequests, codes[submitBurst])

	rec := doOperator(t, srv, http.MethodGet, "/api/queue", testAdminToken)
	assert.Equal(t, http.StatusOK, rec.Code)
}
