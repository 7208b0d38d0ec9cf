package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"afristay/config"
	"afristay/infras/otel/mocks"
	cacheMocks "afristay/shared/cache/mocks"
	"afristay/shared/constant"
	"afristay/transport/http/middleware"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestRateLimit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		enable        bool
		header        http.Header
		remoteAddr    string
		wantKey       string
		count         int64
		err           error
		wantCode      int
		wantRemaining string
	}{
		{
			name:     "disabled skips the cache",
			enable:   false,
			wantCode: http.StatusOK,
		},
		{
			name:          "first request in window",
			enable:        true,
			remoteAddr:    "10.0.0.7:52311",
			header:        http.Header{"User-Agent": {"curl"}},
			wantKey:       "limiter:10.0.0.7:curl",
			count:         1,
			wantCode:      http.StatusOK,
			wantRemaining: "2",
		},
		{
			name:          "forwarded client without user agent",
			enable:        true,
			remoteAddr:    "10.0.0.1:443",
			header:        http.Header{"X-Forwarded-For": {"41.186.2.9, 10.0.0.1"}},
			wantKey:       "limiter:41.186.2.9:unknown",
			count:         3,
			wantCode:      http.StatusOK,
			wantRemaining: "0",
		},
		{
			name:          "over the limit",
			enable:        true,
			remoteAddr:    "10.0.0.7:52311",
			header:        http.Header{"X-Real-Ip": {"41.186.2.10"}, "User-Agent": {"curl"}},
			wantKey:       "limiter:41.186.2.10:curl",
			count:         4,
			wantCode:      http.StatusTooManyRequests,
			wantRemaining: "0",
		},
		{
			name:       "cache failure lets the request through",
			enable:     true,
			remoteAddr: "10.0.0.7:52311",
			wantKey:    "limiter:10.0.0.7:unknown",
			err:        errors.New("connection refused"),
			wantCode:   http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			cache := cacheMocks.NewMockRedisCache(ctrl)

			cfg := &config.Config{}
			cfg.App.RateLimiter.Enable = tt.enable
			cfg.App.RateLimiter.MaxRequests = 3
			cfg.App.RateLimiter.WindowSeconds = 60

			if tt.wantKey != "" {
				cache.EXPECT().Increment(gomock.Any(), tt.wantKey, 60).Return(tt.count, tt.err)
			}

			handler := middleware.NewAppMiddleware(mocks.NewOtel(), cfg, cache).RateLimit()(
				http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }),
			)

			req := httptest.NewRequest(http.MethodGet, "/v1/listings", nil)
			req.RemoteAddr = tt.remoteAddr

			for key, values := range tt.header {
				req.Header[http.CanonicalHeaderKey(key)] = values
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantRemaining, rec.Header().Get(constant.RequestHeaderRateLimitRemaining))
		})
	}
}
