package main

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRateLimit(t *testing.T) {
	app := &application{
		config: &Config{
			RateLimitRPS:     2,
			RateLimitBurst:   4,
			RateLimitEnabled: true,
		},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	middleware := app.rateLimit(handler)

	server := httptest.NewServer(middleware)
	defer server.Close()

	tests := []struct {
		name           string
		requests       int
		expectedStatus int
	}{
		{
			name:           "Within Limit",
			requests:       4,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Over Limit",
			requests:       6,
			expectedStatus: http.StatusTooManyRequests,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var lastStatusCode int

			for i := 0; i < tt.requests; i++ {
				res, err := http.Get(server.URL)
				assert.NoError(t, err)

				lastStatusCode = res.StatusCode
			}

			assert.Equal(t, tt.expectedStatus, lastStatusCode)
		})
	}
}

func TestRateLimitDisabled(t *testing.T) {
	app := &application{
		config: &Config{RateLimitEnabled: false},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	server := httptest.NewServer(app.rateLimit(handler))
	defer server.Close()

	for i := 0; i < 20; i++ {
		res, err := http.Get(server.URL)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, res.StatusCode)
	}
}

func TestRecoverPanic(t *testing.T) {
	app := &application{
		config: &Config{},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	server := httptest.NewServer(app.recoverPanic(handler))
	defer server.Close()

	res, err := http.Get(server.URL)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
}
