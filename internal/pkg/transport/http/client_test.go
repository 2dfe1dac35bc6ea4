package http

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	t.Run("uses default configuration when no options are provided", func(t *testing.T) {
		client := NewClient()

		require.NotNil(t, client)
		assert.Equal(t, 5*time.Second, client.HTTPClient.Timeout, "default HTTP timeout should be 5s")
		assert.Equal(t, 1*time.Second, client.RetryWaitMin, "default RetryWaitMin should be 1s")
		assert.Equal(t, 5*time.Second, client.RetryWaitMax, "default RetryWaitMax should be 5s")
		assert.Equal(t, 0, client.RetryMax, "requests should not be retried by default")
		assert.NotNil(t, client.RequestLogHook)
	})

	t.Run("applies provided options correctly", func(t *testing.T) {
		client := NewClient(
			WithTimeout(10*time.Second),
			WithRetryWaitMin(200*time.Millisecond),
			WithRetryWaitMax(2*time.Second),
			WithRetryMax(3),
		)

		assert.Equal(t, 10*time.Second, client.HTTPClient.Timeout)
		assert.Equal(t, 200*time.Millisecond, client.RetryWaitMin)
		assert.Equal(t, 2*time.Second, client.RetryWaitMax)
		assert.Equal(t, 3, client.RetryMax)
	})

	t.Run("retries server errors when retryMax is set", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) == 1 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := NewClient(
			WithRetryMax(1),
			WithRetryWaitMin(time.Millisecond),
			WithRetryWaitMax(time.Millisecond),
		).StandardClient()

		res, err := client.Get(server.URL)
		require.NoError(t, err)
		defer res.Body.Close()

		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("single attempt by default", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		res, err := NewClient().StandardClient().Get(server.URL)
		if err == nil {
			res.Body.Close()
		}

		assert.Equal(t, int32(1), calls.Load())
	})
}

func TestWithTimeout(t *testing.T) {
	cfg := &config{}

	WithTimeout(10 * time.Second)(cfg)
	assert.Equal(t, 10*time.Second, cfg.timeout)
}

func TestWithRetryMax(t *testing.T) {
	cfg := &config{}

	WithRetryMax(5)(cfg)
	assert.Equal(t, 5, cfg.retryMax)
}
