package httpclient

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aleister1102/companywatch/internal/common/errorwrapper"
	"github.com/aleister1102/companywatch/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetry(codes ...int) RetryHandlerConfig {
	return RetryHandlerConfig{
		MaxRetries:       2,
		BaseDelay:        time.Millisecond,
		MaxDelay:         5 * time.Millisecond,
		RetryStatusCodes: codes,
	}
}

func TestRetryHandler_RecoversAfterRateLimit(t *testing.T) {
	var requestCount int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&requestCount, 1) <= 2 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, err := NewHTTPClientBuilder(zerolog.Nop()).WithRetry(fastRetry(http.StatusTooManyRequests)).Build()
	require.NoError(t, err)

	resp, err := client.Do(&HTTPRequest{URL: server.URL, Method: http.MethodGet})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(3), atomic.LoadInt32(&requestCount))
}

func TestRetryHandler_MaxRetriesExceeded(t *testing.T) {
	var requestCount int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requestCount, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client, err := NewHTTPClientBuilder(zerolog.Nop()).WithRetry(fastRetry(http.StatusServiceUnavailable)).Build()
	require.NoError(t, err)

	resp, err := client.Do(&HTTPRequest{URL: server.URL, Method: http.MethodGet})
	require.Error(t, err)
	assert.NotNil(t, resp)
	assert.Equal(t, int32(3), atomic.LoadInt32(&requestCount)) // initial call + 2 retries

	var httpErr *errorwrapper.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusServiceUnavailable, httpErr.StatusCode)
}

func TestRetryHandler_NonRetryableStatus(t *testing.T) {
	var requestCount int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requestCount, 1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client, err := NewHTTPClientBuilder(zerolog.Nop()).WithRetry(fastRetry(http.StatusServiceUnavailable)).Build()
	require.NoError(t, err)

	resp, err := client.Do(&HTTPRequest{URL: server.URL, Method: http.MethodGet})
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, int32(1), atomic.LoadInt32(&requestCount))
}

func TestRetryHandler_CalculateDelay(t *testing.T) {
	rh := NewRetryHandler(RetryHandlerConfig{BaseDelay: time.Second, MaxDelay: 5 * time.Second}, zerolog.Nop())

	assert.Equal(t, time.Second, rh.CalculateDelay(0))
	assert.Equal(t, 2*time.Second, rh.CalculateDelay(1))
	assert.Equal(t, 4*time.Second, rh.CalculateDelay(2))
	assert.Equal(t, 5*time.Second, rh.CalculateDelay(3))
	assert.Equal(t, 5*time.Second, rh.CalculateDelay(30))
}

func TestRetryHandler_JitterStaysWithinTenPercent(t *testing.T) {
	rh := NewRetryHandler(RetryHandlerConfig{BaseDelay: 100 * time.Millisecond, MaxDelay: time.Second, EnableJitter: true}, zerolog.Nop())
	for i := 0; i < 50; i++ {
		d := rh.CalculateDelay(0)
		assert.GreaterOrEqual(t, d, 100*time.Millisecond)
		assert.Less(t, d, 110*time.Millisecond)
	}

	tiny := NewRetryHandler(RetryHandlerConfig{BaseDelay: time.Nanosecond, MaxDelay: time.Nanosecond, EnableJitter: true}, zerolog.Nop())
	assert.NotPanics(t, func() { tiny.CalculateDelay(0) })
}

func TestRetryHandlerConfigFrom(t *testing.T) {
	rc := RetryHandlerConfigFrom(config.NewDefaultRetryConfig())
	assert.Equal(t, 2, rc.MaxRetries)
	assert.Equal(t, time.Second, rc.BaseDelay)
	assert.Equal(t, 30*time.Second, rc.MaxDelay)
	assert.ElementsMatch(t, []int{429, 502, 503}, rc.RetryStatusCodes)
}
