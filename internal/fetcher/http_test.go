package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient() *Client {
	// High rate and tiny timeout so retry tests stay fast.
	return New(Options{
		Timeout:    5 * time.Second,
		MaxRetries: 3,
		RatePerSec: 1000,
		Burst:      1000,
	})
}

func TestFetch_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "quotelens/1.0", r.Header.Get("User-Agent"))
		w.Write([]byte("<html>page</html>"))
	}))
	defer srv.Close()

	body, err := testClient().Fetch(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Equal(t, "<html>page</html>", body)
}

func TestFetch_CustomUserAgent(t *testing.T) {
	var got atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.Store(r.Header.Get("User-Agent"))
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c := New(Options{UserAgent: "custom/2.0", RatePerSec: 1000, Burst: 1000})
	_, err := c.Fetch(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Equal(t, "custom/2.0", got.Load())
}

func TestFetch_RetriesTransientStatus(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("recovered"))
	}))
	defer srv.Close()

	body, err := testClient().Fetch(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Equal(t, "recovered", body)
	assert.Equal(t, int32(3), calls.Load())
}

func TestFetch_ExhaustsRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := testClient().Fetch(context.Background(), srv.URL)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "all retries exhausted")
	assert.Equal(t, int32(3), calls.Load())
}

func TestFetch_NonTransientStatusIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := testClient().Fetch(context.Background(), srv.URL)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 404")
	assert.Equal(t, int32(1), calls.Load())
}

func TestFetch_ContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := testClient().Fetch(ctx, srv.URL)

	assert.Error(t, err)
}

func TestNew_Defaults(t *testing.T) {
	c := New(Options{})

	assert.Equal(t, 30*time.Second, c.opts.Timeout)
	assert.Equal(t, 3, c.opts.MaxRetries)
	assert.Equal(t, "quotelens/1.0", c.opts.UserAgent)
	assert.Equal(t, float64(5), c.opts.RatePerSec)
	assert.Equal(t, 5, c.opts.Burst)
}
