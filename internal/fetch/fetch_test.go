package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPage_ReturnsHTML(t *testing.T) {
	var gotUserAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("<html><body>ok</body></html>"))
	}))
	defer srv.Close()

	result, err := Page(context.Background(), srv.URL, nil)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Contains(t, result.HTML, "ok")
	assert.Equal(t, DefaultUserAgent, gotUserAgent)
}

func TestPage_CustomUserAgent(t *testing.T) {
	var gotUserAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
	}))
	defer srv.Close()

	_, err := Page(context.Background(), srv.URL, &Options{Timeout: time.Second, UserAgent: "tracker-test/1.0"})
	require.NoError(t, err)
	assert.Equal(t, "tracker-test/1.0", gotUserAgent)
}

func TestPage_InvalidURL(t *testing.T) {
	tests := []string{"", "not-a-url", "://missing-scheme"}
	for _, urlStr := range tests {
		_, err := Page(context.Background(), urlStr, nil)
		var fetchErr *Error
		require.ErrorAs(t, err, &fetchErr, "url %q", urlStr)
		assert.Equal(t, urlStr, fetchErr.URL)
	}
}

func TestPage_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	result, err := Page(context.Background(), srv.URL, nil)
	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, fetchErr.Message, "404")
	require.NotNil(t, result, "body is still returned for diagnostics")
	assert.Equal(t, http.StatusNotFound, result.StatusCode)
}

func TestPage_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	_, err := Page(context.Background(), srv.URL, nil)
	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Error(t, errors.Unwrap(fetchErr))
}

func TestPage_ContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := Page(ctx, srv.URL, nil)
	require.Error(t, err)
}
