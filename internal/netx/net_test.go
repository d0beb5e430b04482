package netx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDownload(t *testing.T) {
	t.Run("200 OK returns body", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodGet, r.Method)
			_, _ = w.Write([]byte("jpeg-bytes"))
		}))
		defer ts.Close()

		b, err := Download(context.Background(), ts.Client(), ts.URL, 1024)
		require.NoError(t, err)
		require.Equal(t, "jpeg-bytes", string(b))
	})

	t.Run("non-200 includes status and body", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte("AccessDenied"))
		}))
		defer ts.Close()

		_, err := Download(context.Background(), ts.Client(), ts.URL, 1024)
		require.Error(t, err)
		require.True(t, strings.Contains(err.Error(), "403"))
		require.True(t, strings.Contains(err.Error(), "AccessDenied"))
	})

	t.Run("body over limit", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write(make([]byte, 64))
		}))
		defer ts.Close()

		_, err := Download(context.Background(), ts.Client(), ts.URL, 10)
		require.ErrorIs(t, err, ErrTooLarge)
	})

	t.Run("cancelled context aborts", func(t *testing.T) {
		release := make(chan struct{})
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		defer ts.Close()
		defer close(release)

		ctx, cancel := context.WithCancel(context.Background())
		go func() {
			time.Sleep(20 * time.Millisecond)
			cancel()
		}()

		_, err := Download(ctx, ts.Client(), ts.URL, 1024)
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("bad url", func(t *testing.T) {
		_, err := Download(context.Background(), nil, "://bad", 10)
		require.Error(t, err)
	})
}
