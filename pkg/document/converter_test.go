package document_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tailoring/pkg/document"
)

func TestNewPDFConverter_EmptyURL(t *testing.T) {
	t.Parallel()
	_, err := document.NewPDFConverter("")
	assert.ErrorIs(t, err, document.ErrInvalidConfig)
}

func TestPDFConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("returns rendered pdf", func(t *testing.T) {
		t.Parallel()
		var got string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/render", r.URL.Path)
			assert.Equal(t, http.MethodPost, r.Method)
			body, _ := io.ReadAll(r.Body)
			got = string(body)
			w.Header().Set("Content-Type", "application/pdf")
			_, _ = w.Write([]byte("%PDF-1.7 content"))
		}))
		t.Cleanup(srv.Close)

		c, err := document.NewPDFConverter(srv.URL)
		require.NoError(t, err)

		out, err := c.Convert(context.Background(), "<p>hi</p>")
		require.NoError(t, err)
		assert.Equal(t, "%PDF-1.7 content", string(out))
		assert.Equal(t, "<p>hi</p>", got)
		assert.Equal(t, "application/pdf", c.ContentType())
		assert.Equal(t, "pdf", c.Extension())
	})

	t.Run("custom endpoint", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/forms/chromium/convert/html" {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			_, _ = w.Write([]byte("%PDF-1.4"))
		}))
		t.Cleanup(srv.Close)

		c, err := document.NewPDFConverter(srv.URL, document.WithPDFEndpoint("/forms/chromium/convert/html"))
		require.NoError(t, err)
		_, err = c.Convert(context.Background(), "<p/>")
		require.NoError(t, err)
	})

	t.Run("client error is not retried", func(t *testing.T) {
		t.Parallel()
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusBadRequest)
		}))
		t.Cleanup(srv.Close)

		c, err := document.NewPDFConverter(srv.URL, document.WithPDFRetries(3))
		require.NoError(t, err)
		_, err = c.Convert(context.Background(), "<p/>")
		assert.ErrorIs(t, err, document.ErrConvert)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("server error is retried", func(t *testing.T) {
		t.Parallel()
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			if calls.Add(1) == 1 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			_, _ = w.Write([]byte("%PDF-1.7"))
		}))
		t.Cleanup(srv.Close)

		c, err := document.NewPDFConverter(srv.URL, document.WithPDFRetries(1))
		require.NoError(t, err)
		out, err := c.Convert(context.Background(), "<p/>")
		require.NoError(t, err)
		assert.Equal(t, "%PDF-1.7", string(out))
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("non pdf body is rejected", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("<html>oops</html>"))
		}))
		t.Cleanup(srv.Close)

		c, err := document.NewPDFConverter(srv.URL, document.WithPDFRetries(0), document.WithPDFTimeout(time.Second))
		require.NoError(t, err)
		_, err = c.Convert(context.Background(), "<p/>")
		assert.ErrorIs(t, err, document.ErrConvert)
	})
}
