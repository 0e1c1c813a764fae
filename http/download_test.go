package http_test

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/cutil"
	cutilhttp "github.com/fwojciec/cutil/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Download(t *testing.T) {
	t.Parallel()

	t.Run("writes body to file creating parent directories", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("file content"))
		}))
		defer server.Close()

		dest := filepath.Join(t.TempDir(), "a", "b", "file.txt")
		p, err := cutilhttp.NewFetcher().Download(context.Background(), server.URL+"/file.txt", dest, nil)
		require.NoError(t, err)
		assert.Equal(t, dest, p)

		b, err := os.ReadFile(dest)
		require.NoError(t, err)
		assert.Equal(t, "file content", string(b))
	})

	t.Run("returns fetch error and writes nothing for non-200 status", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.NotFoundHandler())
		defer server.Close()

		dest := filepath.Join(t.TempDir(), "missing.txt")
		_, err := cutilhttp.NewFetcher().Download(context.Background(), server.URL, dest, nil)
		require.Error(t, err)
		assert.Equal(t, cutil.EFETCH, cutil.ErrorCode(err))

		_, err = os.Stat(dest)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("sends caller headers", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(r.Header.Get("User-Agent")))
		}))
		defer server.Close()

		dest := filepath.Join(t.TempDir(), "ua.txt")
		_, err := cutilhttp.NewFetcher().Download(context.Background(), server.URL, dest, cutil.DefaultHeader())
		require.NoError(t, err)

		b, err := os.ReadFile(dest)
		require.NoError(t, err)
		assert.Equal(t, cutil.DefaultHeader()["User-Agent"], string(b))
	})
}

func TestFetcher_ImageSize(t *testing.T) {
	t.Parallel()

	var pngData bytes.Buffer
	require.NoError(t, png.Encode(&pngData, image.NewRGBA(image.Rect(0, 0, 3, 2))))

	t.Run("returns image dimensions", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write(pngData.Bytes())
		}))
		defer server.Close()

		size, err := cutilhttp.NewFetcher().ImageSize(context.Background(), server.URL+"/img.png")
		require.NoError(t, err)
		assert.Equal(t, cutil.ImageSize{Width: 3, Height: 2}, size)
	})

	t.Run("accepts protocol-relative URLs", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write(pngData.Bytes())
		}))
		defer server.Close()

		size, err := cutilhttp.NewFetcher().ImageSize(context.Background(), strings.TrimPrefix(server.URL, "http:"))
		require.NoError(t, err)
		assert.Equal(t, 3, size.Width)
	})

	t.Run("returns EINVALID for non-image body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("not an image"))
		}))
		defer server.Close()

		_, err := cutilhttp.NewFetcher().ImageSize(context.Background(), server.URL)
		require.Error(t, err)
		assert.Equal(t, cutil.EINVALID, cutil.ErrorCode(err))
	})
}
