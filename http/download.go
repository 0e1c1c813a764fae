package http

import (
	"context"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fwojciec/cutil"
	"github.com/fwojciec/cutil/fs"
	_ "golang.org/x/image/webp"
)

// ImageSizeTimeout bounds the request made by ImageSize.
const ImageSizeTimeout = 15 * time.Second

// Download writes the body at rawURL to path and returns the written path.
// Parent directories are created as needed. A file left incomplete by a
// failed transfer is removed.
func (f *Fetcher) Download(ctx context.Context, rawURL, path string, header map[string]string) (string, error) {
	path, err := fs.CreatePath(path, false)
	if err != nil {
		return "", err
	}

	resp, err := f.get(ctx, rawURL, header)
	if err != nil {
		return "", cutil.FetchError(err)
	}
	defer resp.Body.Close()

	out, err := os.Create(path)
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(path)
		return "", cutil.FetchError(err)
	}
	if err := out.Close(); err != nil {
		os.Remove(path)
		return "", err
	}

	return path, nil
}

// ImageSize fetches the image at rawURL and returns its dimensions without
// decoding the pixel data. Protocol-relative URLs ("//host/img.png") are
// fetched over http. PNG, JPEG, GIF and WebP are supported.
func (f *Fetcher) ImageSize(ctx context.Context, rawURL string) (cutil.ImageSize, error) {
	if strings.HasPrefix(rawURL, "//") {
		rawURL = "http:" + rawURL
	}

	ctx, cancel := context.WithTimeout(ctx, ImageSizeTimeout)
	defer cancel()

	resp, err := f.get(ctx, rawURL, nil)
	if err != nil {
		return cutil.ImageSize{}, cutil.FetchError(err)
	}
	defer resp.Body.Close()

	cfg, _, err := image.DecodeConfig(resp.Body)
	if err != nil {
		return cutil.ImageSize{}, cutil.Errorf(cutil.EINVALID, "failed to decode image %s: %v", rawURL, err)
	}

	return cutil.ImageSize{Width: cfg.Width, Height: cfg.Height}, nil
}
