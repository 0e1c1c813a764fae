package mock

import (
	"context"

	"github.com/fwojciec/cutil"
)

var _ cutil.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of cutil.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, req *cutil.Request) (*cutil.Response, error)
}

func (f *Fetcher) Fetch(ctx context.Context, req *cutil.Request) (*cutil.Response, error) {
	return f.FetchFn(ctx, req)
}

var _ cutil.Downloader = (*Downloader)(nil)

// Downloader is a mock implementation of cutil.Downloader.
type Downloader struct {
	DownloadFn func(ctx context.Context, url, path string, header map[string]string) (string, error)
}

func (d *Downloader) Download(ctx context.Context, url, path string, header map[string]string) (string, error) {
	return d.DownloadFn(ctx, url, path, header)
}

var _ cutil.ImageSizer = (*ImageSizer)(nil)

// ImageSizer is a mock implementation of cutil.ImageSizer.
type ImageSizer struct {
	ImageSizeFn func(ctx context.Context, url string) (cutil.ImageSize, error)
}

func (s *ImageSizer) ImageSize(ctx context.Context, url string) (cutil.ImageSize, error) {
	return s.ImageSizeFn(ctx, url)
}
