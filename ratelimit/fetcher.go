package ratelimit

import (
	"context"
	"net/url"

	"github.com/fwojciec/cutil"
)

// gate holds the budget shared by the decorators in this package.
type gate struct {
	limiter *DomainLimiter
	perHost bool
}

// Option configures a rate-limited decorator.
type Option func(*gate)

// PerHost gives every host its own budget.
func PerHost() Option {
	return func(g *gate) {
		g.perHost = true
	}
}

// WithLimiter makes the decorator draw from l instead of a limiter of its
// own, so several decorators can share one budget. The rps passed to the
// constructor is then ignored.
func WithLimiter(l *DomainLimiter) Option {
	return func(g *gate) {
		g.limiter = l
	}
}

func newGate(rps float64, opts []Option) gate {
	var g gate
	for _, opt := range opts {
		opt(&g)
	}
	if g.limiter == nil {
		g.limiter = NewDomainLimiter(rps)
	}
	return g
}

// wait blocks until rawURL may be requested. A wait aborted by ctx is
// reported as an EFETCH error.
func (g *gate) wait(ctx context.Context, rawURL string) error {
	if err := g.limiter.Wait(ctx, g.key(rawURL)); err != nil {
		return cutil.FetchError(err)
	}
	return nil
}

func (g *gate) key(rawURL string) string {
	if !g.perHost {
		return ""
	}
	u, err := url.Parse(cutil.NormalizeURL(rawURL))
	if err != nil {
		return ""
	}
	return u.Host
}

// Ensure Fetcher implements cutil.Fetcher.
var _ cutil.Fetcher = (*Fetcher)(nil)

// Fetcher wraps a cutil.Fetcher so that calls start at most rps times per
// second. By default one budget is shared by all URLs.
type Fetcher struct {
	gate
	next cutil.Fetcher
}

// NewFetcher creates a rate-limited Fetcher around next.
func NewFetcher(next cutil.Fetcher, rps float64, opts ...Option) *Fetcher {
	return &Fetcher{gate: newGate(rps, opts), next: next}
}

// Fetch waits for the rate limit and delegates to the wrapped fetcher.
func (f *Fetcher) Fetch(ctx context.Context, req *cutil.Request) (*cutil.Response, error) {
	if err := f.wait(ctx, req.URL); err != nil {
		return nil, err
	}
	return f.next.Fetch(ctx, req)
}

// Ensure Downloader implements cutil.Downloader.
var _ cutil.Downloader = (*Downloader)(nil)

// Downloader is the cutil.Downloader counterpart of Fetcher.
type Downloader struct {
	gate
	next cutil.Downloader
}

// NewDownloader creates a rate-limited Downloader around next.
func NewDownloader(next cutil.Downloader, rps float64, opts ...Option) *Downloader {
	return &Downloader{gate: newGate(rps, opts), next: next}
}

// Download waits for the rate limit and delegates to the wrapped downloader.
func (d *Downloader) Download(ctx context.Context, rawURL, path string, header map[string]string) (string, error) {
	if err := d.wait(ctx, rawURL); err != nil {
		return "", err
	}
	return d.next.Download(ctx, rawURL, path, header)
}

// Ensure ImageSizer implements cutil.ImageSizer.
var _ cutil.ImageSizer = (*ImageSizer)(nil)

// ImageSizer is the cutil.ImageSizer counterpart of Fetcher.
type ImageSizer struct {
	gate
	next cutil.ImageSizer
}

// NewImageSizer creates a rate-limited ImageSizer around next.
func NewImageSizer(next cutil.ImageSizer, rps float64, opts ...Option) *ImageSizer {
	return &ImageSizer{gate: newGate(rps, opts), next: next}
}

// ImageSize waits for the rate limit and delegates to the wrapped sizer.
func (s *ImageSizer) ImageSize(ctx context.Context, rawURL string) (cutil.ImageSize, error) {
	if err := s.wait(ctx, rawURL); err != nil {
		return cutil.ImageSize{}, err
	}
	return s.next.ImageSize(ctx, rawURL)
}
