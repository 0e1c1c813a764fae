// Package slog provides log/slog decorators for cutil services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/cutil"
)

// Ensure LoggingFetcher implements cutil.Fetcher.
var _ cutil.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with request logging.
type LoggingFetcher struct {
	next   cutil.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next cutil.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the operation.
func (f *LoggingFetcher) Fetch(ctx context.Context, req *cutil.Request) (resp *cutil.Response, err error) {
	defer func(begin time.Time) {
		status := 0
		if resp != nil {
			status = resp.StatusCode
		}
		f.logger.Info("fetch",
			"url", req.URL,
			"mode", req.Mode.String(),
			"status", status,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, req)
}

// Ensure LoggingDownloader implements cutil.Downloader.
var _ cutil.Downloader = (*LoggingDownloader)(nil)

// LoggingDownloader wraps a Downloader with download logging.
type LoggingDownloader struct {
	next   cutil.Downloader
	logger *slog.Logger
}

// NewLoggingDownloader creates a new LoggingDownloader.
func NewLoggingDownloader(next cutil.Downloader, logger *slog.Logger) *LoggingDownloader {
	return &LoggingDownloader{next: next, logger: logger}
}

// Download delegates to the wrapped downloader and logs the operation.
func (d *LoggingDownloader) Download(ctx context.Context, url, path string, header map[string]string) (written string, err error) {
	defer func(begin time.Time) {
		d.logger.Info("download",
			"url", url,
			"path", written,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return d.next.Download(ctx, url, path, header)
}
