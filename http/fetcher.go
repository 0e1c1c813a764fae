// Package http provides an HTTP-based implementation of cutil.Fetcher and
// cutil.Downloader. Every failure is reported as a cutil EFETCH error.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/cutil"
	cutilgoquery "github.com/fwojciec/cutil/goquery"
	"github.com/kaptinlin/jsonrepair"
	"golang.org/x/net/html/charset"
)

// DefaultMaxRedirects is the number of redirects followed before a request fails.
const DefaultMaxRedirects = 30

// Ensure Fetcher implements the cutil service interfaces at compile time.
var (
	_ cutil.Fetcher    = (*Fetcher)(nil)
	_ cutil.Downloader = (*Fetcher)(nil)
	_ cutil.ImageSizer = (*Fetcher)(nil)
)

// Fetcher retrieves URLs with a single GET request each. It holds no
// mutable state and is safe for concurrent use.
type Fetcher struct {
	client       *http.Client
	timeout      time.Duration
	maxRedirects int
	repairJSON   bool
	transport    http.RoundTripper
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for each request. By default requests
// have no timeout and wait as long as the server takes.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithMaxRedirects sets how many redirects are followed before the request
// fails. Defaults to DefaultMaxRedirects.
func WithMaxRedirects(n int) Option {
	return func(f *Fetcher) {
		f.maxRedirects = n
	}
}

// WithJSONRepair makes JSON mode retry decoding of a malformed body after
// repairing it (trailing commas, single quotes, missing brackets and so on).
func WithJSONRepair() Option {
	return func(f *Fetcher) {
		f.repairJSON = true
	}
}

// WithTransport sets the round tripper used by the underlying client.
func WithTransport(rt http.RoundTripper) Option {
	return func(f *Fetcher) {
		f.transport = rt
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		maxRedirects: DefaultMaxRedirects,
	}
	for _, opt := range opts {
		opt(f)
	}

	maxRedirects := f.maxRedirects
	f.client = &http.Client{
		Timeout:   f.timeout,
		Transport: f.transport,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("exceeded %d redirects", maxRedirects)
			}
			return nil
		},
	}

	return f
}

// Fetch performs one GET request for req and parses a 200 response body
// according to req.Mode. Any other status, transport failure or parse
// failure is returned as an EFETCH error carrying the underlying message.
func (f *Fetcher) Fetch(ctx context.Context, req *cutil.Request) (*cutil.Response, error) {
	resp, err := f.fetch(ctx, req)
	if err != nil {
		return nil, cutil.FetchError(err)
	}
	return resp, nil
}

// GetSite fetches rawURL with header and parses the body according to mode.
func (f *Fetcher) GetSite(ctx context.Context, rawURL string, header map[string]string, mode cutil.Mode) (*cutil.Response, error) {
	return f.Fetch(ctx, &cutil.Request{URL: rawURL, Header: header, Mode: mode})
}

// GetJSON fetches rawURL and returns the decoded JSON body.
func (f *Fetcher) GetJSON(ctx context.Context, rawURL string, header map[string]string) (any, error) {
	resp, err := f.GetSite(ctx, rawURL, header, cutil.ModeJSON)
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// GetDocument fetches rawURL and returns the parsed HTML document.
func (f *Fetcher) GetDocument(ctx context.Context, rawURL string, header map[string]string) (*goquery.Document, error) {
	resp, err := f.GetSite(ctx, rawURL, header, cutil.ModeMarkup)
	if err != nil {
		return nil, err
	}
	return resp.Document, nil
}

func (f *Fetcher) fetch(ctx context.Context, req *cutil.Request) (*cutil.Response, error) {
	resp, err := f.get(ctx, req.URL, req.Header)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	out := &cutil.Response{
		URL:        resp.Request.URL.String(),
		StatusCode: resp.StatusCode,
	}

	switch req.Mode {
	case cutil.ModeJSON:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		out.Data, err = f.decodeJSON(body)
		if err != nil {
			return nil, err
		}
	default:
		r, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
		if err != nil {
			return nil, err
		}
		out.Document, err = cutilgoquery.Parse(r)
		if err != nil {
			return nil, err
		}
	}

	return out, nil
}

// get issues the GET request and returns the response only for status 200.
// The caller must close the response body.
func (f *Fetcher) get(ctx context.Context, rawURL string, header map[string]string) (*http.Response, error) {
	url := cutil.NormalizeURL(rawURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range header {
		if http.CanonicalHeaderKey(k) == "Host" {
			req.Host = v
			continue
		}
		req.Header.Set(k, v)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d %s for %s", resp.StatusCode, http.StatusText(resp.StatusCode), url)
	}

	return resp, nil
}

func (f *Fetcher) decodeJSON(body []byte) (any, error) {
	var v any
	err := json.Unmarshal(body, &v)
	if err == nil || !f.repairJSON {
		return v, err
	}

	repaired, rerr := jsonrepair.JSONRepair(string(body))
	if rerr != nil {
		return nil, err
	}
	if err := json.Unmarshal(bytes.TrimSpace([]byte(repaired)), &v); err != nil {
		return nil, err
	}
	return v, nil
}
