package cutil

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Mode selects how a successful response body is interpreted.
type Mode int

const (
	// ModeMarkup parses the body as HTML into a queryable document.
	ModeMarkup Mode = iota
	// ModeJSON decodes the body as JSON into a generic value.
	ModeJSON
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeJSON:
		return "json"
	case ModeMarkup:
		return "markup"
	default:
		return "unknown"
	}
}

// ParseMode converts "json" or "markup" (also "html") into a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "json":
		return ModeJSON, nil
	case "markup", "html", "":
		return ModeMarkup, nil
	}
	return ModeMarkup, Errorf(EINVALID, "unknown mode %q", s)
}

// Request describes a single GET request.
type Request struct {
	URL    string
	Header map[string]string
	Mode   Mode
}

// Response is the parsed result of a successful fetch.
// Data is set in ModeJSON, Document in ModeMarkup.
type Response struct {
	URL        string
	StatusCode int
	Data       any
	Document   *goquery.Document
}

// Fetcher performs one GET request and parses the body according to the
// request mode. Every failure is returned as an EFETCH error.
type Fetcher interface {
	Fetch(ctx context.Context, req *Request) (*Response, error)
}

// Downloader saves the body of a URL to a file.
type Downloader interface {
	// Download writes the body at url to path, creating parent
	// directories as needed, and returns the written path.
	Download(ctx context.Context, url, path string, header map[string]string) (string, error)
}

// ImageSizer reports the dimensions of a remote image.
type ImageSizer interface {
	ImageSize(ctx context.Context, url string) (ImageSize, error)
}

// ImageSize holds the pixel dimensions of an image.
type ImageSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// DefaultScheme is prepended to URLs that have no http or https scheme.
const DefaultScheme = "http://"

// NormalizeURL prefixes rawURL with DefaultScheme unless it already starts
// with http:// or https://. Applying it twice is a no-op.
func NormalizeURL(rawURL string) string {
	lower := strings.ToLower(rawURL)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return rawURL
	}
	return DefaultScheme + rawURL
}

// DefaultHeader returns the request header used when a caller has none of
// its own. Fetchers never apply it implicitly.
func DefaultHeader() map[string]string {
	return map[string]string{
		"User-Agent": "Mozilla/4.0 (compatible; MSIE 5.5; Windows NT)",
	}
}
