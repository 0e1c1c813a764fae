// Package trafilatura implements cutil.Extractor with go-trafilatura.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/cutil"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements cutil.Extractor at compile time.
var _ cutil.Extractor = (*Extractor)(nil)

// Extractor finds the main content of a page and drops the boilerplate.
type Extractor struct {
	opts trafilatura.Options
}

// NewExtractor creates a new Extractor. The fallback extractors are
// enabled so short pages still yield content.
func NewExtractor() *Extractor {
	return &Extractor{
		opts: trafilatura.Options{EnableFallback: true},
	}
}

// Extract returns the article found in rawHTML. Empty input is EINVALID.
func (e *Extractor) Extract(rawHTML string) (*cutil.Article, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, cutil.Errorf(cutil.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), e.opts)
	if err != nil {
		return nil, cutil.Errorf(cutil.EINVALID, "failed to extract content: %v", err)
	}

	article := &cutil.Article{
		Title:  result.Metadata.Title,
		Author: result.Metadata.Author,
		Text:   strings.TrimSpace(result.ContentText),
	}
	if result.ContentNode != nil {
		var buf bytes.Buffer
		if err := html.Render(&buf, result.ContentNode); err != nil {
			return nil, err
		}
		article.ContentHTML = buf.String()
	}

	return article, nil
}
