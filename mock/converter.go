package mock

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/cutil"
)

var _ cutil.Converter = (*Converter)(nil)

// Converter is a mock implementation of cutil.Converter.
type Converter struct {
	ConvertFn         func(html string) (string, error)
	ConvertDocumentFn func(doc *goquery.Document, baseURL string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

func (c *Converter) ConvertDocument(doc *goquery.Document, baseURL string) (string, error) {
	return c.ConvertDocumentFn(doc, baseURL)
}

var _ cutil.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of cutil.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*cutil.Article, error)
}

func (e *Extractor) Extract(html string) (*cutil.Article, error) {
	return e.ExtractFn(html)
}
