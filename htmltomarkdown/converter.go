// Package htmltomarkdown converts HTML and parsed documents to Markdown.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/cutil"
)

// Ensure Converter implements cutil.Converter at compile time.
var _ cutil.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to convert HTML to Markdown.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms HTML content into Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", cutil.Errorf(cutil.EINVALID, "empty HTML input")
	}

	result, err := c.conv.ConvertString(html)
	if err != nil {
		return "", err
	}

	return result, nil
}

// ConvertDocument transforms a parsed document into Markdown. Relative
// links and images are made absolute when baseURL is set.
func (c *Converter) ConvertDocument(doc *goquery.Document, baseURL string) (string, error) {
	if doc == nil || len(doc.Nodes) == 0 {
		return "", cutil.Errorf(cutil.EINVALID, "empty document")
	}

	var result []byte
	var err error
	if baseURL != "" {
		result, err = c.conv.ConvertNode(doc.Nodes[0], converter.WithDomain(baseURL))
	} else {
		result, err = c.conv.ConvertNode(doc.Nodes[0])
	}
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(result)), nil
}
