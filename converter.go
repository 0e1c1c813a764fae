package cutil

import "github.com/PuerkitoBio/goquery"

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms an HTML string into Markdown.
	Convert(html string) (string, error)

	// ConvertDocument transforms a parsed document into Markdown,
	// resolving relative links against baseURL when it is not empty.
	ConvertDocument(doc *goquery.Document, baseURL string) (string, error)
}
