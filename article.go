package cutil

// Article is the main content of a web page with boilerplate removed.
type Article struct {
	Title  string `json:"title"`
	Author string `json:"author,omitempty"`

	// ContentHTML keeps the structure of the main content. Navigation,
	// footers, sidebars and ads are gone.
	ContentHTML string `json:"-"`

	// Text is ContentHTML as plain text.
	Text string `json:"text"`
}

// Extractor pulls the main content out of an HTML page.
type Extractor interface {
	Extract(html string) (*Article, error)
}
