// Package goquery provides HTML parsing and query helpers built on goquery.
package goquery

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/cutil"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Parse parses an HTML document. The parser is permissive: malformed
// markup still yields a document, and only read failures are errors.
func Parse(r io.Reader) (*goquery.Document, error) {
	node, err := html.Parse(r)
	if err != nil {
		return nil, cutil.Errorf(cutil.EINVALID, "failed to parse HTML: %v", err)
	}
	return goquery.NewDocumentFromNode(node), nil
}

// ParseString is Parse for an in-memory string.
func ParseString(s string) (*goquery.Document, error) {
	return Parse(strings.NewReader(s))
}

// RemoveTag removes every tag element, together with its content, from an
// HTML fragment and returns the re-rendered fragment. An empty tag returns
// the input unchanged.
func RemoveTag(fragment, tag string) (string, error) {
	if tag == "" {
		return fragment, nil
	}

	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		return "", cutil.Errorf(cutil.EINVALID, "failed to parse HTML: %v", err)
	}

	// Re-parent the fragment so it can be queried and rendered as one.
	root := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	for _, n := range nodes {
		root.AppendChild(n)
	}

	doc := goquery.NewDocumentFromNode(root)
	doc.Find(tag).Remove()
	return doc.Html()
}
