package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/cutil"
)

// Link is an anchor found in a document.
type Link struct {
	URL  string `json:"url"`
	Text string `json:"text"`
}

// Links returns the http(s) links of doc resolved against baseURL,
// deduplicated by URL in document order. Fragments are stripped.
func Links(doc *goquery.Document, baseURL string) ([]Link, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, cutil.Errorf(cutil.EINVALID, "invalid base URL: %v", err)
	}

	seen := make(map[string]bool)
	var links []Link
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		resolved := resolveURL(base, href)
		if resolved == "" || seen[resolved] {
			return
		}
		seen[resolved] = true
		links = append(links, Link{
			URL:  resolved,
			Text: strings.TrimSpace(sel.Text()),
		})
	})
	return links, nil
}

// ImageURLs returns the src of every img element of doc resolved against
// baseURL, deduplicated in document order.
func ImageURLs(doc *goquery.Document, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, cutil.Errorf(cutil.EINVALID, "invalid base URL: %v", err)
	}

	seen := make(map[string]bool)
	var images []string
	doc.Find("img[src]").Each(func(_ int, sel *goquery.Selection) {
		src, _ := sel.Attr("src")
		resolved := resolveURL(base, src)
		if resolved == "" || seen[resolved] {
			return
		}
		seen[resolved] = true
		images = append(images, resolved)
	})
	return images, nil
}

// resolveURL resolves href against base and strips the fragment.
// Returns empty string for unparseable or non-HTTP references.
func resolveURL(base *url.URL, href string) string {
	if isNonHTTPLink(href) {
		return ""
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	return resolved.String()
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return href == "" ||
		strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
