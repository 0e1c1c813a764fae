package htmltomarkdown_test

import (
	"testing"

	"github.com/fwojciec/cutil"
	"github.com/fwojciec/cutil/goquery"
	"github.com/fwojciec/cutil/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Converter implements cutil.Converter at compile time.
var _ cutil.Converter = (*htmltomarkdown.Converter)(nil)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("converts headings and paragraphs", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<h1>Title</h1><p>Hello, world!</p>`)

		require.NoError(t, err)
		assert.Contains(t, md, "# Title")
		assert.Contains(t, md, "Hello, world!")
	})

	t.Run("converts links", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<p>Visit <a href="https://example.com">Example</a>.</p>`)

		require.NoError(t, err)
		assert.Contains(t, md, "[Example](https://example.com)")
	})

	t.Run("converts tables", func(t *testing.T) {
		t.Parallel()

		html := `<table>
<thead><tr><th>Name</th><th>Age</th></tr></thead>
<tbody><tr><td>Alice</td><td>30</td></tr></tbody>
</table>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "Alice")
		assert.Contains(t, md, "|")
	})

	t.Run("returns error for empty input", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		_, err := conv.Convert("  ")

		require.Error(t, err)
		assert.Equal(t, cutil.EINVALID, cutil.ErrorCode(err))
	})
}

func TestConverter_ConvertDocument(t *testing.T) {
	t.Parallel()

	t.Run("resolves relative links against base URL", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.ParseString(`<html><body><h2>Docs</h2><a href="/guide">Guide</a></body></html>`)
		require.NoError(t, err)

		conv := htmltomarkdown.NewConverter()
		md, err := conv.ConvertDocument(doc, "https://example.com")

		require.NoError(t, err)
		assert.Contains(t, md, "## Docs")
		assert.Contains(t, md, "[Guide](https://example.com/guide)")
	})

	t.Run("returns error for nil document", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		_, err := conv.ConvertDocument(nil, "")

		require.Error(t, err)
		assert.Equal(t, cutil.EINVALID, cutil.ErrorCode(err))
	})
}
