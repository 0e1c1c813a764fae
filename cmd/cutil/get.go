package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/cutil"
	"github.com/fwojciec/cutil/fs"
	cutilgoquery "github.com/fwojciec/cutil/goquery"
	"github.com/fwojciec/cutil/parallel"
	"github.com/fwojciec/cutil/terminal"
)

// getResult is what "get" reports for one URL.
type getResult struct {
	URL    string `json:"url"`
	Result any    `json:"result"`
}

// Run executes the get command.
func (c *GetCmd) Run(deps *Dependencies) error {
	mode, err := cutil.ParseMode(c.Mode)
	if err != nil {
		return err
	}

	header, err := buildHeader(deps.Header, c.Header)
	if err != nil {
		return err
	}

	fetch := func(ctx context.Context, rawURL string) (getResult, error) {
		resp, err := deps.Fetcher.Fetch(ctx, &cutil.Request{URL: rawURL, Header: header, Mode: mode})
		if err != nil {
			return getResult{}, err
		}
		v, err := c.render(deps, resp)
		if err != nil {
			return getResult{}, err
		}
		return getResult{URL: rawURL, Result: v}, nil
	}

	var results []getResult
	if len(c.URLs) == 1 {
		r, err := fetch(deps.Ctx, c.URLs[0])
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", cutil.ErrorMessage(err))
			return err
		}
		results = []getResult{r}
	} else {
		progress := newProgress(deps, len(c.URLs))
		results, err = parallel.Map(deps.Ctx, c.Concurrency, c.URLs, func(ctx context.Context, rawURL string) (getResult, error) {
			defer progress.step(rawURL)
			return fetch(ctx, rawURL)
		}, deps.Logger)
		progress.done()
		if err != nil {
			return err
		}
		if failed := len(c.URLs) - len(results); failed > 0 {
			fmt.Fprintf(deps.Stderr, "%d of %d fetches failed\n", failed, len(c.URLs))
		}
	}

	if c.DB != "" && len(results) > 0 {
		if err := storeResults(deps, c.DB, results); err != nil {
			return err
		}
	}

	if c.Output != "" {
		var data any = results
		if len(c.URLs) == 1 {
			data = results[0]
		}
		path, err := fs.DumpJSON(c.Output, data)
		if err != nil {
			return err
		}
		fmt.Fprintln(deps.Stdout, path)
		return nil
	}

	for _, r := range results {
		if len(c.URLs) > 1 {
			fmt.Fprintf(deps.Stdout, "==> %s <==\n", r.URL)
		}
		if err := printResult(deps, r.Result); err != nil {
			return err
		}
	}

	return nil
}

// render turns a response into the value requested by the flags.
func (c *GetCmd) render(deps *Dependencies, resp *cutil.Response) (any, error) {
	if resp.Document == nil {
		return resp.Data, nil
	}
	doc := resp.Document

	if c.Article {
		return c.renderArticle(deps, doc)
	}

	switch {
	case c.Select != "":
		var texts []string
		doc.Find(c.Select).Each(func(_ int, sel *goquery.Selection) {
			texts = append(texts, strings.TrimSpace(sel.Text()))
		})
		return texts, nil
	case c.Links:
		return cutilgoquery.Links(doc, resp.URL)
	case c.Images:
		return cutilgoquery.ImageURLs(doc, resp.URL)
	case c.Markdown:
		return deps.Converter.ConvertDocument(doc, resp.URL)
	default:
		return goquery.OuterHtml(doc.Selection)
	}
}

// renderArticle extracts the main content of doc, as Markdown when asked.
func (c *GetCmd) renderArticle(deps *Dependencies, doc *goquery.Document) (any, error) {
	page, err := goquery.OuterHtml(doc.Selection)
	if err != nil {
		return nil, err
	}
	article, err := deps.Extractor.Extract(page)
	if err != nil {
		return nil, err
	}
	if !c.Markdown {
		return article, nil
	}

	md, err := deps.Converter.Convert(article.ContentHTML)
	if err != nil {
		return nil, err
	}
	if article.Title != "" {
		md = "# " + article.Title + "\n\n" + md
	}
	return md, nil
}

func printResult(deps *Dependencies, v any) error {
	switch v := v.(type) {
	case string:
		fmt.Fprintln(deps.Stdout, v)
	case []string:
		for _, s := range v {
			fmt.Fprintln(deps.Stdout, s)
		}
	case []cutilgoquery.Link:
		for _, l := range v {
			fmt.Fprintf(deps.Stdout, "%s  %s\n", l.URL, l.Text)
		}
	default:
		b, err := json.MarshalIndent(v, "", "    ")
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		fmt.Fprintln(deps.Stdout, string(b))
	}
	return nil
}

// buildHeader merges "Name: value" flags over base.
func buildHeader(base map[string]string, flags []string) (map[string]string, error) {
	header := make(map[string]string, len(base)+len(flags))
	for k, v := range base {
		header[k] = v
	}
	for _, f := range flags {
		name, value, ok := strings.Cut(f, ":")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, cutil.Errorf(cutil.EINVALID, "invalid header %q, expected 'Name: value'", f)
		}
		header[name] = strings.TrimSpace(value)
	}
	return header, nil
}

// progress redraws "n/total url" on stderr while fetches run.
type progress struct {
	mu    sync.Mutex
	line  *terminal.Line
	n     int
	total int
}

func newProgress(deps *Dependencies, total int) *progress {
	return &progress{line: terminal.NewLine(deps.Stderr), total: total}
}

func (p *progress) step(rawURL string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.n++
	_ = p.line.Print(fmt.Sprintf("%d/%d %s", p.n, p.total, rawURL))
}

func (p *progress) done() {
	p.mu.Lock()
	defer p.mu.Unlock()
	_ = p.line.Done()
}
