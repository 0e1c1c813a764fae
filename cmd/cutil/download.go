package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/cutil"
	"github.com/fwojciec/cutil/fs"
)

// Run executes the download command.
func (c *DownloadCmd) Run(deps *Dependencies) error {
	header, err := buildHeader(deps.Header, c.Header)
	if err != nil {
		return err
	}

	path, err := c.destination()
	if err != nil {
		return err
	}

	written, err := deps.Downloader.Download(deps.Ctx, c.URL, path, header)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cutil.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, written)
	return nil
}

// destination resolves the file to write. An empty path or an existing
// directory gets a file name derived from the URL.
func (c *DownloadCmd) destination() (string, error) {
	path := fs.NormPath(c.Path)
	if c.Path != "" {
		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			return path, nil
		}
	}

	name, err := fs.URLToFilename(c.URL)
	if err != nil {
		return "", err
	}
	if c.Path == "" {
		return name, nil
	}
	return filepath.Join(path, name), nil
}

// Run executes the imagesize command.
func (c *ImageSizeCmd) Run(deps *Dependencies) error {
	var failed int
	for _, u := range c.URLs {
		size, err := deps.Images.ImageSize(deps.Ctx, u)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", cutil.ErrorMessage(err))
			failed++
			continue
		}
		fmt.Fprintf(deps.Stdout, "%dx%d  %s\n", size.Width, size.Height, u)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d images failed", failed, len(c.URLs))
	}
	return nil
}
