package main

import (
	"fmt"
	"io"

	"github.com/fwojciec/cutil"
	"github.com/fwojciec/cutil/fs"
	cutilgoquery "github.com/fwojciec/cutil/goquery"
)

// Run executes the sanitize command.
func (c *SanitizeCmd) Run(deps *Dependencies) error {
	for _, v := range c.Values {
		fmt.Fprintln(deps.Stdout, cutil.Sanitize(v))
	}
	return nil
}

// Run executes the strip command.
func (c *StripCmd) Run(deps *Dependencies) error {
	b, err := io.ReadAll(deps.Stdin)
	if err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}

	out := string(b)
	for _, tag := range c.Tags {
		out, err = cutilgoquery.RemoveTag(out, tag)
		if err != nil {
			return err
		}
	}

	fmt.Fprintln(deps.Stdout, out)
	return nil
}

// Run executes the hashpath command.
func (c *HashpathCmd) Run(deps *Dependencies) error {
	hp := fs.NewHashedPath(fs.NormPath(c.Base), c.Name, c.Depth)
	if c.Create {
		if _, err := fs.CreatePath(hp.Path, true); err != nil {
			return err
		}
	}
	fmt.Fprintf(deps.Stdout, "%s  %s\n", hp.Path, hp.Hash)
	return nil
}

// Run executes the uid command.
func (c *UIDCmd) Run(deps *Dependencies) error {
	fmt.Fprintln(deps.Stdout, cutil.NewUID())
	return nil
}

// Run executes the key command.
func (c *KeyCmd) Run(deps *Dependencies) error {
	var key string
	var err error
	if c.Value < 0 {
		key, err = cutil.RandomKey(c.Size)
	} else {
		key, err = cutil.GenerateKey(c.Value, c.Salt, c.Size)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(deps.Stdout, key)
	return nil
}
