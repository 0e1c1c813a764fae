package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/cutil"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdin      io.Reader
	Stdout     io.Writer
	Stderr     io.Writer
	Logger     *slog.Logger
	Header     map[string]string
	Fetcher    cutil.Fetcher
	Downloader cutil.Downloader
	Images     cutil.ImageSizer
	Converter  cutil.Converter
	Extractor  cutil.Extractor
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose   bool          `short:"v" env:"CUTIL_VERBOSE" help:"Log every request to stderr"`
	Timeout   time.Duration `default:"30s" env:"CUTIL_TIMEOUT" help:"Per-request timeout (0 waits forever)"`
	UserAgent string        `name:"user-agent" env:"CUTIL_USER_AGENT" help:"Override the default User-Agent header"`
	RateLimit float64       `name:"rate-limit" env:"CUTIL_RATE_LIMIT" help:"Maximum requests per second across get, download and imagesize (0 is unlimited)"`
	PerHost   bool          `name:"per-host" env:"CUTIL_PER_HOST" help:"Apply the rate limit to each host separately"`

	Get       GetCmd       `cmd:"" help:"Fetch URLs and print the parsed result"`
	Download  DownloadCmd  `cmd:"" help:"Save a URL to a file"`
	ImageSize ImageSizeCmd `cmd:"" name:"imagesize" help:"Print the dimensions of a remote image"`
	Sanitize  SanitizeCmd  `cmd:"" help:"Make strings safe for use as file names"`
	Strip     StripCmd     `cmd:"" help:"Remove tags and their content from HTML read on stdin"`
	Hashpath  HashpathCmd  `cmd:"" help:"Print the hashed directory for a name"`
	UID       UIDCmd       `cmd:"" name:"uid" help:"Print a random unique ID"`
	Key       KeyCmd       `cmd:"" help:"Print a short hashids key"`
}

// GetCmd is the "get" subcommand.
type GetCmd struct {
	URLs        []string `arg:"" name:"url" help:"URLs to fetch"`
	Mode        string   `short:"m" enum:"markup,json" default:"markup" help:"Body format: markup or json"`
	Header      []string `short:"H" name:"header" help:"Extra request header as 'Name: value' (repeatable)"`
	Select      string   `short:"s" help:"Print the text of elements matching a CSS selector"`
	Links       bool     `help:"Print the links of each page"`
	Images      bool     `help:"Print the image URLs of each page"`
	Article     bool     `short:"a" help:"Reduce each page to its main content"`
	Markdown    bool     `help:"Print each page as Markdown"`
	Repair      bool     `help:"Repair malformed JSON before decoding"`
	Output      string   `short:"o" help:"Write the results as JSON to this file"`
	DB          string   `name:"db" env:"CUTIL_DB" help:"Also upsert the results into this SQLite database"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent fetch limit"`
}

// DownloadCmd is the "download" subcommand.
type DownloadCmd struct {
	URL    string   `arg:"" help:"URL to download"`
	Path   string   `arg:"" optional:"" help:"Destination file or directory (default: current directory)"`
	Header []string `short:"H" name:"header" help:"Extra request header as 'Name: value' (repeatable)"`
}

// ImageSizeCmd is the "imagesize" subcommand.
type ImageSizeCmd struct {
	URLs []string `arg:"" name:"url" help:"Image URLs"`
}

// SanitizeCmd is the "sanitize" subcommand.
type SanitizeCmd struct {
	Values []string `arg:"" name:"value" help:"Strings to sanitize"`
}

// StripCmd is the "strip" subcommand.
type StripCmd struct {
	Tags []string `arg:"" name:"tag" help:"Tag names to remove"`
}

// HashpathCmd is the "hashpath" subcommand.
type HashpathCmd struct {
	Base   string `arg:"" help:"Base directory"`
	Name   string `arg:"" help:"Name to hash"`
	Depth  int    `short:"d" default:"2" help:"Number of directory levels (max 16)"`
	Create bool   `help:"Create the directory"`
}

// UIDCmd is the "uid" subcommand.
type UIDCmd struct{}

// KeyCmd is the "key" subcommand.
type KeyCmd struct {
	Value int    `arg:"" optional:"" default:"-1" help:"Value to encode (default: random)"`
	Salt  string `env:"CUTIL_KEY_SALT" help:"Hashids salt"`
	Size  int    `default:"8" help:"Minimum key length"`
}
