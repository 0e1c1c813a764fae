// Package fs provides file-system helpers: path normalization and creation,
// hashed directory layouts, and JSON persistence.
package fs

import (
	"crypto/md5"
	"encoding/hex"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/fwojciec/cutil"
)

// MaxHashDepth is the deepest directory layout HashedPath can build from
// a 32-character md5 hex digest.
const MaxHashDepth = 16

// envVar matches $name and ${name} references.
var envVar = regexp.MustCompile(`\$(\w+|\{[^}]*\})`)

// NormPath expands a leading "~" to the user's home directory, expands
// $name and ${name} environment variables, and cleans the result. Unset
// variables and any other "$" are left exactly as written.
func NormPath(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") || strings.HasPrefix(p, `~\`) {
		if home, err := os.UserHomeDir(); err == nil {
			p = home + p[1:]
		}
	}
	p = envVar.ReplaceAllStringFunc(p, func(ref string) string {
		name := strings.TrimSuffix(strings.TrimPrefix(ref[1:], "{"), "}")
		if v, ok := os.LookupEnv(name); ok {
			return v
		}
		return ref
	})
	return filepath.Clean(p)
}

// CreatePath normalizes p and makes sure the directory it refers to exists.
// When isDir is false p names a file and its parent directory is created.
// It returns the normalized path.
func CreatePath(p string, isDir bool) (string, error) {
	p = NormPath(p)

	dir := p
	if !isDir {
		dir = filepath.Dir(p)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return p, nil
}

// HashedPath is a directory location derived from a name's md5 digest.
type HashedPath struct {
	Path string `json:"path"` // directory, ending in a separator
	Hash string `json:"hash"` // md5 hex digest of the name
}

// NewHashedPath builds base/ab/cd/... from the md5 digest of name, using
// depth two-character levels. depth is clamped to [0, MaxHashDepth].
// No directories are created.
func NewHashedPath(base, name string, depth int) HashedPath {
	depth = min(max(depth, 0), MaxHashDepth)

	sum := md5.Sum([]byte(name))
	hash := hex.EncodeToString(sum[:])

	sep := string(filepath.Separator)
	var b strings.Builder
	b.WriteString(base)
	if !strings.HasSuffix(base, sep) {
		b.WriteString(sep)
	}
	for i := 0; i < depth; i++ {
		b.WriteString(hash[i*2 : i*2+2])
		b.WriteString(sep)
	}

	return HashedPath{Path: b.String(), Hash: hash}
}

// URLToFilename derives a file name for saving the resource at rawURL.
// Example: https://example.com/img/logo.png → logo.png
// A root or directory URL yields index.html.
func URLToFilename(rawURL string) (string, error) {
	u, err := url.Parse(cutil.NormalizeURL(rawURL))
	if err != nil {
		return "", cutil.Errorf(cutil.EINVALID, "invalid URL: %v", err)
	}

	p := u.Path
	if p == "" || strings.HasSuffix(p, "/") {
		return "index.html", nil
	}

	// Keep the extension dot that Sanitize would otherwise drop.
	name := path.Base(p)
	ext := cutil.FileExt(name)
	stem := cutil.Sanitize(strings.TrimSuffix(name, ext))
	if stem == "" {
		return "index.html", nil
	}
	if ext == "" {
		return stem, nil
	}
	return stem + "." + cutil.Sanitize(ext[1:]), nil
}
