package cutil

import (
	"net/url"
	"strings"
)

// sanitizer replaces characters that are invalid in file names on common
// platforms. No replacement produces a character replaced by another
// pair, so a single pass gives the same result as sequential replacement.
var sanitizer = strings.NewReplacer(
	`\`, "-",
	":", "-",
	"/", "-",
	"?", "",
	"<", "",
	">", "",
	"|", "-",
	"*", "`",
	`"`, "'",
	".", "",
	"&", "and",
)

// Sanitize replaces characters that cannot appear in a file or directory name.
func Sanitize(s string) string {
	return sanitizer.Replace(s)
}

// RReplace replaces the last n occurrences of old in s with new.
// A negative n replaces every occurrence.
func RReplace(s, old, new string, n int) string {
	if old == "" || n == 0 {
		return s
	}

	// Collect the tail segments right to left.
	var tails []string
	rest := s
	for n < 0 || len(tails) < n {
		i := strings.LastIndex(rest, old)
		if i < 0 {
			break
		}
		tails = append(tails, rest[i+len(old):])
		rest = rest[:i]
	}

	var b strings.Builder
	b.WriteString(rest)
	for i := len(tails) - 1; i >= 0; i-- {
		b.WriteString(new)
		b.WriteString(tails[i])
	}
	return b.String()
}

// FileExt returns the extension of the last path element, including the
// leading dot. Leading dots of the element do not start an extension, so
// ".bashrc" has none.
func FileExt(p string) string {
	base := p[strings.LastIndexAny(p, `/\`)+1:]
	base = strings.TrimLeft(base, ".")
	i := strings.LastIndex(base, ".")
	if i < 0 {
		return ""
	}
	return base[i:]
}

// MakeURLSafe escapes s for use in a URL query, encoding spaces as '+'.
func MakeURLSafe(s string) string {
	return url.QueryEscape(s)
}
