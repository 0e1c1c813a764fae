// Package terminal provides single-line progress output that redraws in place.
package terminal

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// Fallback is printed in place of a value that is not valid UTF-8.
const Fallback = "Processing..."

// Line rewrites a single terminal line. Each Print returns the cursor to
// the start of the line and pads with spaces so a shorter value fully
// covers the previous one. A Line is not safe for concurrent use.
type Line struct {
	w    io.Writer
	prev int // display width of the previous value
}

// NewLine returns a Line writing to w.
func NewLine(w io.Writer) *Line {
	return &Line{w: w}
}

// Print writes v's string form over the previous value.
func (l *Line) Print(v any) error {
	s := fmt.Sprint(v)
	if !utf8.ValidString(s) {
		s = Fallback
	}

	width := runewidth.StringWidth(s)
	pad := max(l.prev-width, 0)

	if _, err := io.WriteString(l.w, s+strings.Repeat(" ", pad)+"\r"); err != nil {
		return err
	}
	l.prev = width
	return nil
}

// Done ends the line with a newline so later output starts below it.
func (l *Line) Done() error {
	if l.prev == 0 {
		return nil
	}
	l.prev = 0
	_, err := io.WriteString(l.w, "\n")
	return err
}
