package cutil_test

import (
	"testing"

	"github.com/fwojciec/cutil"
	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: `a\b:c/d`, want: "a-b-c-d"},
		{in: "what?<x>", want: "whatx"},
		{in: "a|b*c", want: "a-b`c"},
		{in: `say "hi"`, want: "say 'hi'"},
		{in: "file.name.txt", want: "filenametxt"},
		{in: "Tom & Jerry", want: "Tom and Jerry"},
		{in: "plain", want: "plain"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, cutil.Sanitize(tt.in), tt.in)
	}
}

func TestRReplace(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a.b.c-d", cutil.RReplace("a.b.c.d", ".", "-", 1))
	assert.Equal(t, "a.b-c-d", cutil.RReplace("a.b.c.d", ".", "-", 2))
	assert.Equal(t, "a-b-c-d", cutil.RReplace("a.b.c.d", ".", "-", 10))
	assert.Equal(t, "a-b-c-d", cutil.RReplace("a.b.c.d", ".", "-", -1))
	assert.Equal(t, "a.b.c.d", cutil.RReplace("a.b.c.d", ".", "-", 0))
	assert.Equal(t, "abc", cutil.RReplace("abc", "x", "-", 1))
	assert.Equal(t, "abc", cutil.RReplace("abc", "", "-", 1))
	assert.Equal(t, "xxEND", cutil.RReplace("xxab", "ab", "END", 1))
}

func TestFileExt(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ".jpg", cutil.FileExt("http://example.com/img/photo.jpg"))
	assert.Equal(t, ".gz", cutil.FileExt("archive.tar.gz"))
	assert.Equal(t, "", cutil.FileExt("/path.d/noext"))
	assert.Equal(t, "", cutil.FileExt(".bashrc"))
	assert.Equal(t, "", cutil.FileExt(""))
}

func TestMakeURLSafe(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a+b%2Fc%3Fd%3De", cutil.MakeURLSafe("a b/c?d=e"))
	assert.Equal(t, "safe-_.~", cutil.MakeURLSafe("safe-_.~"))
}
