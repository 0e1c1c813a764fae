package cutil

import "time"

// DefaultTimeLayouts are tried in order by ParseTime.
var DefaultTimeLayouts = []string{
	"2006-01-02T15:04:05.999999Z0700",
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05.999999Z07:00",
	"2006-01-02T15:04:05Z07:00",
}

// Epoch returns the current time as Unix seconds.
func Epoch() int64 {
	return time.Now().Unix()
}

// FormatTime formats t in UTC as an ISO 8601 timestamp with a "+0000" suffix.
// Microseconds are included only when non-zero.
func FormatTime(t time.Time) string {
	t = t.UTC()
	layout := "2006-01-02T15:04:05"
	if t.Nanosecond()/int(time.Microsecond) != 0 {
		layout += ".000000"
	}
	return t.Format(layout) + "+0000"
}

// ParseTime parses s with the first layout that accepts it.
// DefaultTimeLayouts is used when no layouts are given.
func ParseTime(s string, layouts ...string) (time.Time, error) {
	if len(layouts) == 0 {
		layouts = DefaultTimeLayouts
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, Errorf(EINVALID, "unrecognized time format %q", s)
}

// Timeit runs fn and reports its wall-clock duration to track under name.
// The duration is reported even when fn fails.
func Timeit(track func(name string, d time.Duration), name string, fn func() error) error {
	begin := time.Now()
	err := fn()
	track(name, time.Since(begin))
	return err
}
