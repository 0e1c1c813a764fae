package cutil

import (
	"regexp"
	"strconv"
	"strings"
)

var pricePattern = regexp.MustCompile(`([\d,.]+)(\D*([\d,.]+))?`)

// Price is a parsed price or price range. High is nil for a single price.
type Price struct {
	Low  float64  `json:"low"`
	High *float64 `json:"high"`
}

// ParsePrice extracts a price or a "low - high" range from s.
// Both ',' and '.' are accepted as thousands separators; a separator
// followed by exactly two digits at the end of a number marks cents.
func ParsePrice(s string) (Price, error) {
	m := pricePattern.FindStringSubmatch(s)
	if m == nil {
		return Price{}, Errorf(EINVALID, "no price in %q", s)
	}

	low, err := parsePriceValue(m[1])
	if err != nil {
		return Price{}, err
	}
	p := Price{Low: low}

	if m[3] != "" {
		high, err := parsePriceValue(m[3])
		if err != nil {
			return Price{}, err
		}
		p.High = &high
	}
	return p, nil
}

func parsePriceValue(v string) (float64, error) {
	digits := strings.NewReplacer(",", "", ".", "").Replace(v)
	if len(v) >= 3 && (v[len(v)-3] == ',' || v[len(v)-3] == '.') && len(digits) >= 2 {
		digits = digits[:len(digits)-2] + "." + digits[len(digits)-2:]
	}
	f, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return 0, Errorf(EINVALID, "invalid price %q", v)
	}
	return f, nil
}
