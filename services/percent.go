package services

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

var leadingNumberPattern = regexp.MustCompile(`^[-+]?(\d+(\.\d*)?|\.\d+)`)

// ParsePercent reads a GST rate from a free-form spreadsheet cell. Numbers
// are returned as-is; strings such as "18%", " 18 % " or "12.5" yield their
// leading decimal number. Anything else, including nil, yields 0.
func ParsePercent(v any) float64 {
	switch x := v.(type) {
	case nil:
		return 0
	case string:
		m := leadingNumberPattern.FindString(strings.TrimSpace(x))
		if m == "" {
			return 0
		}
		f, err := strconv.ParseFloat(m, 64)
		if err != nil {
			return 0
		}
		return f
	case bool:
		return 0
	}

	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0
	}
	return f
}
