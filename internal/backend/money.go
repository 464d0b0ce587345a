package backend

import (
	"fmt"
	"strconv"
	"strings"
)

// DecimalToCents parses a decimal major-unit amount ("19.99") into minor
// units without a float step, so 19.99 is exactly 1999. Amounts with more
// than two fractional digits are rounded half up on the third digit.
func DecimalToCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}

	neg := false
	if s[0] == '-' {
		neg = true
		s = s[1:]
	}

	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i+1:]
	}
	if intPart == "" {
		intPart = "0"
	}

	major, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", s, err)
	}

	var minor int64
	switch {
	case fracPart == "":
	case len(fracPart) == 1:
		d, err := strconv.ParseInt(fracPart, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("parse amount %q: %w", s, err)
		}
		minor = d * 10
	default:
		d, err := strconv.ParseInt(fracPart[:2], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("parse amount %q: %w", s, err)
		}
		minor = d
		if len(fracPart) > 2 && fracPart[2] >= '5' && fracPart[2] <= '9' {
			minor++
		}
	}

	cents := major*100 + minor
	if neg {
		cents = -cents
	}
	return cents, nil
}
