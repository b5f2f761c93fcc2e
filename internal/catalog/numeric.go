package catalog

import (
	"strconv"
	"strings"
)

// ParseNumeric extracts a number from a messy, locale-mixed cell such as
// "2,309", "1 299", or "30%". A comma is treated as a decimal separator only
// when it is the single comma and at most two digits follow it; otherwise
// commas are thousands separators and are removed. This is a best-effort
// heuristic over uncontrolled input, not locale detection; anything that
// still fails to parse yields nil, never an error.
func ParseNumeric(raw string) *float64 {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return nil
	}
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	cleaned = strings.ReplaceAll(cleaned, "%", "")

	if strings.Contains(cleaned, ",") && !strings.Contains(cleaned, ".") {
		if parts := strings.Split(cleaned, ","); len(parts) == 2 && len(parts[1]) <= 2 {
			cleaned = parts[0] + "." + parts[1]
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	}

	var b strings.Builder
	b.Grow(len(cleaned))
	for _, r := range cleaned {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	cleaned = b.String()
	if cleaned == "" || cleaned == "-" || cleaned == "." {
		return nil
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return &value
}
