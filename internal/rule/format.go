package rule

import (
	"strconv"
	"strings"
)

// Rupiah formatting. The UI contract fixes the id-ID convention regardless of
// host locale: '.' groups thousands, ',' separates decimals.

// FormatRupiah renders n as "Rp 1.500.000".
func FormatRupiah(n float64) string {
	return "Rp " + groupDigits(n)
}

// FormatConditionValue renders a condition value for display. Numeric values
// of 1000 and above render as Rupiah; everything else (smaller numbers,
// non-numeric input) passes through unchanged. The threshold applies to every
// metric uniformly, currency or not, to match the established output.
func FormatConditionValue(raw string) string {
	n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || n < 1000 {
		return raw
	}
	return FormatRupiah(n)
}

// FormatAmount renders a budget amount as Rupiah. Amounts may arrive already
// dot-grouped from a prior display pass, so grouping separators are stripped
// before parsing; re-formatting is therefore idempotent. Unparseable input
// passes through unchanged.
func FormatAmount(raw string) string {
	n, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(raw), ".", ""), 64)
	if err != nil {
		return raw
	}
	return FormatRupiah(n)
}

// groupDigits formats n with id-ID separators.
func groupDigits(n float64) string {
	s := strconv.FormatFloat(n, 'f', -1, 64)

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, fracPart, hasFrac := strings.Cut(s, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
		if len(intPart) > lead {
			b.WriteByte('.')
		}
	}
	for i := lead; i < len(intPart); i += 3 {
		b.WriteString(intPart[i : i+3])
		if i+3 < len(intPart) {
			b.WriteByte('.')
		}
	}
	if hasFrac {
		b.WriteByte(',')
		b.WriteString(fracPart)
	}
	return b.String()
}
