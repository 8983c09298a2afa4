package normalize

import (
	"strconv"
	"strings"

	"github.com/VinayakPunj/Invoice-Data-Extractor/internal/entity"
)

// ParseAmount interprets an arbitrary text token as a currency amount. It
// strips currency symbols and whitespace, then disambiguates thousands vs.
// decimal separators:
//
//   - both '.' and ',' present: the rightmost-occurring one is the decimal
//     separator, the other is a thousands separator;
//   - a single separator followed by exactly two trailing digits is decimal;
//   - any other single separator is a thousands separator.
//
// Invoice totals arrive in mixed European/American formatting from OCR output,
// so the format is inferred from punctuation position rather than locale.
// The sign is preserved; rejecting negatives is the validator's job. The
// second return value is false when no numeric value can be extracted.
func ParseAmount(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == entity.UnknownField {
		return 0, false
	}

	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' || r == '-' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()

	neg := strings.HasPrefix(cleaned, "-")
	cleaned = strings.ReplaceAll(cleaned, "-", "")
	if !strings.ContainsAny(cleaned, "0123456789") {
		return 0, false
	}

	decIdx := decimalSeparatorIndex(cleaned)

	var digits strings.Builder
	for i := 0; i < len(cleaned); i++ {
		switch c := cleaned[i]; c {
		case '.', ',':
			if i == decIdx {
				digits.WriteByte('.')
			}
		default:
			digits.WriteByte(c)
		}
	}

	v, err := strconv.ParseFloat(digits.String(), 64)
	if err != nil {
		return 0, false
	}
	if neg {
		v = -v
	}
	return v, true
}

// decimalSeparatorIndex returns the index of the byte acting as the decimal
// separator in cleaned, or -1 when every separator is a thousands separator.
func decimalSeparatorIndex(cleaned string) int {
	lastDot := strings.LastIndexByte(cleaned, '.')
	lastComma := strings.LastIndexByte(cleaned, ',')

	// Both kinds present: the rightmost kind is the decimal separator.
	if lastDot >= 0 && lastComma >= 0 {
		if lastComma > lastDot {
			return lastComma
		}
		return lastDot
	}

	last := lastDot
	if lastComma >= 0 {
		last = lastComma
	}
	if last < 0 {
		return -1
	}

	// A single kind of separator: decimal only when the last occurrence is
	// followed by exactly two digits.
	if trailingDigits(cleaned, last) == 2 {
		return last
	}
	return -1
}

func trailingDigits(s string, sep int) int {
	n := 0
	for i := sep + 1; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return -1
		}
		n++
	}
	return n
}

// FormatAmount renders an amount with a currency symbol, thousands grouping,
// and two decimals, e.g. FormatAmount(1234.5, "$") == "$1,234.50".
func FormatAmount(amount float64, currency string) string {
	s := strconv.FormatFloat(amount, 'f', 2, 64)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")

	var grouped strings.Builder
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(d)
	}
	return sign + currency + grouped.String() + "." + frac
}
