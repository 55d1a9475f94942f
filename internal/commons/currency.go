package commons

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const clpSymbol = "$"

// FormatCLP renders an amount of Chilean pesos with no decimals and dot
// thousands separators, e.g. 10000 -> "$10.000".
func FormatCLP(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	digits := strconv.FormatInt(amount, 10)

	var b strings.Builder
	for i, c := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteRune('.')
		}
		b.WriteRune(c)
	}

	return sign + clpSymbol + b.String()
}

// FormatCLPDecimal rounds to whole pesos before formatting.
func FormatCLPDecimal(amount decimal.Decimal) string {
	return FormatCLP(amount.Round(0).IntPart())
}

// ParseCLP reads back an amount written by FormatCLP: an optional "-", the
// "$" symbol, then digits with optional "." separators. Surrounding spaces
// are ignored; anything else is rejected.
func ParseCLP(s string) (int64, error) {
	raw := strings.TrimSpace(s)
	negative := strings.HasPrefix(raw, "-")
	raw = strings.TrimPrefix(raw, "-")

	raw, ok := strings.CutPrefix(raw, clpSymbol)
	if !ok {
		return 0, fmt.Errorf("parsing CLP amount %q: missing %q", s, clpSymbol)
	}

	digits := strings.ReplaceAll(raw, ".", "")
	if digits == "" || strings.HasPrefix(raw, ".") || strings.HasSuffix(raw, ".") || strings.Contains(raw, "..") {
		return 0, fmt.Errorf("parsing CLP amount %q: malformed", s)
	}
	for _, c := range digits {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("parsing CLP amount %q: unexpected %q", s, c)
		}
	}

	amount, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing CLP amount %q: %w", s, err)
	}
	if negative {
		amount = -amount
	}
	return amount, nil
}
