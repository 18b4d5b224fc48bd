package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// spaces used as thousands separators in exported spreadsheets
var groupSpaces = strings.NewReplacer("\u00A0", "", "\u202F", "", "\u2009", "", " ", "")

// ParseNumber парсит "1234.5", "-3", "1e5", "1 234,50", "197,00" (NBSP/NNBSP) и т.п.
// В отличие от грубой очистки мусора, строка с буквами числом не считается.
func ParseNumber(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	s = strings.TrimPrefix(s, "+")
	if d, err := decimal.NewFromString(s); err == nil {
		return d, true
	}

	s = groupSpaces.Replace(s)
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	if s == "" || s == "-" || s == "." {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	return d, err == nil
}

// IsNumeric reports whether s is a numeric token, infinities included.
func IsNumeric(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "inf", "+inf", "-inf", "infinity", "+infinity", "-infinity":
		return true
	}
	_, ok := ParseNumber(s)
	return ok
}
