package parser

import (
	"math"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// thaiDigits maps ๐-๙ (U+0E50..U+0E59) onto ASCII digits.
var thaiDigits = strings.NewReplacer(
	"๐", "0",
	"๑", "1",
	"๒", "2",
	"๓", "3",
	"๔", "4",
	"๕", "5",
	"๖", "6",
	"๗", "7",
	"๘", "8",
	"๙", "9",
)

// NormalizeDigits replaces Thai digits with ASCII digits and leaves every
// other rune untouched.
func NormalizeDigits(s string) string {
	return thaiDigits.Replace(s)
}

// NumberFormat controls how separators inside numeric cells are read.
type NumberFormat struct {
	// DecimalComma reads "12,5" as 12.5 instead of treating commas as
	// thousands separators.
	DecimalComma bool
}

// Parse reads a lenient numeric cell. Digits are normalized, every rune
// outside [0-9.-] is dropped, and the result is rounded to 2 places. Text
// without a usable number yields an invalid NullDecimal.
func (f NumberFormat) Parse(s string) decimal.NullDecimal {
	s = NormalizeDigits(s)
	if f.DecimalComma {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}

	var b strings.Builder
	digits := 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
			b.WriteRune(r)
		case r == '.' || r == '-':
			b.WriteRune(r)
		}
	}
	if digits == 0 {
		return decimal.NullDecimal{}
	}

	d, err := decimal.NewFromString(b.String())
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d.Round(2))
}

// integer cells must fit the int4 columns they are stored in
var (
	minInt = decimal.NewFromInt(math.MinInt32)
	maxInt = decimal.NewFromInt(math.MaxInt32)
)

// ParseInt reads a numeric cell and rounds it half away from zero. Values
// outside the int32 range are unparseable.
func (f NumberFormat) ParseInt(s string) *int {
	v := f.Parse(s)
	if !v.Valid {
		return nil
	}
	r := v.Decimal.Round(0)
	if r.LessThan(minInt) || r.GreaterThan(maxInt) {
		return nil
	}
	n := int(r.IntPart())
	return &n
}

// ParseNumeric parses with the default format where commas separate thousands.
func ParseNumeric(s string) decimal.NullDecimal {
	return NumberFormat{}.Parse(s)
}

// ParseInteger parses with the default format and rounds to an integer.
func ParseInteger(s string) *int {
	return NumberFormat{}.ParseInt(s)
}

// isBlank reports whether a cell holds only whitespace.
func isBlank(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool { return !unicode.IsSpace(r) }) < 0
}
