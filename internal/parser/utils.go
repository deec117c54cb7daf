package parser

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// invisible runes that Thai word processors sprinkle into cells
var invisibles = strings.NewReplacer(
	"\u200b", "",
	"\u200c", "",
	"\u200d", "",
	"\ufeff", "",
)

// NormalizeText builds the matching key of a cell: compatibility-normalized,
// digits converted, case-folded, whitespace collapsed.
func NormalizeText(s string) string {
	s = invisibles.Replace(s)
	s = norm.NFKC.String(s)
	s = NormalizeDigits(s)
	s = cases.Fold().String(s)
	return strings.Join(strings.Fields(s), " ")
}

// CleanLabel tidies a cell for display and storage: digits converted and
// whitespace collapsed, case kept.
func CleanLabel(s string) string {
	s = invisibles.Replace(s)
	s = NormalizeDigits(s)
	return strings.Join(strings.Fields(s), " ")
}

// normalizeSheetName is the sheet-name key: NormalizeText without any whitespace.
func normalizeSheetName(name string) string {
	return strings.ReplaceAll(NormalizeText(name), " ", "")
}

// keywordSet is a list of keywords in NormalizeText form.
type keywordSet []string

func newKeywordSet(keywords []string) keywordSet {
	out := make(keywordSet, 0, len(keywords))
	for _, kw := range keywords {
		if n := NormalizeText(kw); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// any reports whether text contains at least one keyword.
func (k keywordSet) any(text string) bool {
	for _, kw := range k {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// all reports whether text contains every keyword.
func (k keywordSet) all(text string) bool {
	for _, kw := range k {
		if !strings.Contains(text, kw) {
			return false
		}
	}
	return true
}

// equals reports whether text is exactly one of the keywords.
func (k keywordSet) equals(text string) bool {
	for _, kw := range k {
		if text == kw {
			return true
		}
	}
	return false
}

// distinctIn counts keywords found in at least one of cells.
func (k keywordSet) distinctIn(cells []string) int {
	count := 0
	for _, kw := range k {
		for _, cell := range cells {
			if strings.Contains(cell, kw) {
				count++
				break
			}
		}
	}
	return count
}
