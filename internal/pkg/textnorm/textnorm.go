// Package textnorm normalises user-entered text such as keywords and citation keys.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var turkishLower = cases.Lower(language.Turkish)

// LowerTR lowercases using Turkish rules (I -> ı, İ -> i)
func LowerTR(s string) string {
	return turkishLower.String(s)
}

// Keywords splits a comma separated list, trims and lowercases each entry and
// drops blanks and duplicates while keeping first-seen order.
func Keywords(raw string) []string {
	return NormalizeKeywords(strings.Split(raw, ","))
}

// NormalizeKeywords applies the keyword rules to an already split list
func NormalizeKeywords(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, k := range in {
		k = strings.Join(strings.Fields(LowerTR(k)), " ")
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}

// ASCIIFold strips diacritics so "Şükrü Işık" becomes "Sukru Isik"
func ASCIIFold(s string) string {
	// Dotless ı and dotted İ have no decomposition
	s = strings.NewReplacer("ı", "i", "İ", "I").Replace(s)
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}

// Slug returns a lowercase ASCII token made of letters and digits only
func Slug(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(ASCIIFold(s)) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
