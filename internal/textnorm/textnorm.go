// Package textnorm applies the shop's naming conventions: product and
// collection names are stored in upper case, buyer names in title case.
package textnorm

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ProductName trims, collapses inner whitespace and upper-cases.
func ProductName(s string) string {
	return cases.Upper(language.BrazilianPortuguese).String(squash(s))
}

// PersonName trims, collapses inner whitespace and title-cases.
func PersonName(s string) string {
	return cases.Title(language.BrazilianPortuguese).String(squash(s))
}

// Label trims and collapses whitespace without changing case. Used for
// channels, campaigns and categories, which are grouped verbatim.
func Label(s string) string {
	return squash(s)
}

func squash(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
