// Package lang holds the languages and Wiktionary editions the builder knows
// about, and the wildcard-aware language specifications used on the command
// line.
package lang

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// ErrUnsupported is returned when a code is neither a known language nor the
// wildcard.
var ErrUnsupported = errors.New("unsupported language")

// Lang is an ISO code of a language, as used in kaikki "lang_code" fields.
type Lang string

// Edition is the ISO code of a Wiktionary edition. Every edition is also a Lang.
type Edition = Lang

type info struct {
	code    Lang
	name    string
	edition bool
}

// languages is ordered by English name; editions appear in the order used by
// the release tooling (see Editions).
var languages = []info{
	{"sq", "Albanian", false},
	{"grc", "Ancient Greek", false},
	{"ar", "Arabic", false},
	{"aii", "Assyrian Neo-Aramaic", false},
	{"bn", "Bengali", false},
	{"zh", "Chinese", true},
	{"cs", "Czech", true},
	{"da", "Danish", false},
	{"nl", "Dutch", true},
	{"en", "English", true},
	{"enm", "Middle English", false},
	{"ang", "Old English", false},
	{"eo", "Esperanto", false},
	{"fi", "Finnish", false},
	{"fr", "French", true},
	{"de", "German", true},
	{"el", "Greek", true},
	{"afb", "Gulf Arabic", false},
	{"he", "Hebrew", false},
	{"hi", "Hindi", false},
	{"hu", "Hungarian", false},
	{"id", "Indonesian", true},
	{"ga", "Irish", false},
	{"sga", "Old Irish", false},
	{"it", "Italian", true},
	{"ja", "Japanese", true},
	{"kn", "Kannada", false},
	{"kk", "Kazakh", false},
	{"km", "Khmer", false},
	{"ku", "Kurdish", true},
	{"ko", "Korean", true},
	{"la", "Latin", false},
	{"lv", "Latvian", false},
	{"apc", "North Levantine Arabic", false},
	{"ms", "Malay", true},
	{"mr", "Marathi", false},
	{"mn", "Mongolian", false},
	{"mt", "Maltese", false},
	{"nb", "Norwegian Bokmål", false},
	{"nn", "Norwegian Nynorsk", false},
	{"fa", "Persian", false},
	{"pl", "Polish", true},
	{"pt", "Portuguese", true},
	{"ro", "Romanian", false},
	{"ru", "Russian", true},
	{"sh", "Serbo-Croatian", false},
	{"scn", "Sicilian", false},
	{"sl", "Slovene", false},
	{"ajp", "South Levantine Arabic", false},
	{"es", "Spanish", true},
	{"sv", "Swedish", false},
	{"tl", "Tagalog", false},
	{"te", "Telugu", false},
	{"th", "Thai", true},
	{"tr", "Turkish", true},
	{"uk", "Ukrainian", false},
	{"ur", "Urdu", false},
	{"vi", "Vietnamese", true},
}

var byCode = func() map[Lang]info {
	m := make(map[Lang]info, len(languages))
	for _, l := range languages {
		m[l.code] = l
	}
	return m
}()

// Parse resolves s to a supported language. Codes are case-insensitive and
// BCP 47 forms such as "en-GB" resolve to their base language.
func Parse(s string) (Lang, error) {
	code := Lang(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := byCode[code]; ok {
		return code, nil
	}
	if tag, err := language.Parse(string(code)); err == nil {
		base, _ := tag.Base()
		if _, ok := byCode[Lang(base.String())]; ok {
			return Lang(base.String()), nil
		}
	}
	return "", fmt.Errorf("%w: %q (supported: %s)", ErrUnsupported, s, strings.Join(codes(All()), " | "))
}

// ParseEdition is like Parse but also requires the language to be an edition.
func ParseEdition(s string) (Edition, error) {
	l, err := Parse(s)
	if err != nil {
		return "", err
	}
	if !l.IsEdition() {
		return "", fmt.Errorf("%w: %q is not a Wiktionary edition (supported: %s)",
			ErrUnsupported, s, strings.Join(codes(Editions()), " | "))
	}
	return l, nil
}

// String returns the ISO code.
func (l Lang) String() string { return string(l) }

// Long returns the English name used by Wiktionary section headers and kaikki
// URLs, e.g. "Ancient Greek" for grc.
func (l Lang) Long() string {
	if i, ok := byCode[l]; ok {
		return i.name
	}
	return string(l)
}

// Native returns the name of the language in the language itself, when the
// CLDR tables know it.
func (l Lang) Native() string {
	tag, err := language.Parse(string(l))
	if err != nil {
		return ""
	}
	return display.Self.Name(tag)
}

// IsEdition reports whether a Wiktionary edition exists for l.
func (l Lang) IsEdition() bool {
	return byCode[l].edition
}

// All returns every supported language in table order.
func All() []Lang {
	out := make([]Lang, 0, len(languages))
	for _, l := range languages {
		out = append(out, l.code)
	}
	return out
}

// Editions returns every supported edition in table order.
func Editions() []Edition {
	var out []Edition
	for _, l := range languages {
		if l.edition {
			out = append(out, l.code)
		}
	}
	return out
}

// SortedCodes returns the codes of langs sorted alphabetically.
func SortedCodes(langs []Lang) []string {
	out := codes(langs)
	sort.Strings(out)
	return out
}

func codes(langs []Lang) []string {
	out := make([]string, len(langs))
	for i, l := range langs {
		out[i] = string(l)
	}
	return out
}
