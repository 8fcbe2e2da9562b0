package dict

import (
	"fmt"
	"strings"

	"github.com/heartmarshall/kty/internal/lang"
)

// wiktionaryLink points at the language section of the word's page.
func wiktionaryLink(edition, source lang.Lang, word string) string {
	return fmt.Sprintf("https://%s.wiktionary.org/wiki/%s#%s", edition, word, source.Long())
}

// kaikkiLink points at the kaikki.org page of the word, which is bucketed by
// its first one and two characters.
func kaikkiLink(edition, source lang.Lang, word string) string {
	dict := "dictionary"
	if edition != "en" {
		dict = string(edition) + "wiktionary"
	}
	runes := []rune(word)
	first, second := word, word
	if len(runes) >= 1 {
		first = string(runes[:1])
	}
	if len(runes) >= 2 {
		second = string(runes[:2])
	}
	url := fmt.Sprintf("https://kaikki.org/%s/%s/meaning/%s/%s/%s.html",
		dict, source.Long(), first, second, word)
	return strings.ReplaceAll(url, " ", "%20")
}
