package dict

import (
	"fmt"

	"github.com/heartmarshall/kty/internal/lang"
)

// exampleNouns holds the singular and plural word for "example".
var exampleNouns = map[lang.Lang][2]string{
	"en": {"example", "examples"},
	"fr": {"exemple", "exemples"},
	"de": {"Beispiel", "Beispiele"},
	"es": {"ejemplo", "ejemplos"},
	"ru": {"пример", "примеры"},
}

// localizeExamples renders the summary of an examples block in the target
// language, e.g. "1 example" or "3 Beispiele".
func localizeExamples(target lang.Lang, n int) string {
	switch target {
	case "zh", "ja":
		return fmt.Sprintf("%d 例", n)
	}
	nouns, ok := exampleNouns[target]
	if !ok {
		nouns = exampleNouns["en"]
	}
	if n == 1 {
		return "1 " + nouns[0]
	}
	return fmt.Sprintf("%d %s", n, nouns[1])
}
