package dict

import (
	"slices"
	"strings"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/heartmarshall/kty/internal/kaikki"
	"github.com/heartmarshall/kty/internal/lang"
	"github.com/heartmarshall/kty/internal/tags"
	"github.com/heartmarshall/kty/internal/yomitan"
	"github.com/heartmarshall/kty/pkg/ordmap"
)

func encodeLemmas(target lang.Lang, ir *Tidy, diag *Diagnostics) []yomitan.Entry {
	var out []yomitan.Entry
	for k, infos := range ir.Lemmas() {
		for _, info := range infos {
			out = append(out, encodeLemma(target, k, info, diag))
		}
	}
	return out
}

func encodeLemma(target lang.Lang, k LemmaKey, info LemmaInfo, diag *Diagnostics) yomitan.TermEntry {
	shortPOS, found := tags.LookupPOS(k.POS)
	diag.CountPOS(k.POS, found)
	if !found {
		shortPOS = k.POS
	}

	reading := k.Reading
	if reading == k.Lemma {
		reading = ""
	}

	common := commonShortTags(k.POS, info.GlossTree, diag)

	var content yomitan.Array
	if info.Etymology != "" || info.HeadInfo != "" {
		content = append(content, preamble(info.Etymology, info.HeadInfo))
	}
	content = append(content, glossList(target, info.GlossTree, common))
	content = append(content, backlink(info.WLink, info.KLink))

	return yomitan.TermEntry{
		Term:           k.Lemma,
		Reading:        reading,
		DefinitionTags: strings.Join(common, " "),
		Rules:          shortPOS,
		Definitions:    []yomitan.Definition{yomitan.StructuredDefinition{Content: content}},
	}
}

// commonShortTags returns the short tags of the part of speech followed by
// the tags shared by every top-level gloss, skipping the unknown ones.
func commonShortTags(pos string, tree *GlossTree, diag *Diagnostics) []string {
	var shared *ordmap.Set[string]
	for _, node := range tree.All() {
		nodeTags := ordmap.NewSet(node.Tags...)
		if shared == nil {
			shared = nodeTags
			continue
		}
		shared = shared.Intersect(nodeTags)
	}

	var out []string
	if info, ok := tags.Find(pos); ok {
		out = append(out, info.ShortTag)
	}
	if shared == nil {
		return out
	}
	for _, t := range shared.Items() {
		info, ok := tags.Find(t)
		diag.CountTag(t, ok)
		if ok {
			out = append(out, info.ShortTag)
		}
	}
	return out
}

func detailsEntry(kind, text string) yomitan.Node {
	return yomitan.Wrap("details", "details-entry-"+kind, yomitan.Array{
		yomitan.Wrap("summary", "summary-entry", yomitan.Text(kind)),
		yomitan.Wrap("div", kind+"-content", yomitan.Text(text)),
	})
}

func preamble(etymology, headInfo string) yomitan.Node {
	var parts yomitan.Array
	if headInfo != "" {
		parts = append(parts, detailsEntry("Grammar", headInfo))
	}
	if etymology != "" {
		parts = append(parts, detailsEntry("Etymology", etymology))
	}
	return yomitan.Wrap("div", "", yomitan.Array{yomitan.Wrap("div", "preamble", parts)})
}

func backlink(wlink, klink string) yomitan.Node {
	return yomitan.Wrap("div", "backlink", yomitan.Array{
		yomitan.Link{Href: wlink, Label: "Wiktionary"},
		yomitan.Text(" | "),
		yomitan.Link{Href: klink, Label: "Kaikki"},
	})
}

func glossList(target lang.Lang, tree *GlossTree, common []string) yomitan.Node {
	items := yomitan.Array{}
	for gloss, node := range tree.All() {
		items = append(items, yomitan.Wrap("li", "", glossNodes(target, gloss, node, common, 0)))
	}
	return yomitan.Wrap("ol", "glosses", items)
}

// glossNodes renders one gloss and, below it, its children. Tags already
// shown by an ancestor or the entry header are not repeated.
func glossNodes(target lang.Lang, gloss string, node *GlossNode, common []string, level int) yomitan.Array {
	tag := "li"
	if level == 0 {
		tag = "div"
	}

	var minimal []string
	for _, t := range slices.Concat(node.Tags, node.Topics) {
		if !slices.Contains(common, t) {
			minimal = append(minimal, t)
		}
	}

	var body yomitan.Array
	if spans := tagSpans(minimal, common); spans != nil {
		body = append(body, spans)
	}
	body = append(body, yomitan.Text(gloss))
	if len(node.Examples) > 0 {
		body = append(body, examplesBlock(target, node.Examples))
	}

	out := yomitan.Array{yomitan.Wrap(tag, "", body)}
	if node.Children.Len() == 0 {
		return out
	}

	childCommon := slices.Concat(minimal, common)
	var children yomitan.Array
	for childGloss, child := range node.Children.All() {
		children = append(children, glossNodes(target, childGloss, child, childCommon, level+1)...)
	}
	return append(out, yomitan.Wrap("ul", "", children))
}

func tagSpans(minimal, common []string) yomitan.Node {
	var spans yomitan.Array
	for _, t := range minimal {
		info, ok := tags.Find(t)
		if !ok || slices.Contains(common, info.ShortTag) {
			continue
		}
		span := &yomitan.Element{Tag: "span", Title: info.LongTag, Content: yomitan.Text(info.ShortTag)}
		span.SetData("content", "tag").SetData("category", info.Category)
		spans = append(spans, span)
	}
	if len(spans) == 0 {
		return nil
	}
	return yomitan.Wrap("div", "tags", spans)
}

func examplesBlock(target lang.Lang, examples []kaikki.Example) yomitan.Node {
	content := yomitan.Array{
		yomitan.Wrap("summary", "summary-entry", yomitan.Text(localizeExamples(target, len(examples)))),
	}
	for _, ex := range examples {
		sentence := yomitan.Array{yomitan.Wrap("div", "example-sentence-a", yomitan.Text(ex.Text))}
		if ex.Translation != "" {
			sentence = append(sentence, yomitan.Wrap("div", "example-sentence-b", yomitan.Text(ex.Translation)))
		}
		if ex.Ref != "" {
			ref := strings.TrimSuffix(ex.Ref, ":")
			sentence = append(sentence, yomitan.Wrap("div", "example-sentence-c", yomitan.Text(ref)))
		}
		content = append(content, yomitan.Wrap("div", "extra-info",
			yomitan.Wrap("div", "example-sentence", sentence)))
	}
	return yomitan.Wrap("details", "details-entry-examples", content)
}

func encodeForms(source lang.Lang, ir *Tidy) []yomitan.Entry {
	var out []yomitan.Entry
	for k, info := range ir.Forms() {
		// One Inflection per tag: Yomitan chains the rules of a single one.
		defs := make([]yomitan.Definition, 0, len(info.Tags))
		for _, t := range info.Tags {
			defs = append(defs, yomitan.Inflection{Uninflected: k.Uninflected, Rules: []string{t}})
		}
		term := normalizeOrthography(source, k.Inflected)
		reading := ""
		if term != k.Inflected {
			reading = k.Inflected
		}
		out = append(out, yomitan.TermEntry{Term: term, Reading: reading, Definitions: defs})
	}
	return out
}

var combiningAccents = runes.Predicate(func(r rune) bool {
	return r >= '\u0300' && r <= '\u036f'
})

// normalizeOrthography strips the stress and length marks that dictionaries
// of these languages print but running text omits.
func normalizeOrthography(source lang.Lang, word string) string {
	switch source {
	case "grc", "la", "ru":
		out, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(combiningAccents)), word)
		if err != nil {
			return word
		}
		return out
	}
	return word
}
