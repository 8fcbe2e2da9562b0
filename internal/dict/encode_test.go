package dict

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/kty/internal/kaikki"
	"github.com/heartmarshall/kty/internal/yomitan"
)

func TestEncodeLemma_NestedTags(t *testing.T) {
	t.Parallel()

	tree := &GlossTree{}
	tree.Insert([]string{"A mammal", "A domestic cat"}, []string{"countable"}, nil, nil)
	tree.Insert([]string{"A mammal", "A wild cat"}, []string{"countable", "rare"}, []string{"zoology"}, nil)

	diag := &Diagnostics{}
	e := encodeLemma("en", LemmaKey{Lemma: "cat", Reading: "cat", POS: "noun"},
		LemmaInfo{GlossTree: tree, WLink: "w", KLink: "k"}, diag)

	assert.Equal(t, "n countable", e.DefinitionTags)
	assert.Equal(t, "n", e.Rules)
	assert.Empty(t, e.Reading)

	require.Len(t, e.Definitions, 1)
	content := e.Definitions[0].(yomitan.StructuredDefinition).Content.(yomitan.Array)
	require.Len(t, content, 2)
	assert.JSONEq(t, `{"tag":"ol","data":{"content":"glosses"},"content":[{"tag":"li","content":[
		{"tag":"div","content":["A mammal"]},
		{"tag":"ul","content":[
			{"tag":"li","content":["A domestic cat"]},
			{"tag":"li","content":[
				{"tag":"div","data":{"content":"tags"},"content":[
					{"tag":"span","title":"rare","data":{"content":"tag","category":""},"content":"rare"},
					{"tag":"span","title":"zoology","data":{"content":"tag","category":""},"content":"zool"}]},
				"A wild cat"]}]}]}]}`, marshal(t, content[0]))

	n, _ := diag.POSReport().Accepted.Get("noun")
	assert.Equal(t, 1, n)
}

func TestCommonShortTags(t *testing.T) {
	t.Parallel()

	tree := &GlossTree{}
	tree.Insert([]string{"Cats."}, []string{"masculine", "plural", "bogus"}, nil, nil)
	tree.Insert([]string{"Felines."}, []string{"plural", "bogus", "rare", "masculine"}, nil, nil)

	diag := &Diagnostics{}
	assert.Equal(t, []string{"n", "m", "pl"}, commonShortTags("noun", tree, diag))
	assert.True(t, diag.TagReport().Rejected.Has("bogus"))
	assert.False(t, diag.TagReport().Accepted.Has("rare"))

	assert.Equal(t, []string{"n"}, commonShortTags("noun", &GlossTree{}, &Diagnostics{}))
}

func TestEncodeLemma_UnknownPOS(t *testing.T) {
	t.Parallel()

	diag := &Diagnostics{}
	e := encodeLemma("en", LemmaKey{Lemma: "x", Reading: "y", POS: "romanization"},
		LemmaInfo{GlossTree: oneGloss("g"), Etymology: "ety"}, diag)
	assert.Equal(t, "romanization", e.Rules)
	assert.Equal(t, "y", e.Reading)
	assert.Empty(t, e.DefinitionTags)
	assert.True(t, diag.POSReport().Rejected.Has("romanization"))

	content := e.Definitions[0].(yomitan.StructuredDefinition).Content.(yomitan.Array)
	require.Len(t, content, 3)
	assert.JSONEq(t, `{"tag":"div","content":[{"tag":"div","data":{"content":"preamble"},"content":[
		{"tag":"details","data":{"content":"details-entry-Etymology"},"content":[
			{"tag":"summary","data":{"content":"summary-entry"},"content":"Etymology"},
			{"tag":"div","data":{"content":"Etymology-content"},"content":"ety"}]}]}]}`, marshal(t, content[0]))
}

func TestExamplesBlock(t *testing.T) {
	t.Parallel()

	got := examplesBlock("de", []kaikki.Example{{Text: "Ich laufe.", Translation: "I run.", Ref: "Goethe:"}})
	assert.JSONEq(t, `{"tag":"details","data":{"content":"details-entry-examples"},"content":[
		{"tag":"summary","data":{"content":"summary-entry"},"content":"1 Beispiel"},
		{"tag":"div","data":{"content":"extra-info"},"content":{"tag":"div","data":{"content":"example-sentence"},"content":[
			{"tag":"div","data":{"content":"example-sentence-a"},"content":"Ich laufe."},
			{"tag":"div","data":{"content":"example-sentence-b"},"content":"I run."},
			{"tag":"div","data":{"content":"example-sentence-c"},"content":"Goethe"}]}}]}`, marshal(t, got))
}

func TestEncodeForms_NormalizesOrthography(t *testing.T) {
	t.Parallel()

	ir := NewTidy()
	ir.InsertForm("вода́", "во́ды", "noun", FormExtracted, []string{"genitive singular", "nominative plural"})
	ir.InsertForm("вода́", "воды", "noun", FormExtracted, []string{"plural"})

	entries := encodeForms("ru", ir)
	require.Len(t, entries, 2)
	assert.JSONEq(t, `["воды","во́ды","","",0,[["вода́",["genitive singular"]],["вода́",["nominative plural"]]],0,""]`,
		marshal(t, entries[0]))
	assert.JSONEq(t, `["воды","","","",0,[["вода́",["plural"]]],0,""]`, marshal(t, entries[1]))

	assert.Equal(t, "во́ды", normalizeOrthography("uk", "во́ды"))
	assert.Equal(t, "fama", normalizeOrthography("la", "fāma"))
}

func TestLocalizeExamples(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "1 example", localizeExamples("en", 1))
	assert.Equal(t, "3 examples", localizeExamples("it", 3))
	assert.Equal(t, "2 exemples", localizeExamples("fr", 2))
	assert.Equal(t, "1 пример", localizeExamples("ru", 1))
	assert.Equal(t, "4 例", localizeExamples("ja", 4))
	assert.Equal(t, "0 ejemplos", localizeExamples("es", 0))
}

func TestLinks(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "https://el.wiktionary.org/wiki/λόγος#Ancient Greek", wiktionaryLink("el", "grc", "λόγος"))
	assert.Equal(t, "https://kaikki.org/elwiktionary/Ancient%20Greek/meaning/λ/λό/λόγος.html", kaikkiLink("el", "grc", "λόγος"))
	assert.Equal(t, "https://kaikki.org/dictionary/English/meaning/a/a/a.html", kaikkiLink("en", "en", "a"))
	assert.Equal(t, "https://kaikki.org/dictionary/English/meaning/i/ic/ice%20cream.html", kaikkiLink("en", "en", "ice cream"))
}

func TestDiagnostics_ReportOrder(t *testing.T) {
	t.Parallel()

	d := &Diagnostics{}
	assert.True(t, d.Empty())
	for _, tag := range []string{"a", "b", "b", "c", "c", "c"} {
		d.CountTag(tag, false)
	}
	d.CountTag("ok", true)

	r := d.TagReport()
	assert.Equal(t, []string{"c", "b", "a"}, r.Rejected.Keys())
	assert.JSONEq(t, `{"rejected":{"c":3,"b":2,"a":1},"accepted":{"ok":1}}`, marshal(t, r))
	assert.True(t, d.POSReport().Empty())
}
