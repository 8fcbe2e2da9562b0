package dict

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/kty/internal/kaikki"
	"github.com/heartmarshall/kty/internal/lang"
)

func TestHeuristicsFor_Default(t *testing.T) {
	t.Parallel()

	h := HeuristicsFor("it")
	assert.IsType(t, defaultHeuristics{}, h)
	assert.False(t, h.IsInflectionSense(&kaikki.Sense{Glosses: []string{"inflection of x"}}))
}

func TestEnglish_IsInflectionSense(t *testing.T) {
	t.Parallel()

	h := HeuristicsFor("en")
	tests := []struct {
		gloss  string
		formOf string
		want   bool
	}{
		{gloss: "inflection of iki:", want: true},
		{gloss: "imperative of iki", formOf: "iki", want: true},
		{gloss: "perfective of возни́кнуть (vozníknutʹ)", formOf: "возни́кнуть", want: true},
		{gloss: "agent noun of fahren; driver (person)", formOf: "fahren", want: false},
		{gloss: "to run", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.gloss, func(t *testing.T) {
			s := &kaikki.Sense{Glosses: []string{tt.gloss}}
			if tt.formOf != "" {
				s.FormOf = []kaikki.AltForm{{Word: tt.formOf}}
			}
			assert.Equal(t, tt.want, h.IsInflectionSense(s))
		})
	}
}

func TestEnglish_HandleInflectionSense(t *testing.T) {
	t.Parallel()

	h := HeuristicsFor("en")
	ir := NewTidy()
	r := &kaikki.Record{Word: "iku", POS: "verb"}
	s := &kaikki.Sense{
		Glosses: []string{"inflection of iki:", "imperative (kasi)", "inflection of iki:"},
		FormOf:  []kaikki.AltForm{{Word: "iki"}},
	}
	h.HandleInflectionSense("tr", r, s, ir)

	info, ok := ir.Form("iki", "iku", "verb")
	require.True(t, ok)
	assert.Equal(t, FormInflection, info.Source)
	assert.Equal(t, []string{"imperative"}, info.Tags)
}

func TestEnglish_HandleInflectionSense_UsesCanonicalForm(t *testing.T) {
	t.Parallel()

	h := HeuristicsFor("en")
	ir := NewTidy()
	r := &kaikki.Record{
		Word:  "famae",
		POS:   "noun",
		Forms: []kaikki.Form{{Form: "fāmae", Tags: []string{"canonical"}}},
	}
	s := &kaikki.Sense{Glosses: []string{"genitive singular of fāma"}, FormOf: []kaikki.AltForm{{Word: "fāma"}}}
	h.HandleInflectionSense("la", r, s, ir)

	info, ok := ir.Form("fāma", "fāmae", "noun")
	require.True(t, ok)
	assert.Equal(t, []string{"genitive singular"}, info.Tags)

	// Several form_of targets are ambiguous.
	s.FormOf = append(s.FormOf, kaikki.AltForm{Word: "x"})
	ir = NewTidy()
	h.HandleInflectionSense("la", r, s, ir)
	assert.Equal(t, 0, ir.FormCount())
}

func TestEnglish_PropagateTags(t *testing.T) {
	t.Parallel()

	r := &kaikki.Record{
		Forms:  []kaikki.Form{{Form: "Hund", Tags: []string{"canonical", "masculine"}}},
		Senses: []kaikki.Sense{{Tags: []string{"masculine"}}, {}},
	}
	HeuristicsFor("en").PropagateTags(r)
	assert.Equal(t, []string{"masculine"}, r.Senses[0].Tags)
	assert.Equal(t, []string{"masculine"}, r.Senses[1].Tags)
}

func TestEnglish_Forms(t *testing.T) {
	t.Parallel()

	h := HeuristicsFor("en")
	assert.True(t, h.SkipForm("ja", kaikki.Form{Form: "hashireru"}))
	assert.False(t, h.SkipForm("ja", kaikki.Form{Form: "走れる"}))
	assert.False(t, h.SkipForm("fr", kaikki.Form{Form: "abc"}))
	assert.True(t, h.StopForms("fi", kaikki.Form{Form: "See the possessive forms below."}))
	assert.False(t, h.StopForms("et", kaikki.Form{Form: "See the possessive forms below."}))
}

func TestJapaneseReading(t *testing.T) {
	t.Parallel()

	r := &kaikki.Record{
		Word: "お腹が空いた",
		Forms: []kaikki.Form{{
			Form: "お腹が空いた",
			Tags: []string{"canonical"},
			Ruby: [][2]string{{"腹", "なか"}, {"空", "す"}},
		}},
	}
	got, ok := HeuristicsFor("en").Reading("ja", r)
	require.True(t, ok)
	assert.Equal(t, "おなかがすいた", got)

	r.Forms[0].Ruby = [][2]string{{"腹", "なか"}, {"猫", "ねこ"}}
	_, ok = HeuristicsFor("en").Reading("ja", r)
	assert.False(t, ok)
}

func TestReading(t *testing.T) {
	t.Parallel()

	r := &kaikki.Record{
		Word: "x",
		Forms: []kaikki.Form{
			{Form: "canon", Tags: []string{"canonical"}},
			{Form: "roman", Tags: []string{"romanization"}},
			{Form: "translit", Tags: []string{"transliteration"}},
		},
		Sounds: []kaikki.Sound{{ZhPron: "pīnyīn", Tags: []string{"Pinyin"}}},
	}
	tests := []struct {
		edition lang.Edition
		source  lang.Lang
		want    string
		ok      bool
	}{
		{"en", "fa", "roman", true},
		{"en", "zh", "pīnyīn", true},
		{"zh", "zh", "pīnyīn", true},
		{"ja", "en", "translit", true},
		{"en", "ru", "canon", true},
		{"fr", "la", "canon", true},
		{"fr", "fr", "", false},
	}
	for _, tt := range tests {
		t.Run(string(tt.edition)+"-"+string(tt.source), func(t *testing.T) {
			got, ok := HeuristicsFor(tt.edition).Reading(tt.source, r)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGerman_Inflection(t *testing.T) {
	t.Parallel()

	h := HeuristicsFor("de")
	s := &kaikki.Sense{Glosses: []string{"Nominativ Plural des Substantivs Hund"}}
	require.True(t, h.IsInflectionSense(s))

	ir := NewTidy()
	h.HandleInflectionSense("de", &kaikki.Record{Word: "Hunde", POS: "noun"}, s, ir)
	info, ok := ir.Form("Hund", "Hunde", "noun")
	require.True(t, ok)
	assert.Equal(t, []string{"Nominativ Plural"}, info.Tags)

	ir = NewTidy()
	h.HandleInflectionSense("de", &kaikki.Record{Word: "Hunde", POS: "noun"},
		&kaikki.Sense{Glosses: []string{" des Substantivs Hund"}}, ir)
	assert.Equal(t, 0, ir.FormCount())
}

func TestGreek(t *testing.T) {
	t.Parallel()

	h := HeuristicsFor("el")

	r := &kaikki.Record{
		Word:   "γάτα",
		Forms:  []kaikki.Form{{Form: "γάτα", Tags: []string{"feminine", "nominative"}}, {Form: "γάτες", Tags: []string{"masculine"}}},
		Senses: []kaikki.Sense{{}},
	}
	h.PropagateTags(r)
	assert.Equal(t, []string{"feminine"}, r.Senses[0].Tags)

	s := &kaikki.Sense{
		Glosses: []string{"γενική ενικού του γάτα"},
		FormOf:  []kaikki.AltForm{{Word: "γάτα"}},
		Tags:    []string{"form-of", "genitive", "singular"},
	}
	require.True(t, h.IsInflectionSense(s))
	ir := NewTidy()
	h.HandleInflectionSense("el", &kaikki.Record{Word: "γάτας", POS: "noun"}, s, ir)
	info, ok := ir.Form("γάτα", "γάτας", "noun")
	require.True(t, ok)
	assert.Equal(t, []string{"genitive", "singular"}, info.Tags)

	ir = NewTidy()
	participle := &kaikki.Record{Word: "ψηφίσας", POS: "verb", Tags: []string{"participle"}, FormOf: []kaikki.AltForm{{Word: "ψηφίζω"}}}
	h.HandleNoGloss(participle, ir)
	info, ok = ir.Form("ψηφίζω", "ψηφίσας", "verb")
	require.True(t, ok)
	assert.Equal(t, []string{"redirected from ψηφίσας"}, info.Tags)
}

func TestFrench(t *testing.T) {
	t.Parallel()

	h := HeuristicsFor("fr")
	assert.True(t, h.SkipForm("fr", kaikki.Form{Form: "qu’il mange"}))
	assert.True(t, h.SkipForm("fr", kaikki.Form{Form: "avait mangé", Tags: []string{"pluperfect"}}))
	assert.False(t, h.SkipForm("fr", kaikki.Form{Form: "mangé"}))
	assert.False(t, h.SkipForm("it", kaikki.Form{Form: "que "}))

	s := &kaikki.Sense{
		Glosses: []string{"Première personne du singulier du présent de manger."},
		FormOf:  []kaikki.AltForm{{Word: "manger"}},
		Tags:    []string{"form-of"},
	}
	require.True(t, h.IsInflectionSense(s))
	ir := NewTidy()
	h.HandleInflectionSense("fr", &kaikki.Record{Word: "mange", POS: "verb"}, s, ir)
	info, ok := ir.Form("manger", "mange", "verb")
	require.True(t, ok)
	assert.Equal(t, []string{"redirected from mange"}, info.Tags)
}

func TestEntryTagPropagation(t *testing.T) {
	t.Parallel()

	for _, e := range []lang.Edition{"ru", "es", "pl"} {
		r := &kaikki.Record{Tags: []string{"perfective", "transitive"}, Senses: []kaikki.Sense{{Tags: []string{"transitive"}}}}
		HeuristicsFor(e).PropagateTags(r)
		assert.Equal(t, []string{"transitive", "perfective"}, r.Senses[0].Tags, "edition %s", e)
	}
}

func TestMain_Preprocess_Experimental(t *testing.T) {
	t.Parallel()

	r := &kaikki.Record{
		Word:  "running",
		POS:   "verb",
		Forms: []kaikki.Form{{Form: "runnings", Tags: []string{"plural"}}},
		Senses: []kaikki.Sense{
			{Glosses: []string{"present participle of run"}, FormOf: []kaikki.AltForm{{Word: "run"}}},
			{Glosses: []string{"The act of running", "A race."}},
		},
	}
	ir := NewTidy()
	Main{}.Preprocess(Langs{Edition: "en", Source: "en", Target: "en"}, r, Options{Experimental: true}, ir)

	// The record has forms of its own, so the inflection sense stays.
	require.Len(t, r.Senses, 2)
	assert.Equal(t, 0, ir.FormCount())
	assert.Equal(t, []string{"present participle of run "}, r.Senses[0].Glosses)
	assert.Equal(t, []string{"The act of running ", "A race."}, r.Senses[1].Glosses)
}
