package builder

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/kty/internal/config"
	"github.com/heartmarshall/kty/internal/corpusdb"
	"github.com/heartmarshall/kty/internal/dict"
	"github.com/heartmarshall/kty/internal/lang"
)

func testdataPath(t *testing.T, name string) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine test file location")
	}
	return filepath.Join(filepath.Dir(file), "testdata", name)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestRoot returns a root directory whose kaikki dir holds the French
// edition fixture.
func newTestRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	data, err := os.ReadFile(testdataPath(t, "fr-extract.jsonl"))
	require.NoError(t, err)
	dir := filepath.Join(root, "kaikki")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fr-extract.jsonl"), data, 0o644))
	return root
}

func testConfig(root string) *config.Config {
	return &config.Config{
		Log: config.LogConfig{Level: "info", Format: "text"},
		Build: config.BuildConfig{
			RootDir:          root,
			DictName:         "kty",
			SnapshotFormat:   "json",
			CompressionLevel: 6,
			First:            -1,
		},
		Release: config.ReleaseConfig{Workers: 2},
	}
}

func newTestBuilder(t *testing.T, cfg *config.Config) *Builder {
	t.Helper()
	b := New(testLogger(), cfg, Filters{})
	t.Cleanup(func() { _ = b.Close() })
	return b
}

func request(t *testing.T, kind dict.Kind, edition, source, target string) Request {
	t.Helper()
	parse := func(s string) lang.Spec {
		if s == "" {
			return lang.Any()
		}
		spec, err := lang.ParseSpec(s)
		require.NoError(t, err)
		return spec
	}
	return Request{Kind: kind, Edition: parse(edition), Source: parse(source), Target: parse(target)}
}

// readArchive returns the files of a zip archive by name.
func readArchive(t *testing.T, path string) map[string][]byte {
	t.Helper()
	r, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer r.Close()

	files := make(map[string][]byte)
	for _, f := range r.File {
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		files[f.Name] = data
	}
	return files
}

// bankTerms collects the first column of every bank with the given prefix.
func bankTerms(t *testing.T, files map[string][]byte, prefix string) []string {
	t.Helper()
	var terms []string
	for name, data := range files {
		if !strings.HasPrefix(name, prefix+"_") {
			continue
		}
		var rows [][]json.RawMessage
		require.NoError(t, json.Unmarshal(data, &rows), name)
		for _, row := range rows {
			var term string
			require.NoError(t, json.Unmarshal(row[0], &term))
			terms = append(terms, term)
		}
	}
	return terms
}

func TestBuild_MainArchive(t *testing.T) {
	t.Parallel()

	root := newTestRoot(t)
	b := newTestBuilder(t, testConfig(root))

	res, err := b.Build(context.Background(), request(t, dict.KindMain, "", "fr", "fr"))
	require.NoError(t, err)

	want := filepath.Join(root, "dict", "fr", "fr", "kty-fr-fr.zip")
	require.Len(t, res.Artifacts, 1)
	assert.Equal(t, want, res.Artifacts[0].Path)
	assert.Equal(t, 3, res.Stats.Records)
	assert.Equal(t, 1, res.Stats.Emitted)

	files := readArchive(t, want)
	require.Contains(t, files, "index.json")
	require.Contains(t, files, "styles.css")
	require.Contains(t, files, "tag_bank_1.json")
	require.Contains(t, files, "term_bank_1.json")

	var idx struct {
		Title          string `json:"title"`
		SourceLanguage string `json:"sourceLanguage"`
		TargetLanguage string `json:"targetLanguage"`
	}
	require.NoError(t, json.Unmarshal(files["index.json"], &idx))
	assert.Equal(t, "kty-fr-fr", idx.Title)
	assert.Equal(t, "fr", idx.SourceLanguage)
	assert.Equal(t, "fr", idx.TargetLanguage)

	terms := bankTerms(t, files, "term_bank")
	assert.Contains(t, terms, "chat")
	assert.Contains(t, terms, "manger")
	assert.NotContains(t, terms, "Hund")
}

func TestBuild_SaveTemps(t *testing.T) {
	t.Parallel()

	root := newTestRoot(t)
	cfg := testConfig(root)
	cfg.Build.SaveTemps = true
	cfg.Build.SnapshotFormat = "yaml"
	b := newTestBuilder(t, cfg)

	res, err := b.Build(context.Background(), request(t, dict.KindMain, "", "fr", "fr"))
	require.NoError(t, err)
	require.Len(t, res.Artifacts, 1)

	temp := filepath.Join(root, "dict", "fr", "fr", "temp-main")
	assert.Equal(t, filepath.Join(temp, "dict"), res.Artifacts[0].Path)
	assert.FileExists(t, filepath.Join(temp, "tidy", "fr-fr-lemmas.yaml"))
	assert.FileExists(t, filepath.Join(temp, "tidy", "fr-fr-forms.yaml"))
	assert.FileExists(t, filepath.Join(temp, "dict", "term_bank_1.json"))
	assert.NoFileExists(t, filepath.Join(root, "dict", "fr", "fr", "kty-fr-fr.zip"))

	lemmas, err := os.ReadFile(filepath.Join(temp, "tidy", "fr-fr-lemmas.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(lemmas), "manger")
}

func TestBuild_IPA(t *testing.T) {
	t.Parallel()

	root := newTestRoot(t)
	b := newTestBuilder(t, testConfig(root))

	_, err := b.Build(context.Background(), request(t, dict.KindIPA, "", "fr", "fr"))
	require.NoError(t, err)

	files := readArchive(t, filepath.Join(root, "dict", "fr", "fr", "kty-fr-fr-ipa.zip"))
	require.Contains(t, files, "term_meta_bank_1.json")
	terms := bankTerms(t, files, "term_meta_bank")
	assert.Contains(t, terms, "chat")
	assert.Contains(t, terms, "manger")
}

func TestBuild_Glossary(t *testing.T) {
	t.Parallel()

	root := newTestRoot(t)
	b := newTestBuilder(t, testConfig(root))

	_, err := b.Build(context.Background(), request(t, dict.KindGlossary, "", "fr", "en"))
	require.NoError(t, err)

	files := readArchive(t, filepath.Join(root, "dict", "fr", "en", "kty-fr-en-gloss.zip"))
	terms := bankTerms(t, files, "term_bank")
	assert.ElementsMatch(t, []string{"chat", "manger"}, terms)
}

func TestBuild_IPAMergedSkipsMissingEditions(t *testing.T) {
	t.Parallel()

	root := newTestRoot(t)
	b := newTestBuilder(t, testConfig(root))

	res, err := b.Build(context.Background(), request(t, dict.KindIPAMerged, "", "", "fr"))
	require.NoError(t, err)
	require.Len(t, res.Artifacts, 1)

	path := filepath.Join(root, "dict", "all", "fr", "kty-fr-ipa.zip")
	assert.Equal(t, path, res.Artifacts[0].Path)
	assert.FileExists(t, path)
}

func TestBuild_UseIndex(t *testing.T) {
	t.Parallel()

	root := newTestRoot(t)
	cfg := testConfig(root)
	cfg.Corpus.UseIndex = true
	b := newTestBuilder(t, cfg)
	ctx := context.Background()

	_, err := b.Build(ctx, request(t, dict.KindMain, "", "fr", "fr"))
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(root, "db", "wiktextract_fr.db"))
	assert.FileExists(t, filepath.Join(root, "dict", "fr", "fr", "kty-fr-fr.zip"))

	info, err := b.Index(ctx, "fr")
	require.NoError(t, err)
	assert.Equal(t, 4, info.Records)
	assert.Equal(t, []corpusdb.LangCount{{Lang: "fr", Records: 3}, {Lang: "de", Records: 1}}, info.Langs)
	require.Len(t, info.Imports, 1)
	assert.Equal(t, 4, info.Imports[0].Records)
}

func TestBuild_DatasetNotFound(t *testing.T) {
	t.Parallel()

	root := newTestRoot(t)
	b := newTestBuilder(t, testConfig(root))

	_, err := b.Build(context.Background(), request(t, dict.KindMain, "", "de", "en"))
	require.ErrorIs(t, err, ErrDatasetNotFound)
}

func TestRequest_Normalize(t *testing.T) {
	t.Parallel()

	r := request(t, dict.KindGlossary, "", "fr", "en").normalize()
	assert.Equal(t, "fr", r.Edition.String())

	r = request(t, dict.KindMain, "", "de", "fr").normalize()
	assert.Equal(t, "fr", r.Edition.String())

	r = request(t, dict.KindIPAMerged, "", "", "de").normalize()
	assert.True(t, r.Edition.IsAll())
	assert.Equal(t, "de", r.Source.String())

	r = request(t, dict.KindGlossaryExtended, "en", "de", "fr").normalize()
	assert.Equal(t, "en", r.Edition.String())
	assert.Equal(t, "glossary-ext en:de-fr", r.String())
}
