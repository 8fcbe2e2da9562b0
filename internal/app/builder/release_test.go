package builder

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/kty/internal/dict"
	"github.com/heartmarshall/kty/internal/lang"
)

func TestReleaseJobs(t *testing.T) {
	t.Parallel()

	n := len(lang.All())

	fr := ReleaseJobs("fr")
	assert.Len(t, fr, 2*n+n-1)

	en := ReleaseJobs("en")
	assert.Len(t, en, 2*(n-1)+n-1)
	for _, job := range en {
		if job.Kind == dict.KindGlossary {
			assert.Equal(t, "en", job.Source.String())
			assert.NotEqual(t, "en", job.Target.String())
			continue
		}
		assert.NotEqual(t, "fi", job.Source.String(), "%s", job)
		assert.Equal(t, "en", job.Target.String())
	}
}

func TestRelease(t *testing.T) {
	t.Parallel()

	root := newTestRoot(t)
	b := newTestBuilder(t, testConfig(root))

	summary, err := b.Release(context.Background(), []lang.Edition{"fr"}, 2)
	require.NoError(t, err)

	assert.Equal(t, len(ReleaseJobs("fr")), summary.Jobs)
	assert.Len(t, summary.Results, summary.Jobs)

	for _, name := range []string{
		filepath.Join("fr", "fr", "kty-fr-fr.zip"),
		filepath.Join("fr", "fr", "kty-fr-fr-ipa.zip"),
		filepath.Join("de", "fr", "kty-de-fr.zip"),
		filepath.Join("fr", "en", "kty-fr-en-gloss.zip"),
		filepath.Join("fr", "de", "kty-fr-de-gloss.zip"),
	} {
		assert.FileExists(t, filepath.Join(root, "dict", name))
	}
	assert.NoFileExists(t, filepath.Join(root, "dict", "fr", "es", "kty-fr-es-gloss.zip"))
	assert.FileExists(t, filepath.Join(root, "db", "wiktextract_fr.db"))
}
