package tags

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry_Find(t *testing.T) {
	t.Parallel()

	info, ok := Find("masculine")
	require.True(t, ok)
	assert.Equal(t, "m", info.ShortTag)
	assert.Equal(t, "masculine", info.LongTag)

	// Aliases beyond the first resolve to the same row.
	info, ok = Find("pejorative")
	require.True(t, ok)
	assert.Equal(t, "derog", info.ShortTag)
	assert.Equal(t, "derogatory", info.LongTag)

	_, ok = Find("no-such-tag")
	assert.False(t, ok)
}

func TestDefaultRegistry_ShortPOS(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "n", ShortPOS("noun"))
	assert.Equal(t, "v", ShortPOS("verb"))
	assert.Equal(t, "adj", ShortPOS("adj"))
	assert.Equal(t, "unknownpos", ShortPOS("unknownpos"))
	// Only part-of-speech rows count.
	assert.Equal(t, "masculine", ShortPOS("masculine"))
}

func TestInfo_MarshalJSON(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(Info{ShortTag: "n", Category: "partOfSpeech", LongTag: "noun"})
	require.NoError(t, err)
	assert.JSONEq(t, `["n","partOfSpeech",0,"noun",0]`, string(b))
}

func TestNewRegistry_StringAlias(t *testing.T) {
	t.Parallel()

	r, err := NewRegistry(
		[]byte(`[["x", "", 1, "example", 2], ["y", "partOfSpeech", 0, ["why", "y-pos"], 0]]`),
		[]byte(`[{"category": "c", "tags": ["b", "a", "b"]}]`),
	)
	require.NoError(t, err)

	info, ok := r.Find("example")
	require.True(t, ok)
	assert.Equal(t, Info{ShortTag: "x", SortOrder: 1, LongTag: "example", Popularity: 2}, info)
	assert.Equal(t, "y", r.ShortPOS("y-pos"))
	assert.Len(t, r.Bank(), 2)
	assert.Equal(t, map[string]int{"b": 0, "a": 1}, r.order)
}

func TestNewRegistry_Errors(t *testing.T) {
	t.Parallel()

	_, err := NewRegistry([]byte(`[["x", "", 1]]`), []byte(`[]`))
	assert.Error(t, err)

	_, err = NewRegistry([]byte(`[["x", "", 1, [], 0]]`), []byte(`[]`))
	assert.Error(t, err)

	_, err = NewRegistry([]byte(`[]`), []byte(`{`))
	assert.Error(t, err)
}

func TestDefaultBank_NotEmpty(t *testing.T) {
	t.Parallel()

	bank := Default().Bank()
	require.NotEmpty(t, bank)
	seen := make(map[string]bool)
	for _, info := range bank {
		assert.False(t, seen[info.ShortTag], "duplicate short tag %q", info.ShortTag)
		seen[info.ShortTag] = true
	}
}
