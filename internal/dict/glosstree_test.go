package dict

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/kty/internal/kaikki"
)

func TestGlossTree_Insert(t *testing.T) {
	t.Parallel()

	tree := &GlossTree{}
	tree.Insert([]string{"animal", "dog"}, []string{"countable", "informal"}, []string{"zoology"}, nil)
	tree.Insert([]string{"animal", "cat"}, []string{"informal", "countable", "rare"}, nil,
		[]kaikki.Example{{Text: "The cat sat."}})
	tree.Insert([]string{"verb sense"}, nil, nil, nil)

	require.Equal(t, 2, tree.Len())
	animal, ok := tree.Get("animal")
	require.True(t, ok)
	// Order follows the later sense, membership the earlier.
	assert.Equal(t, []string{"informal", "countable"}, animal.Tags)
	assert.Equal(t, []string{"zoology"}, animal.Topics)
	assert.Empty(t, animal.Examples)

	var children []string
	for g, n := range animal.Children.All() {
		children = append(children, g)
		if g == "cat" {
			assert.Equal(t, []kaikki.Example{{Text: "The cat sat."}}, n.Examples)
			assert.Equal(t, []string{"informal", "countable", "rare"}, n.Tags)
		}
	}
	assert.Equal(t, []string{"dog", "cat"}, children)

	leaf, _ := tree.Get("verb sense")
	assert.Nil(t, leaf.Children)
}

func TestGlossTree_UntaggedNodeStaysUntagged(t *testing.T) {
	t.Parallel()

	tree := &GlossTree{}
	tree.Insert([]string{"a"}, nil, nil, nil)
	tree.Insert([]string{"a"}, []string{"rare"}, nil, nil)
	node, _ := tree.Get("a")
	assert.Empty(t, node.Tags)
}

func TestUsableExamples(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("é", maxExampleLen)
	got := usableExamples([]kaikki.Example{
		{Text: ""},
		{Text: "plain"},
		{Text: long},
		{Text: long + "é"},
		{Text: "translated", Translation: "übersetzt"},
	})
	assert.Equal(t, []kaikki.Example{
		{Text: "translated", Translation: "übersetzt"},
		{Text: "plain"},
		{Text: long},
	}, got)
}

func TestGlossTree_MarshalJSON(t *testing.T) {
	t.Parallel()

	tree := &GlossTree{}
	tree.Insert([]string{"b", "c"}, []string{"x"}, nil, nil)
	tree.Insert([]string{"a"}, nil, nil, nil)
	assert.Equal(t, `{"b":{"tags":["x"],"children":{"c":{"tags":["x"]}}},"a":{}}`, marshal(t, tree))
}
