package dict

import (
	"cmp"
	"encoding/json"
	"iter"
	"slices"
	"unicode/utf8"

	"github.com/heartmarshall/kty/internal/kaikki"
	"github.com/heartmarshall/kty/pkg/ordmap"
)

// maxExampleLen is the longest example text kept, in characters.
const maxExampleLen = 120

// GlossTree is a forest of glosses. Sibling order is first insertion order.
type GlossTree struct {
	nodes ordmap.Map[string, *GlossNode]
}

// GlossNode is the data attached to one gloss.
type GlossNode struct {
	Tags     []string         `json:"tags,omitempty" yaml:"tags,omitempty"`
	Topics   []string         `json:"topics,omitempty" yaml:"topics,omitempty"`
	Examples []kaikki.Example `json:"examples,omitempty" yaml:"examples,omitempty"`
	Children *GlossTree       `json:"children,omitempty" yaml:"children,omitempty"`
}

// Len returns the number of top-level glosses.
func (t *GlossTree) Len() int {
	if t == nil {
		return 0
	}
	return t.nodes.Len()
}

// All iterates over top-level glosses in order.
func (t *GlossTree) All() iter.Seq2[string, *GlossNode] {
	if t == nil {
		return func(func(string, *GlossNode) bool) {}
	}
	return t.nodes.All()
}

// Get returns the node of a top-level gloss.
func (t *GlossTree) Get(gloss string) (*GlossNode, bool) {
	if t == nil {
		return nil, false
	}
	return t.nodes.Get(gloss)
}

func (t *GlossTree) MarshalJSON() ([]byte, error) { return json.Marshal(t.nodes) }

func (t *GlossTree) MarshalYAML() (any, error) { return t.nodes.MarshalYAML() }

// Insert adds the gloss path of one sense. Every node on the path gets the
// sense tags and topics when created; an existing node keeps only the tags
// shared with this sense. Examples land on the last node.
func (t *GlossTree) Insert(glosses []string, tags, topics []string, examples []kaikki.Example) {
	if len(glosses) == 0 {
		return
	}
	node, _ := t.nodes.GetOrInsert(glosses[0], func() *GlossNode {
		return &GlossNode{
			Tags:   slices.Clone(tags),
			Topics: slices.Clone(topics),
		}
	})
	if len(node.Tags) > 0 {
		node.Tags = intersect(tags, node.Tags)
	}
	if len(glosses) == 1 {
		node.Examples = examples
		return
	}
	if node.Children == nil {
		node.Children = &GlossTree{}
	}
	node.Children.Insert(glosses[1:], tags, topics, examples)
}

// intersect keeps the items of a that are also in b, in the order of a.
func intersect(a, b []string) []string {
	out := make([]string, 0, len(a))
	for _, x := range a {
		if slices.Contains(b, x) {
			out = append(out, x)
		}
	}
	return out
}

// GlossTreeOf builds the tree of every sense of r.
func GlossTreeOf(r *kaikki.Record) *GlossTree {
	t := &GlossTree{}
	for _, s := range r.Senses {
		t.Insert(s.Glosses, s.Tags, s.Topics, usableExamples(s.Examples))
	}
	return t
}

// usableExamples drops empty and overlong examples and puts translated ones
// first.
func usableExamples(in []kaikki.Example) []kaikki.Example {
	var out []kaikki.Example
	for _, ex := range in {
		if ex.Text == "" || utf8.RuneCountInString(ex.Text) > maxExampleLen {
			continue
		}
		out = append(out, ex)
	}
	slices.SortStableFunc(out, func(a, b kaikki.Example) int {
		return cmp.Compare(rank(a), rank(b))
	})
	return out
}

func rank(ex kaikki.Example) int {
	if ex.Translation != "" {
		return 0
	}
	return 1
}
