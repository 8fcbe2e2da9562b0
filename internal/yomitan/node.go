// Package yomitan models the Yomitan dictionary format (term banks,
// structured content, tag banks) and writes dictionaries to disk.
package yomitan

import (
	"encoding/json"

	"github.com/heartmarshall/kty/pkg/ordmap"
)

// Node is a structured-content node: Text, Array, *Element or Link.
type Node interface {
	isNode()
}

// Text is a plain text node.
type Text string

// Array is a list of nodes.
type Array []Node

// Element is an HTML-like node. Fields serialize in the order tag, title,
// data, content.
type Element struct {
	Tag     string                     `json:"tag"`
	Title   string                     `json:"title,omitempty"`
	Data    *ordmap.Map[string, string] `json:"data,omitempty"`
	Content Node                       `json:"content"`
}

// Link is an anchor. Yomitan renders external links with an icon.
type Link struct {
	Href  string
	Label string
}

func (Text) isNode()     {}
func (Array) isNode()    {}
func (*Element) isNode() {}
func (Link) isNode()     {}

// MarshalJSON writes {"tag":"a","href":...,"content":...}.
func (l Link) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Tag     string `json:"tag"`
		Href    string `json:"href"`
		Content string `json:"content"`
	}{"a", l.Href, l.Label})
}

// Wrap returns an element around content. A non-empty contentType is stored
// as data-content, which is what the stylesheet selects on.
func Wrap(tag, contentType string, content Node) *Element {
	e := &Element{Tag: tag, Content: content}
	if contentType != "" {
		e.SetData("content", contentType)
	}
	return e
}

// SetData sets a data-* attribute, keeping insertion order.
func (e *Element) SetData(key, value string) *Element {
	if e.Data == nil {
		e.Data = ordmap.New[string, string](2)
	}
	e.Data.Set(key, value)
	return e
}

// Definition is one item of a term entry's definition list: TextDefinition,
// StructuredDefinition or Inflection.
type Definition interface {
	isDefinition()
}

// TextDefinition is a plain text definition.
type TextDefinition string

// StructuredDefinition wraps structured content.
type StructuredDefinition struct {
	Content Node
}

// Inflection tells Yomitan that the term is an inflection of Uninflected.
// Multiple Rules form a chain, so independent facts belong in separate
// Inflection definitions.
type Inflection struct {
	Uninflected string
	Rules       []string
}

func (TextDefinition) isDefinition()       {}
func (StructuredDefinition) isDefinition() {}
func (Inflection) isDefinition()           {}

// MarshalJSON writes {"type":"structured-content","content":...}.
func (d StructuredDefinition) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    string `json:"type"`
		Content Node   `json:"content"`
	}{"structured-content", d.Content})
}

// MarshalJSON writes [uninflected, [rules...]].
func (d Inflection) MarshalJSON() ([]byte, error) {
	rules := d.Rules
	if rules == nil {
		rules = []string{}
	}
	return json.Marshal([]any{d.Uninflected, rules})
}
