package tags

import (
	"cmp"
	"slices"
	"strings"

	"github.com/heartmarshall/kty/pkg/ordmap"
)

var personTags = []string{"first-person", "second-person", "third-person"}

// SortTags stable-sorts single-word tags by their position in the canonical
// order. Tags missing from the order go last and keep their relative order.
func SortTags(words []string) {
	order := defaultOrder()
	slices.SortStableFunc(words, func(a, b string) int {
		i, iok := order[a]
		j, jok := order[b]
		switch {
		case iok && jok:
			return cmp.Compare(i, j)
		case iok:
			return -1
		case jok:
			return 1
		default:
			return 0
		}
	})
}

// SortTagsBySimilar sorts space-separated tags word by word, so that tags
// sharing leading words end up together and a prefix sorts first.
func SortTagsBySimilar(tags []string) {
	slices.SortStableFunc(tags, compareWordwise)
}

func compareWordwise(a, b string) int {
	aw, bw := strings.Split(a, " "), strings.Split(b, " ")
	for i := 0; i < len(aw) && i < len(bw); i++ {
		if c := strings.Compare(aw[i], bw[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(aw), len(bw))
}

// RemoveRedundantTags drops every tag whose word set is contained in the word
// set of another tag. Of two tags with equal word sets the later one is kept:
// ["a b", "b a"] becomes ["b a"].
func RemoveRedundantTags(tags []string) []string {
	keep := make([]bool, len(tags))
	for i := range keep {
		keep[i] = true
	}

	for i := range tags {
		if !keep[i] {
			continue
		}
		for j := i + 1; j < len(tags); j++ {
			if !keep[j] {
				continue
			}
			if IsSubset(tags[i], tags[j]) {
				keep[i] = false
				break
			} else if IsSubset(tags[j], tags[i]) {
				keep[j] = false
			}
		}
	}

	out := tags[:0]
	for i, t := range tags {
		if keep[i] {
			out = append(out, t)
		}
	}
	return out
}

// IsSubset reports whether every word of a also occurs in b,
// e.g. "foo bar" is a subset of "bar foo baz".
func IsSubset(a, b string) bool {
	bw := strings.Split(b, " ")
	for _, w := range strings.Split(a, " ") {
		if !slices.Contains(bw, w) {
			return false
		}
	}
	return true
}

// MergePersonTags merges tags that differ only in their person word:
//
//	["first-person singular", "third-person singular"] -> ["singular first/third-person"]
//
// Tags without exactly one person word are passed through first. The result
// is not in logical order; sort the words afterwards.
func MergePersonTags(tags []string) []string {
	hasPerson := slices.ContainsFunc(tags, func(t string) bool {
		return slices.ContainsFunc(personTags, func(p string) bool { return strings.Contains(t, p) })
	})
	if !hasPerson {
		return tags
	}

	out := make([]string, 0, len(tags))
	var grouped ordmap.Map[string, []string]

	for _, tag := range tags {
		var persons, others []string
		for _, w := range strings.Split(tag, " ") {
			if slices.Contains(personTags, w) {
				persons = append(persons, w)
			} else {
				others = append(others, w)
			}
		}
		if len(persons) != 1 {
			out = append(out, tag)
			continue
		}
		key := strings.Join(others, " ")
		ps, _ := grouped.Get(key)
		grouped.Set(key, append(ps, persons[0]))
	}

	for others, persons := range grouped.All() {
		slices.SortStableFunc(persons, func(a, b string) int {
			return cmp.Compare(slices.Index(personTags, a), slices.Index(personTags, b))
		})
		short := make([]string, len(persons))
		for i, p := range persons {
			short[i] = strings.TrimSuffix(p, "-person")
		}
		merged := strings.Join(short, "/") + "-person"
		if others == "" {
			out = append(out, merged)
		} else {
			out = append(out, others+" "+merged)
		}
	}
	return out
}

// PostprocessFormTags canonicalizes the tags of one form entry: redundancy
// removal, person merge, words inside each tag in canonical order, then the
// tags themselves by similarity.
func PostprocessFormTags(tags []string) []string {
	tags = RemoveRedundantTags(tags)
	tags = MergePersonTags(tags)
	for i, t := range tags {
		words := strings.Split(t, " ")
		SortTags(words)
		tags[i] = strings.Join(words, " ")
	}
	SortTagsBySimilar(tags)
	return tags
}
