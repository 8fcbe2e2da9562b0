package dict

import (
	"cmp"
	"slices"

	"github.com/heartmarshall/kty/pkg/ordmap"
)

// Diagnostics counts the tags and parts of speech seen while encoding, split
// by whether the tag bank knew them.
type Diagnostics struct {
	acceptedPOS  ordmap.Map[string, int]
	rejectedPOS  ordmap.Map[string, int]
	acceptedTags ordmap.Map[string, int]
	rejectedTags ordmap.Map[string, int]
}

// CountPOS records one lookup of a part of speech.
func (d *Diagnostics) CountPOS(pos string, found bool) {
	if found {
		incr(&d.acceptedPOS, pos)
	} else {
		incr(&d.rejectedPOS, pos)
	}
}

// CountTag records one lookup of a tag.
func (d *Diagnostics) CountTag(tag string, found bool) {
	if found {
		incr(&d.acceptedTags, tag)
	} else {
		incr(&d.rejectedTags, tag)
	}
}

// Empty reports whether nothing was counted.
func (d *Diagnostics) Empty() bool {
	return d.acceptedPOS.Len()+d.rejectedPOS.Len()+d.acceptedTags.Len()+d.rejectedTags.Len() == 0
}

// Report is a serializable view of one counter pair. Counts are sorted by
// frequency, highest first.
type Report struct {
	Rejected *ordmap.Map[string, int] `json:"rejected" yaml:"rejected"`
	Accepted *ordmap.Map[string, int] `json:"accepted" yaml:"accepted"`
}

// Empty reports whether the report has no counts.
func (r Report) Empty() bool { return r.Rejected.Len()+r.Accepted.Len() == 0 }

// POSReport returns the part-of-speech counts.
func (d *Diagnostics) POSReport() Report {
	return Report{Rejected: byCount(&d.rejectedPOS), Accepted: byCount(&d.acceptedPOS)}
}

// TagReport returns the tag counts.
func (d *Diagnostics) TagReport() Report {
	return Report{Rejected: byCount(&d.rejectedTags), Accepted: byCount(&d.acceptedTags)}
}

func incr(m *ordmap.Map[string, int], k string) {
	n, _ := m.Get(k)
	m.Set(k, n+1)
}

func byCount(m *ordmap.Map[string, int]) *ordmap.Map[string, int] {
	keys := slices.Clone(m.Keys())
	slices.SortStableFunc(keys, func(a, b string) int {
		na, _ := m.Get(a)
		nb, _ := m.Get(b)
		return cmp.Compare(nb, na)
	})
	out := ordmap.New[string, int](len(keys))
	for _, k := range keys {
		n, _ := m.Get(k)
		out.Set(k, n)
	}
	return out
}
