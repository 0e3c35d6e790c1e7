package dedup

import (
	"sort"

	"github.com/biogo/store/interval"
	"github.com/grailbio/base/log"
)

// acceptedInterval adapts an accepted hit to the interval tree's
// element type.  Tree coordinates are half-open; the hit's 1-based
// inclusive span maps to [SpanStart, SpanEnd+1).
type acceptedInterval struct {
	hit *Hit
	id  uintptr
}

func (iv acceptedInterval) Overlap(b interval.IntRange) bool {
	return iv.hit.SpanEnd+1 > b.Start && iv.hit.SpanStart < b.End
}

func (iv acceptedInterval) ID() uintptr { return iv.id }

func (iv acceptedInterval) Range() interval.IntRange {
	return interval.IntRange{Start: iv.hit.SpanStart, End: iv.hit.SpanEnd + 1}
}

type spanQuery struct{ start, end int }

func (q spanQuery) Overlap(b interval.IntRange) bool {
	return q.end > b.Start && q.start < b.End
}

// Index answers span queries over the hits accepted by a run, one
// interval tree per chromosome.  Downstream tools that extract coding
// or protein sequences use it to find which accepted models cover a
// region without rescanning the aligner output.
type Index struct {
	trees map[string]*interval.IntTree
}

// NewIndex builds an Index over the accepted set.  The set must not be
// mutated while the index is in use.
func NewIndex(accepted *AcceptedSet) *Index {
	ix := &Index{trees: make(map[string]*interval.IntTree)}
	var nextID uintptr
	accepted.Each(func(h *Hit) {
		t := ix.trees[h.Chrom]
		if t == nil {
			t = &interval.IntTree{}
			ix.trees[h.Chrom] = t
		}
		nextID++
		if err := t.Insert(acceptedInterval{hit: h, id: nextID}, true); err != nil {
			log.Panicf("index %s: %v", h.ID, err)
		}
	})
	for _, t := range ix.trees {
		t.AdjustRanges()
	}
	return ix
}

// Lookup returns the accepted hits whose spans intersect the 1-based
// inclusive range [start, end] on chrom, ordered by span start then ID.
func (ix *Index) Lookup(chrom string, start, end int) []*Hit {
	t := ix.trees[chrom]
	if t == nil {
		return nil
	}
	var hits []*Hit
	for _, e := range t.Get(spanQuery{start: start, end: end + 1}) {
		hits = append(hits, e.(acceptedInterval).hit)
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].SpanStart != hits[j].SpanStart {
			return hits[i].SpanStart < hits[j].SpanStart
		}
		return hits[i].ID < hits[j].ID
	})
	return hits
}
