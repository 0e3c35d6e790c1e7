// Package dedup reduces a set of candidate gene-model alignments to one
// representative per genomic locus.  Hits whose coding structures cover
// the same region of the genome are clustered together, and only the
// best-scoring member of each cluster is kept.
//
// The package is pure computation: it performs no I/O, and a run is a
// single bounded batch over the input hits.  See the gmf package for
// reading aligner output and writing the filtered result.
package dedup

import (
	"encoding/binary"
	"sort"

	"github.com/minio/highwayhash"
)

// Strand is the genomic strand a hit aligns to.
type Strand int8

const (
	// Forward is the plus strand.
	Forward Strand = 1
	// Reverse is the minus strand.
	Reverse Strand = -1
)

// String returns "+" or "-".
func (s Strand) String() string {
	if s == Reverse {
		return "-"
	}
	return "+"
}

// Exon is one coding segment within a hit.  Coordinates are 1-based and
// inclusive on both ends.  Exons of one hit never overlap each other.
type Exon struct {
	Start, End int
}

func (e Exon) len() int { return e.End - e.Start + 1 }

// Hit is one candidate gene model produced by the aligner.  All fields
// are set by the parser and never mutated afterwards; every derived
// structure in this package references hits by pointer or by ID only.
type Hit struct {
	// ID uniquely identifies the hit within one run.  Assigned by the
	// aligner.
	ID string
	// Chrom is the name of the sequence the hit maps to.
	Chrom string
	// SpanStart and SpanEnd delimit the full transcript span, 1-based
	// inclusive.  SpanStart <= SpanEnd, and every exon lies within the
	// span.
	SpanStart, SpanEnd int
	// Strand the model aligns to.
	Strand Strand
	// Rank is the aligner-assigned rank among hits for the same query.
	// Carried through to the output unchanged.
	Rank int
	// Identity is the percent sequence identity of the alignment, in
	// [0, 100].
	Identity float64
	// AlignedLen is the aligned amino-acid length.
	AlignedLen int
	// Exons are the coding segments.  Order follows the aligner's
	// output; a hit always has at least one.
	Exons []Exon
	// Note is an opaque annotation carried through to the output.
	Note string
}

// MatchScore is the metric used to rank hits believed to represent the
// same locus: aligned length weighted by identity.
func (h *Hit) MatchScore() float64 {
	return float64(h.AlignedLen) * h.Identity / 100.0
}

// CodingLen returns the total coding length of the hit, the sum of its
// exon lengths.
func (h *Hit) CodingLen() int {
	n := 0
	for _, e := range h.Exons {
		n += e.len()
	}
	return n
}

// Digest is a fixed-size content key for a hit's genomic placement.
type Digest [highwayhash.Size]uint8

var zeroSeed = Digest{}

// Digest returns a key over the hit's chromosome, strand, span and
// exact exon chain.  Two records with equal digests describe the same
// gene model, whatever their IDs; the gmf reader uses this to suppress
// records the aligner emitted more than once.
func (h *Hit) Digest() Digest {
	buf := make([]uint8, 0, len(h.Chrom)+2+4*(2+2*len(h.Exons)))
	buf = append(buf, h.Chrom...)
	buf = append(buf, 0, uint8(h.Strand+2))
	var tmp [4]uint8
	putInt := func(v int) {
		binary.LittleEndian.PutUint32(tmp[:], uint32(v))
		buf = append(buf, tmp[:]...)
	}
	putInt(h.SpanStart)
	putInt(h.SpanEnd)
	for _, e := range h.Exons {
		putInt(e.Start)
		putInt(e.End)
	}
	return highwayhash.Sum(buf, zeroSeed[:])
}

// SortHitsBySpan orders hits by ascending SpanStart.  Ties are broken
// by ID so that grouping does not depend on the order the records were
// read in.
func SortHitsBySpan(hits []*Hit) {
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].SpanStart != hits[j].SpanStart {
			return hits[i].SpanStart < hits[j].SpanStart
		}
		return hits[i].ID < hits[j].ID
	})
}
