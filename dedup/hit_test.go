package dedup

import (
	"testing"

	"github.com/grailbio/testutil/expect"
)

func TestMatchScore(t *testing.T) {
	h := &Hit{AlignedLen: 300, Identity: 95.5}
	expect.EQ(t, h.MatchScore(), 286.5)
}

func TestCodingLen(t *testing.T) {
	h := newTestHit("a", "chr1", 10, Exon{100, 150}, Exon{160, 200})
	expect.EQ(t, h.CodingLen(), 92)
}

func TestDigest(t *testing.T) {
	a := newTestHit("a", "chr1", 10, Exon{100, 150}, Exon{160, 200})
	b := newTestHit("b", "chr1", 20, Exon{100, 150}, Exon{160, 200})
	// IDs, scores and ranks do not contribute: the digest keys the
	// placement only.
	expect.EQ(t, a.Digest(), b.Digest())

	c := newTestHit("c", "chr1", 10, Exon{100, 150}, Exon{160, 201})
	expect.True(t, a.Digest() != c.Digest())
	d := newTestHit("d", "chr2", 10, Exon{100, 150}, Exon{160, 200})
	expect.True(t, a.Digest() != d.Digest())
	e := newTestHit("e", "chr1", 10, Exon{100, 150}, Exon{160, 200})
	e.Strand = Reverse
	expect.True(t, a.Digest() != e.Digest())
}

func TestStrandString(t *testing.T) {
	expect.EQ(t, Forward.String(), "+")
	expect.EQ(t, Reverse.String(), "-")
}

func TestStatsMerge(t *testing.T) {
	a := Stats{Hits: 3, Chromosomes: 1, Groups: 2, Loci: 2, Dropped: 1}
	b := Stats{Hits: 5, Chromosomes: 2, Groups: 3, Loci: 4, Dropped: 1}
	expect.EQ(t, a.Merge(b), Stats{Hits: 8, Chromosomes: 3, Groups: 5, Loci: 6, Dropped: 2})
}
