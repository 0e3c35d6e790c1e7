package dedup

// sharedCodingLen returns the number of genomic bases covered by the
// coding segments of both a and b.  It is the plain cross-product sum
// of pairwise exon intersections: because exons within one hit never
// overlap each other, every shared base is counted exactly once, and
// overlap contributed by several exon pairs is additive.
func sharedCodingLen(a, b *Hit) int {
	shared := 0
	for _, ea := range a.Exons {
		for _, eb := range b.Exons {
			lo := ea.Start
			if eb.Start > lo {
				lo = eb.Start
			}
			hi := ea.End
			if eb.End < hi {
				hi = eb.End
			}
			if hi >= lo {
				shared += hi - lo + 1
			}
		}
	}
	return shared
}

// Overlaps reports whether a and b represent the same coding locus:
// the coding length they share must cover at least opts.OverlapRatio of
// either hit's total coding length.  Requiring only one direction to
// reach the cutoff makes the relation symmetric, and keeps a short
// model that re-aligns part of a longer one attached to it.
//
// Pure function of the two exon sets; no ordering is assumed between a
// and b.
func Overlaps(a, b *Hit, opts Opts) bool {
	shared := float64(sharedCodingLen(a, b))
	return shared/float64(a.CodingLen()) >= opts.OverlapRatio ||
		shared/float64(b.CodingLen()) >= opts.OverlapRatio
}
