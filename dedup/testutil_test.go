package dedup

// newTestHit builds a hit whose span is the hull of its exons.  The
// identity is fixed at 100 so a hit's match score equals its aligned
// length unless a test overrides Identity explicitly.
func newTestHit(id, chrom string, alignedLen int, exons ...Exon) *Hit {
	h := &Hit{
		ID:         id,
		Chrom:      chrom,
		Strand:     Forward,
		Rank:       1,
		Identity:   100,
		AlignedLen: alignedLen,
		Exons:      exons,
	}
	h.SpanStart = exons[0].Start
	h.SpanEnd = exons[0].End
	for _, e := range exons[1:] {
		if e.Start < h.SpanStart {
			h.SpanStart = e.Start
		}
		if e.End > h.SpanEnd {
			h.SpanEnd = e.End
		}
	}
	return h
}

func clusterIDs(clusters []Cluster) [][]string {
	var ids [][]string
	for _, c := range clusters {
		var members []string
		for _, h := range c {
			members = append(members, h.ID)
		}
		ids = append(ids, members)
	}
	return ids
}

func groupIDs(groups [][]*Hit) [][]string {
	var ids [][]string
	for _, g := range groups {
		var members []string
		for _, h := range g {
			members = append(members, h.ID)
		}
		ids = append(ids, members)
	}
	return ids
}
