package dedup

// GroupByFootprint partitions one chromosome's hits into maximal runs
// whose transcript spans chain-overlap.  The input slice is sorted in
// place (SpanStart ascending, ID on ties) and every hit lands in
// exactly one group, in sorted order.
//
// The sweep keeps a single boundary: a hit starting at or past the
// boundary closes the open group, and the boundary then moves to that
// hit's SpanEnd.  The boundary tracks the hit processed last, not the
// furthest end seen so far, so a short hit following a long one can
// close a group while the long hit still spans further.  Group
// boundaries produced by this exact rule are part of the output
// contract; do not replace the sweep with an interval merge.
func GroupByFootprint(hits []*Hit) [][]*Hit {
	if len(hits) == 0 {
		return nil
	}
	SortHitsBySpan(hits)
	var (
		groups   [][]*Hit
		cur      []*Hit
		boundary int
	)
	for _, h := range hits {
		if h.SpanStart >= boundary && len(cur) > 0 {
			groups = append(groups, cur)
			cur = nil
		}
		cur = append(cur, h)
		boundary = h.SpanEnd
	}
	return append(groups, cur)
}
