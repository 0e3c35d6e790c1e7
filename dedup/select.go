package dedup

// SelectRepresentative returns the cluster member with the greatest
// match score.  The comparison is strictly greater, so on a tie the
// earliest member in cluster order stays the best.
//
// REQUIRES: len(c) > 0.
func SelectRepresentative(c Cluster) *Hit {
	best := c[0]
	bestScore := best.MatchScore()
	for _, h := range c[1:] {
		if s := h.MatchScore(); s > bestScore {
			best, bestScore = h, s
		}
	}
	return best
}
