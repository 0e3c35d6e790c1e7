package dedup

// Stats summarizes one dedup run.
type Stats struct {
	// Hits is the number of input hits.
	Hits int
	// Chromosomes is the number of distinct chromosomes seen.
	Chromosomes int
	// Groups is the number of footprint groups across all chromosomes.
	Groups int
	// Loci is the number of clusters found; one hit is accepted per
	// locus.
	Loci int
	// Dropped is the number of hits discarded as redundant models,
	// Hits - Loci.
	Dropped int
}

// Merge adds the field values of the two Stats objects and creates new
// Stats.
func (s Stats) Merge(o Stats) Stats {
	s.Hits += o.Hits
	s.Chromosomes += o.Chromosomes
	s.Groups += o.Groups
	s.Loci += o.Loci
	s.Dropped += o.Dropped
	return s
}
