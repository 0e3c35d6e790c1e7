package dedup

import "runtime"

// Opts configures a dedup run.
type Opts struct {
	// OverlapRatio is the cutoff on shared coding length divided by a
	// hit's total coding length.  Two hits reaching the cutoff in either
	// direction are treated as models of the same locus.
	OverlapRatio float64
	// Parallelism bounds the number of chromosomes processed
	// concurrently.  Zero or negative means runtime.NumCPU().
	Parallelism int
}

// DefaultOpts sets the default values to Opts.
var DefaultOpts = Opts{
	OverlapRatio: 0.5,
	Parallelism:  0,
}

func (o Opts) parallelism() int {
	if o.Parallelism > 0 {
		return o.Parallelism
	}
	return runtime.NumCPU()
}
