package dedup

import (
	"sort"
	"sync"

	"blainsmith.com/go/seahash"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/traverse"
	"github.com/grailbio/base/unsafe"
)

const numAcceptedShards = 512

type acceptedShard struct {
	mu   sync.Mutex
	hits map[string]*Hit
}

// AcceptedSet is a sharded, thread-safe collection of the hits kept by
// a run, keyed by hit ID.  Chromosome workers publish representatives
// directly into the set; the shards keep them from contending on one
// lock.
type AcceptedSet struct {
	shards [numAcceptedShards]acceptedShard
}

func newAcceptedSet() *AcceptedSet {
	s := &AcceptedSet{}
	for i := 0; i < len(s.shards); i++ {
		s.shards[i].hits = make(map[string]*Hit)
	}
	return s
}

func (s *AcceptedSet) shard(id string) *acceptedShard {
	h := seahash.Sum64(unsafe.StringToBytes(id))
	return &s.shards[int(h%uint64(numAcceptedShards))]
}

func (s *AcceptedSet) add(h *Hit) {
	shard := s.shard(h.ID)
	shard.mu.Lock()
	shard.hits[h.ID] = h
	shard.mu.Unlock()
}

// Contains reports whether the hit with the given ID was accepted.
func (s *AcceptedSet) Contains(id string) bool {
	shard := s.shard(id)
	shard.mu.Lock()
	_, ok := shard.hits[id]
	shard.mu.Unlock()
	return ok
}

// Len returns the number of accepted hits.
func (s *AcceptedSet) Len() int {
	n := 0
	for i := range s.shards {
		shard := &s.shards[i]
		shard.mu.Lock()
		n += len(shard.hits)
		shard.mu.Unlock()
	}
	return n
}

// Each calls fn for every accepted hit, in unspecified order.
func (s *AcceptedSet) Each(fn func(*Hit)) {
	for i := range s.shards {
		shard := &s.shards[i]
		shard.mu.Lock()
		for _, h := range shard.hits {
			fn(h)
		}
		shard.mu.Unlock()
	}
}

// IDs returns the accepted hit IDs in ascending order.
func (s *AcceptedSet) IDs() []string {
	ids := make([]string, 0, s.Len())
	s.Each(func(h *Hit) { ids = append(ids, h.ID) })
	sort.Strings(ids)
	return ids
}

// Hits returns the accepted hits ordered by chromosome, span start and
// ID.
func (s *AcceptedSet) Hits() []*Hit {
	hits := make([]*Hit, 0, s.Len())
	s.Each(func(h *Hit) { hits = append(hits, h) })
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Chrom != hits[j].Chrom {
			return hits[i].Chrom < hits[j].Chrom
		}
		if hits[i].SpanStart != hits[j].SpanStart {
			return hits[i].SpanStart < hits[j].SpanStart
		}
		return hits[i].ID < hits[j].ID
	})
	return hits
}

// Dedup reduces hits to one representative gene model per locus.  The
// hits may span any number of chromosomes; each chromosome's hits are
// grouped by footprint, every group is split into clusters of hits
// covering the same locus, and the best-scoring member of every
// cluster is accepted.  Chromosomes are independent and processed in
// parallel, bounded by opts.Parallelism.
//
// The input slice is reordered: hits are span-sorted within each
// chromosome.  Hit fields are never modified.
func Dedup(hits []*Hit, opts Opts) (*AcceptedSet, Stats) {
	byChrom := make(map[string][]*Hit)
	var chroms []string
	for _, h := range hits {
		if _, ok := byChrom[h.Chrom]; !ok {
			chroms = append(chroms, h.Chrom)
		}
		byChrom[h.Chrom] = append(byChrom[h.Chrom], h)
	}

	accepted := newAcceptedSet()
	if len(chroms) == 0 {
		return accepted, Stats{}
	}
	jobs := make(chan string, len(chroms))
	for _, chrom := range chroms {
		jobs <- chrom
	}
	close(jobs)

	var (
		mu    sync.Mutex
		stats Stats
	)
	parallelism := opts.parallelism()
	if parallelism > len(chroms) {
		parallelism = len(chroms)
	}
	err := traverse.Each(parallelism, func(_ int) error {
		for chrom := range jobs {
			s := dedupChromosome(byChrom[chrom], accepted, opts)
			mu.Lock()
			stats = stats.Merge(s)
			mu.Unlock()
		}
		return nil
	})
	if err != nil {
		// Workers never return errors.
		log.Panicf("dedup: %v", err)
	}
	return accepted, stats
}

func dedupChromosome(hits []*Hit, accepted *AcceptedSet, opts Opts) Stats {
	stats := Stats{Hits: len(hits), Chromosomes: 1}
	for _, group := range GroupByFootprint(hits) {
		stats.Groups++
		for _, cluster := range ResolveClusters(group, opts) {
			stats.Loci++
			accepted.add(SelectRepresentative(cluster))
		}
	}
	stats.Dropped = stats.Hits - stats.Loci
	return stats
}
