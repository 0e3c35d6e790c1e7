package dedup

// Cluster is one set of hits judged to represent a single locus within
// a footprint group.  Member order follows the group's hit order.
type Cluster []*Hit

const unlabeled = -1

// ResolveClusters splits a footprint group into clusters of hits that
// represent the same locus.  Every hit of the group appears in exactly
// one returned cluster.
//
// The resolution runs in two separated passes.  The first walks all
// pairs (i, j) with i <= j in the group's order (the self pair is
// evaluated like any other) and grows provisional subgroups:
//
//   - overlapping pair, neither labeled: both get one fresh label;
//   - overlapping pair, one labeled: the other side joins its label;
//   - overlapping pair, both labeled differently: the connection is
//     recorded for the second pass instead of merging immediately;
//   - non-overlapping pair: any still-unlabeled side gets a fresh label
//     of its own.  A hit that already has a label keeps it.
//
// The second pass treats the provisional labels as nodes of an
// undirected graph with the recorded connections as edges and merges
// each connected component into one final cluster.  Labels without
// edges become clusters on their own.
//
// The first pass is order dependent: the same group in the same order
// always yields the same clusters, but reordering the group can change
// which provisional label a hit receives.  The fixed i <= j enumeration
// over the span-sorted group is therefore part of the contract.
func ResolveClusters(group []*Hit, opts Opts) []Cluster {
	if len(group) == 0 {
		return nil
	}
	if len(group) == 1 {
		return []Cluster{{group[0]}}
	}

	labels := make([]int, len(group))
	for i := range labels {
		labels[i] = unlabeled
	}
	nextLabel := 0
	type connection struct{ a, b int }
	var connections []connection
	for i := 0; i < len(group); i++ {
		for j := i; j < len(group); j++ {
			if !Overlaps(group[i], group[j], opts) {
				// Definitely not the same locus. Only sides that never
				// matched anything before get fresh labels.
				if labels[i] == unlabeled {
					labels[i] = nextLabel
					nextLabel++
				}
				if labels[j] == unlabeled {
					labels[j] = nextLabel
					nextLabel++
				}
				continue
			}
			switch {
			case labels[i] == unlabeled && labels[j] == unlabeled:
				labels[i] = nextLabel
				labels[j] = nextLabel
				nextLabel++
			case labels[i] == unlabeled:
				labels[i] = labels[j]
			case labels[j] == unlabeled:
				labels[j] = labels[i]
			case labels[i] != labels[j]:
				connections = append(connections, connection{labels[i], labels[j]})
			}
		}
	}

	// Resolve connected components over the label graph.  The traversal
	// is an explicit-stack DFS; a group of very many mutually
	// overlapping hits must not recurse.
	adjacent := make([][]int, nextLabel)
	for _, c := range connections {
		adjacent[c.a] = append(adjacent[c.a], c.b)
		adjacent[c.b] = append(adjacent[c.b], c.a)
	}
	component := make([]int, nextLabel)
	for i := range component {
		component[i] = unlabeled
	}
	numComponents := 0
	var stack []int
	for l := 0; l < nextLabel; l++ {
		if component[l] != unlabeled {
			continue
		}
		component[l] = numComponents
		stack = append(stack[:0], l)
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, m := range adjacent[n] {
				if component[m] == unlabeled {
					component[m] = numComponents
					stack = append(stack, m)
				}
			}
		}
		numComponents++
	}

	clusters := make([]Cluster, numComponents)
	for i, h := range group {
		c := component[labels[i]]
		clusters[c] = append(clusters[c], h)
	}
	return clusters
}
