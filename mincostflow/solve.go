// File: solve.go
// Role: successive-shortest-augmenting-path min-cost max-flow over a
// flowGraph's residual capacity/cost maps. Plays the same structural role
// as flow.Dinic (repeatedly augment along a distinguished
// path, update residual capacities in place, stop when sink is
// unreachable) but the search order is cost-shortest-path (Bellman-Ford,
// needed because residual reverse arcs carry negative cost) rather than
// Dinic's hop-count BFS level graph.
package mincostflow

import "math"

// solveMaxFlow repeatedly augments along the cheapest source→sink path in
// the residual graph until none remains, returning the total flow pushed and
// its total cost. fg's capacity map is mutated into its final residual
// state; the flow used per forward arc is accumulated in fg.used.
func solveMaxFlow(fg *flowGraph) (flow int64, cost int64) {
	for {
		dist, parent, reached := bellmanFord(fg, source)
		if !reached[sink] {
			break
		}

		bottleneck := int64(math.MaxInt64)
		for v := sink; v != source; {
			u := parent[v]
			if c := fg.capacity[u][v]; c < bottleneck {
				bottleneck = c
			}
			v = u
		}
		if bottleneck <= 0 || bottleneck == math.MaxInt64 {
			break
		}

		for v := sink; v != source; {
			u := parent[v]
			fg.capacity[u][v] -= bottleneck
			fg.capacity[v][u] += bottleneck
			if fg.used[v][u] > 0 {
				// pushing back along a previously-used reverse arc cancels prior usage
				cancel := bottleneck
				if fg.used[v][u] < cancel {
					cancel = fg.used[v][u]
				}
				fg.used[v][u] -= cancel
				fg.used[u][v] += bottleneck - cancel
			} else {
				fg.used[u][v] += bottleneck
			}
			v = u
		}

		flow += bottleneck
		cost += bottleneck * dist[sink]
	}
	return flow, cost
}

// bellmanFord finds shortest-cost paths from src over every arc with
// positive residual capacity. Safe against negative-cost reverse arcs; the
// network as built is acyclic enough in practice for this instance scale
// that at most |V| relaxation passes (stopping early once a pass changes
// nothing) suffice.
func bellmanFord(fg *flowGraph, src string) (dist map[string]int64, parent map[string]string, reached map[string]bool) {
	dist = make(map[string]int64, len(fg.info))
	parent = make(map[string]string, len(fg.info))
	reached = make(map[string]bool, len(fg.info))
	for id := range fg.info {
		dist[id] = math.MaxInt64
	}
	dist[src] = 0
	reached[src] = true

	for i := 0; i < len(fg.info); i++ {
		changed := false
		for u, nbrs := range fg.capacity {
			if dist[u] == math.MaxInt64 {
				continue
			}
			for v, cap := range nbrs {
				if cap <= 0 {
					continue
				}
				nd := dist[u] + fg.cost[u][v]
				if nd < dist[v] {
					dist[v] = nd
					parent[v] = u
					reached[v] = true
					changed = true
				}
			}
		}
		if !changed {
			break
		}
	}
	return dist, parent, reached
}
