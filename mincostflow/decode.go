// File: decode.go
// Role: path-decomposition decoder — repeatedly extract a
// source→sink path of used-flow ≥ 1, subtract one unit, and translate the
// path's vertices back into the node sequence a single vehicle occupies.
package mincostflow

import "github.com/rssched/rollingstock-solver/basetypes"

// decomposePaths extracts every unit source→sink path implied by fg.used,
// each as the node sequence [startDepot, service, service, ..., endDepot].
func decomposePaths(fg *flowGraph) [][]basetypes.NodeIdx {
	var paths [][]basetypes.NodeIdx
	for {
		route := findUnitPath(fg)
		if route == nil {
			break
		}
		for i := 0; i+1 < len(route); i++ {
			fg.used[route[i]][route[i+1]]--
		}
		paths = append(paths, translateRoute(fg, route))
	}
	return paths
}

func findUnitPath(fg *flowGraph) []string {
	visited := map[string]bool{source: true}
	path := []string{source}
	var dfs func(u string) bool
	dfs = func(u string) bool {
		if u == sink {
			return true
		}
		for v, amount := range fg.used[u] {
			if amount <= 0 || visited[v] {
				continue
			}
			visited[v] = true
			path = append(path, v)
			if dfs(v) {
				return true
			}
			path = path[:len(path)-1]
		}
		return false
	}
	if dfs(source) {
		return path
	}
	return nil
}

// translateRoute drops the source/sink markers and collapses each service's
// in/out pair into that service's single NodeIdx.
func translateRoute(fg *flowGraph, route []string) []basetypes.NodeIdx {
	out := make([]basetypes.NodeIdx, 0, len(route))
	for _, id := range route {
		info := fg.info[id]
		switch info.role {
		case roleDepotStart, roleDepotEnd, roleServiceIn:
			out = append(out, info.node)
		case roleServiceOut:
			// already emitted by the matching roleServiceIn
		}
	}
	return out
}
