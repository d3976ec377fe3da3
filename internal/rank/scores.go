package rank

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/network"
)

const (
	Damping           = 0.85
	Tolerance         = 1e-6
	MaxHITSIterations = 100
)

// PageRankScores returns the PageRank of every node of g. The scores sum to 1.
// The sparse solver keeps memory linear in the number of links.
func PageRankScores(g graph.Directed) map[int64]float64 {
	if g.Nodes().Len() == 0 {
		return map[int64]float64{}
	}
	return network.PageRankSparse(g, Damping, Tolerance)
}

// HITSScores runs the hub/authority power iteration on g. Each iteration
// scales both vectors by their maximum; the final vectors are scaled to sum
// to 1. It fails with ErrNotConverged when the L1 change of the hub vector is
// still at least tol after maxIter iterations.
//
// A graph without edges gives every node the same hub and authority score.
func HITSScores(g graph.Directed, maxIter int, tol float64) (map[int64]network.HubAuthority, error) {
	nodes := graph.NodesOf(g.Nodes())
	n := len(nodes)
	if n == 0 {
		return map[int64]network.HubAuthority{}, nil
	}

	indexOf := make(map[int64]int, n)
	for i, u := range nodes {
		indexOf[u.ID()] = i
	}
	linkedFrom := make([][]int, n)
	for i, u := range nodes {
		to := g.From(u.ID())
		for to.Next() {
			linkedFrom[i] = append(linkedFrom[i], indexOf[to.Node().ID()])
		}
	}

	hub := make([]float64, n)
	for i := range hub {
		hub[i] = 1 / float64(n)
	}
	auth := make([]float64, n)
	last := make([]float64, n)

	converged := false
	for iter := 0; iter < maxIter; iter++ {
		copy(last, hub)

		for i := range auth {
			auth[i] = 0
		}
		for u, vs := range linkedFrom {
			for _, v := range vs {
				auth[v] += last[u]
			}
		}
		for u, vs := range linkedFrom {
			hub[u] = 0
			for _, v := range vs {
				hub[u] += auth[v]
			}
		}

		scaleByMax(hub)
		scaleByMax(auth)

		if floats.Distance(hub, last, 1) < tol {
			converged = true
			break
		}
	}
	if !converged {
		return nil, fmt.Errorf("%w: HITS after %d iterations", ErrNotConverged, maxIter)
	}

	normalizeSum(hub)
	normalizeSum(auth)

	scores := make(map[int64]network.HubAuthority, n)
	for i, u := range nodes {
		scores[u.ID()] = network.HubAuthority{Hub: hub[i], Authority: auth[i]}
	}
	return scores, nil
}

func scaleByMax(v []float64) {
	if m := floats.Max(v); m > 0 {
		floats.Scale(1/m, v)
	}
}

func normalizeSum(v []float64) {
	s := floats.Sum(v)
	if s > 0 {
		floats.Scale(1/s, v)
		return
	}
	for i := range v {
		v[i] = 1 / float64(len(v))
	}
}
