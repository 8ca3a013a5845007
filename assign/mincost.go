package assign

import (
	"math"

	"github.com/duplau/link-fields/entity"
)

// HungarianMinCost solves the min-cost bipartite assignment over an
// m x n cost matrix, returning a length-m slice where result[i] is the
// column assigned to row i, or -1 if row i could not be matched
// (possible only when n < m). Implements the classic O(size^3)
// primal-dual Hungarian algorithm over a cost matrix padded to square.
//
// No file in the example pack implements a real min-cost solver —
// original_source/grid.py's only matching strategy is
// difflib.get_close_matches, a greedy nearest-neighbor scan, never an
// assignment problem — so this is built from the standard textbook
// algorithm, justified in DESIGN.md as algorithmic code with no
// natural third-party home in this corpus.
func HungarianMinCost(cost [][]float64) []int {
	n := len(cost)
	if n == 0 {
		return nil
	}
	m := len(cost[0])
	size := n
	if m > size {
		size = m
	}

	const inf = math.MaxFloat64 / 4

	a := make([][]float64, size+1)
	for i := range a {
		a[i] = make([]float64, size+1)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			a[i+1][j+1] = cost[i][j]
		}
	}

	u := make([]float64, size+1)
	v := make([]float64, size+1)
	p := make([]int, size+1) // p[j] = row currently matched to column j (1-based), 0 = none
	way := make([]int, size+1)

	for i := 1; i <= size; i++ {
		p[0] = i
		j0 := 0
		minV := make([]float64, size+1)
		used := make([]bool, size+1)
		for j := range minV {
			minV[j] = inf
		}
		for {
			used[j0] = true
			i0 := p[j0]
			delta := inf
			j1 := -1
			for j := 1; j <= size; j++ {
				if used[j] {
					continue
				}
				cur := a[i0][j] - u[i0] - v[j]
				if cur < minV[j] {
					minV[j] = cur
					way[j] = j0
				}
				if minV[j] < delta {
					delta = minV[j]
					j1 = j
				}
			}
			for j := 0; j <= size; j++ {
				if used[j] {
					u[p[j]] += delta
					v[j] -= delta
				} else {
					minV[j] -= delta
				}
			}
			j0 = j1
			if j0 < 0 || p[j0] == 0 {
				break
			}
		}
		for j0 != 0 {
			j1 := way[j0]
			p[j0] = p[j1]
			j0 = j1
		}
	}

	result := make([]int, n)
	for i := range result {
		result[i] = -1
	}
	for j := 1; j <= size; j++ {
		if p[j] != 0 && p[j]-1 < n && j-1 < m {
			result[p[j]-1] = j - 1
		}
	}
	return result
}

// ScoreFunc returns the item score (0-100) between a source item and a
// canonical entry, by their ids.
type ScoreFunc func(srcDocID, canonicalID string) int

// MinCost builds a cost matrix (cost = 100 - score per pair) and
// solves it with HungarianMinCost, emitting a match for each solved
// pair whose implied score is > 0.
func MinCost(sourceIDs, canonicalIDs []string, score ScoreFunc) map[string]entity.Match {
	m := len(sourceIDs)
	n := len(canonicalIDs)
	if m == 0 || n == 0 {
		return nil
	}
	cost := make([][]float64, m)
	for i, srcID := range sourceIDs {
		cost[i] = make([]float64, n)
		for j, canID := range canonicalIDs {
			cost[i][j] = 100 - float64(score(srcID, canID))
		}
	}

	assignment := HungarianMinCost(cost)
	out := make(map[string]entity.Match)
	for i, j := range assignment {
		if j < 0 {
			continue
		}
		impliedScore := 100 - cost[i][j]
		if impliedScore <= 0 {
			continue
		}
		out[sourceIDs[i]] = entity.Match{
			DocID:       sourceIDs[i],
			CanonicalID: canonicalIDs[j],
			Score:       impliedScore,
			Reason:      "min-cost-assignment",
		}
	}
	return out
}
