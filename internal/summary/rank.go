package summary

import "math"

const (
	dampingFactor = 0.85
	maxIterations = 100
	convergence   = 1e-6
)

// RankResult holds the TextRank scores of every node.
type RankResult struct {
	Scores     []float64
	Iterations int
	Converged  bool
}

// Rank runs TextRank over g. Scores start at 1.0 and are updated synchronously
// until every delta is within 1e-6 or the iteration cap is reached.
func Rank(g *Graph) RankResult {
	n := g.Len()
	if n == 0 {
		return RankResult{Converged: true}
	}

	// 孤立ノードの出次数は 1.0 として扱う（ゼロ除算回避）
	outWeight := make([]float64, n)
	for i := 0; i < n; i++ {
		for _, e := range g.Neighbors(i) {
			outWeight[i] += e.Weight
		}
		if outWeight[i] == 0 {
			outWeight[i] = 1.0
		}
	}

	scores := make([]float64, n)
	next := make([]float64, n)
	for i := range scores {
		scores[i] = 1.0
	}

	result := RankResult{}
	for iter := 0; iter < maxIterations; iter++ {
		// 前回のスコアだけを読み、next に書いてから入れ替える
		maxDelta := 0.0
		for i := 0; i < n; i++ {
			sum := 0.0
			for _, e := range g.Neighbors(i) {
				sum += scores[e.To] * e.Weight / outWeight[e.To]
			}
			next[i] = (1 - dampingFactor) + dampingFactor*sum
			if d := math.Abs(next[i] - scores[i]); d > maxDelta {
				maxDelta = d
			}
		}
		scores, next = next, scores
		result.Iterations = iter + 1
		if maxDelta <= convergence {
			result.Converged = true
			break
		}
	}

	result.Scores = scores
	return result
}
