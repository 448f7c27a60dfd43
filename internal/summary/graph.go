package summary

// 類似度がこの値以下のペアはエッジを張らない
const minSimilarity = 0.1

// Edge is a weighted link to a neighbour sentence.
type Edge struct {
	To     int
	Weight float64
}

// Graph is a sparse, symmetric sentence similarity graph.
// Neighbour lists are sorted by node index.
type Graph struct {
	edges [][]Edge
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.edges)
}

// Neighbors returns the edges of node i.
func (g *Graph) Neighbors(i int) []Edge {
	return g.edges[i]
}

// Weight returns the similarity between i and j, or 0 when no edge exists.
func (g *Graph) Weight(i, j int) float64 {
	for _, e := range g.edges[i] {
		if e.To == j {
			return e.Weight
		}
		if e.To > j {
			break
		}
	}
	return 0
}

// EdgeCount returns the number of undirected edges.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, es := range g.edges {
		n += len(es)
	}
	return n / 2
}

// BuildGraph computes pairwise similarities and keeps the edges above the threshold.
func BuildGraph(sentences []Sentence) *Graph {
	g := &Graph{edges: make([][]Edge, len(sentences))}
	for i := range sentences {
		for j := i + 1; j < len(sentences); j++ {
			w := Similarity(sentences[i].Tokens, sentences[j].Tokens)
			if w <= minSimilarity {
				continue
			}
			// i の昇順に外側ループを回すので各リストは To の昇順になる
			g.edges[i] = append(g.edges[i], Edge{To: j, Weight: w})
			g.edges[j] = append(g.edges[j], Edge{To: i, Weight: w})
		}
	}
	return g
}

// Similarity is the Jaccard index of a and b weighted by how balanced the set sizes are.
func Similarity(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	small, large := a, b
	if len(small) > len(large) {
		small, large = large, small
	}
	inter := 0
	for w := range small {
		if _, ok := large[w]; ok {
			inter++
		}
	}
	if inter == 0 {
		return 0
	}
	union := len(a) + len(b) - inter
	jaccard := float64(inter) / float64(union)
	balance := float64(len(small)) / float64(len(large))
	return jaccard * (0.8 + 0.2*balance)
}
