package forest

import (
	"errors"
	"math/rand"
	"sort"
)

// Node is one node of a fitted tree, stored flat so trees gob-encode cheaply.
// Left and Right are indices into Tree.Nodes; -1 marks a leaf.
type Node struct {
	Feature   int
	Threshold float64 // x <= Threshold goes left
	Left      int
	Right     int
	Samples   int
	Impurity  float64
	Probas    []float64 // class distribution, aligned with the forest's classes
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool { return n.Left < 0 }

// Tree is a CART classification tree using the gini criterion.
type Tree struct {
	Nodes []Node

	// Importances holds the raw (unnormalized) impurity decrease per feature.
	Importances []float64
}

type treeParams struct {
	maxDepth        int
	minSamplesSplit int
	minSamplesLeaf  int
	maxFeatures     int
	nClasses        int
}

type treeBuilder struct {
	X      [][]float64
	y      []int
	params treeParams
	rnd    *rand.Rand
	tree   *Tree
}

// fitTree grows a tree on the rows named by idx (duplicates allowed, as produced
// by bootstrap sampling).
func fitTree(X [][]float64, y []int, idx []int, p treeParams, rnd *rand.Rand) (*Tree, error) {
	if len(idx) == 0 {
		return nil, errors.New("forest: no samples for tree")
	}
	nFeatures := len(X[idx[0]])
	b := &treeBuilder{
		X:      X,
		y:      y,
		params: p,
		rnd:    rnd,
		tree:   &Tree{Importances: make([]float64, nFeatures)},
	}
	b.build(append([]int(nil), idx...), 0)
	return b.tree, nil
}

func (b *treeBuilder) counts(idx []int) []int {
	c := make([]int, b.params.nClasses)
	for _, i := range idx {
		c[b.y[i]]++
	}
	return c
}

// build appends the subtree for idx and returns its node index.
func (b *treeBuilder) build(idx []int, depth int) int {
	counts := b.counts(idx)
	imp := gini(counts, len(idx))

	nodeID := len(b.tree.Nodes)
	b.tree.Nodes = append(b.tree.Nodes, Node{
		Feature:  -1,
		Left:     -1,
		Right:    -1,
		Samples:  len(idx),
		Impurity: imp,
		Probas:   countsToProbas(counts),
	})

	if imp == 0 || len(idx) < b.params.minSamplesSplit ||
		(b.params.maxDepth > 0 && depth >= b.params.maxDepth) {
		return nodeID
	}

	best, ok := b.bestSplit(idx, counts, imp)
	if !ok {
		return nodeID
	}

	left := make([]int, 0, best.nLeft)
	right := make([]int, 0, len(idx)-best.nLeft)
	for _, i := range idx {
		if b.X[i][best.feature] <= best.threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	b.tree.Importances[best.feature] += float64(len(idx))*imp -
		float64(len(left))*best.impLeft - float64(len(right))*best.impRight

	l := b.build(left, depth+1)
	r := b.build(right, depth+1)

	n := &b.tree.Nodes[nodeID]
	n.Feature = best.feature
	n.Threshold = best.threshold
	n.Left = l
	n.Right = r
	return nodeID
}

type split struct {
	feature   int
	threshold float64
	nLeft     int
	impLeft   float64
	impRight  float64
	weighted  float64
}

// bestSplit scans up to maxFeatures random non-constant features and returns the split with the
// lowest weighted child impurity that improves on the parent.
func (b *treeBuilder) bestSplit(idx []int, parentCounts []int, parentImp float64) (split, bool) {
	nFeatures := len(b.X[idx[0]])
	features := b.rnd.Perm(nFeatures)
	limit := b.params.maxFeatures
	if limit <= 0 || limit > nFeatures {
		limit = nFeatures
	}

	n := len(idx)
	best := split{weighted: parentImp * float64(n)}
	found := false

	sorted := make([]int, n)
	left := make([]int, b.params.nClasses)
	right := make([]int, b.params.nClasses)

	visited := 0
	for _, f := range features {
		if visited >= limit {
			break
		}
		copy(sorted, idx)
		sort.Slice(sorted, func(a, c int) bool { return b.X[sorted[a]][f] < b.X[sorted[c]][f] })
		// Constant features do not count toward the sampling limit.
		if b.X[sorted[0]][f] == b.X[sorted[n-1]][f] {
			continue
		}
		visited++

		for k := range left {
			left[k] = 0
		}
		copy(right, parentCounts)

		for s := 1; s < n; s++ {
			cls := b.y[sorted[s-1]]
			left[cls]++
			right[cls]--

			lo, hi := b.X[sorted[s-1]][f], b.X[sorted[s]][f]
			if lo == hi {
				continue
			}
			if s < b.params.minSamplesLeaf || n-s < b.params.minSamplesLeaf {
				continue
			}
			il := gini(left, s)
			ir := gini(right, n-s)
			w := float64(s)*il + float64(n-s)*ir
			if w < best.weighted-1e-12 {
				thr := lo + (hi-lo)/2
				if thr == hi {
					thr = lo
				}
				best = split{feature: f, threshold: thr, nLeft: s, impLeft: il, impRight: ir, weighted: w}
				found = true
			}
		}
	}
	return best, found
}

// predictProba walks the tree for a single row.
func (t *Tree) predictProba(x []float64) []float64 {
	i := 0
	for {
		n := &t.Nodes[i]
		if n.IsLeaf() {
			return n.Probas
		}
		if x[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

// Depth returns the maximum depth of the tree (a lone root has depth 0).
func (t *Tree) Depth() int {
	if len(t.Nodes) == 0 {
		return 0
	}
	var walk func(i int) int
	walk = func(i int) int {
		n := &t.Nodes[i]
		if n.IsLeaf() {
			return 0
		}
		return 1 + max(walk(n.Left), walk(n.Right))
	}
	return walk(0)
}

// ---------------------------
// Utilities: impurity & misc
// ---------------------------

func gini(counts []int, n int) float64 {
	if n == 0 {
		return 0
	}
	res := 1.0
	for _, c := range counts {
		p := float64(c) / float64(n)
		res -= p * p
	}
	return res
}

func countsToProbas(counts []int) []float64 {
	n := 0
	for _, c := range counts {
		n += c
	}
	p := make([]float64, len(counts))
	if n == 0 {
		return p
	}
	for i := range counts {
		p[i] = float64(counts[i]) / float64(n)
	}
	return p
}

func argmax(arr []float64) int {
	best := 0
	for i := 1; i < len(arr); i++ {
		if arr[i] > arr[best] {
			best = i
		}
	}
	return best
}
