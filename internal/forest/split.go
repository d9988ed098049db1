package forest

import (
	"math"
	"math/rand"
	"sort"
)

// StratifiedSplit partitions row indices into train and test sets so each
// label keeps roughly its share in both. Every label with at least two rows
// lands in both sets. The result is deterministic for a given seed.
func StratifiedSplit(y []string, testRatio float64, seed int64) (train, test []int) {
	byLabel := map[string][]int{}
	for i, lab := range y {
		byLabel[lab] = append(byLabel[lab], i)
	}
	labels := make([]string, 0, len(byLabel))
	for lab := range byLabel {
		labels = append(labels, lab)
	}
	sort.Strings(labels)

	rnd := rand.New(rand.NewSource(seed))
	for _, lab := range labels {
		idx := byLabel[lab]
		rnd.Shuffle(len(idx), func(a, b int) { idx[a], idx[b] = idx[b], idx[a] })

		nTest := int(math.Round(float64(len(idx)) * testRatio))
		if len(idx) >= 2 {
			nTest = min(max(nTest, 1), len(idx)-1)
		} else {
			nTest = 0
		}
		test = append(test, idx[:nTest]...)
		train = append(train, idx[nTest:]...)
	}
	sort.Ints(train)
	sort.Ints(test)
	return train, test
}

// Rows selects rows of X and y by index.
func Rows(X [][]float64, y []string, idx []int) ([][]float64, []string) {
	xs := make([][]float64, len(idx))
	ys := make([]string, len(idx))
	for i, j := range idx {
		xs[i] = X[j]
		ys[i] = y[j]
	}
	return xs, ys
}
