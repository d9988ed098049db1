package forest

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
)

var (
	// ErrNotTrained is returned when predicting with a forest that has no trees.
	ErrNotTrained = errors.New("forest: model not trained")

	// ErrWidth is returned when a row does not have NFeatures values.
	ErrWidth = errors.New("forest: wrong number of features")
)

// Forest is a bagged ensemble of CART trees for classification. Once fitted
// (or loaded) it is read-only and safe for concurrent prediction.
type Forest struct {
	// Hyperparameters / options
	NEstimators     int
	MaxDepth        int // 0 => unlimited
	MinSamplesSplit int
	MinSamplesLeaf  int
	MaxFeatures     int // 0 => sqrt(n_features), <0 => all features
	Bootstrap       bool
	RandomState     int64
	Workers         int // concurrent tree fits; 0 => GOMAXPROCS

	// Fitted state
	Classes   []string
	NFeatures int
	Trees     []*Tree
}

// Option functional config for Forest.
type Option func(*Forest)

func WithNEstimators(n int) Option     { return func(f *Forest) { f.NEstimators = n } }
func WithMaxDepth(d int) Option        { return func(f *Forest) { f.MaxDepth = d } }
func WithMinSamplesSplit(n int) Option { return func(f *Forest) { f.MinSamplesSplit = n } }
func WithMinSamplesLeaf(n int) Option  { return func(f *Forest) { f.MinSamplesLeaf = n } }
func WithMaxFeatures(k int) Option     { return func(f *Forest) { f.MaxFeatures = k } }
func WithBootstrap(b bool) Option      { return func(f *Forest) { f.Bootstrap = b } }
func WithRandomState(seed int64) Option {
	return func(f *Forest) { f.RandomState = seed }
}
func WithWorkers(n int) Option { return func(f *Forest) { f.Workers = n } }

// New returns an untrained forest with defaults matching a stock random
// forest classifier: 100 trees, sqrt feature sampling, bootstrap.
func New(opts ...Option) *Forest {
	f := &Forest{
		NEstimators:     100,
		MinSamplesSplit: 2,
		MinSamplesLeaf:  1,
		Bootstrap:       true,
		RandomState:     42,
	}
	for _, o := range opts {
		o(f)
	}
	return f
}

// Fit trains the forest on X (n x p) with string labels y. Trees are fitted
// concurrently; the first failing tree cancels the rest.
func (f *Forest) Fit(ctx context.Context, X [][]float64, y []string) error {
	if len(X) == 0 {
		return errors.New("forest: empty X")
	}
	if len(y) != len(X) {
		return errors.New("forest: X and y length mismatch")
	}
	if f.NEstimators <= 0 {
		return fmt.Errorf("forest: NEstimators must be positive, got %d", f.NEstimators)
	}
	p := len(X[0])
	for i := range X {
		if len(X[i]) != p {
			return fmt.Errorf("%w: row %d has %d, want %d", ErrWidth, i, len(X[i]), p)
		}
	}

	classes, yIdx := encodeLabels(y)
	if len(classes) < 2 {
		return fmt.Errorf("forest: need at least 2 classes, got %d", len(classes))
	}

	params := treeParams{
		maxDepth:        f.MaxDepth,
		minSamplesSplit: max(f.MinSamplesSplit, 2),
		minSamplesLeaf:  max(f.MinSamplesLeaf, 1),
		maxFeatures:     resolveMaxFeatures(f.MaxFeatures, p),
		nClasses:        len(classes),
	}

	workers := f.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	trees := make([]*Tree, f.NEstimators)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	n := len(X)
	for i := 0; i < f.NEstimators; i++ {
		idx := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			// Own rand source per tree so results do not depend on scheduling.
			rnd := rand.New(rand.NewSource(f.RandomState + int64(idx)))

			sample := make([]int, n)
			for j := range sample {
				if f.Bootstrap {
					sample[j] = rnd.Intn(n)
				} else {
					sample[j] = j
				}
			}

			t, err := fitTree(X, yIdx, sample, params, rnd)
			if err != nil {
				return fmt.Errorf("tree %d: %w", idx, err)
			}
			trees[idx] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	f.Classes = classes
	f.NFeatures = p
	f.Trees = trees
	return nil
}

// PredictProba returns the class distribution for one row, averaged over
// trees and aligned with f.Classes.
func (f *Forest) PredictProba(x []float64) ([]float64, error) {
	if len(f.Trees) == 0 {
		return nil, ErrNotTrained
	}
	if len(x) != f.NFeatures {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrWidth, len(x), f.NFeatures)
	}
	out := make([]float64, len(f.Classes))
	for _, t := range f.Trees {
		for c, p := range t.predictProba(x) {
			out[c] += p
		}
	}
	for c := range out {
		out[c] /= float64(len(f.Trees))
	}
	return out, nil
}

// Predict returns the most probable class label for one row. Ties go to the
// class listed first in f.Classes.
func (f *Forest) Predict(x []float64) (string, error) {
	proba, err := f.PredictProba(x)
	if err != nil {
		return "", err
	}
	return f.Classes[argmax(proba)], nil
}

// PredictBatch predicts every row of X.
func (f *Forest) PredictBatch(X [][]float64) ([]string, error) {
	out := make([]string, len(X))
	for i, x := range X {
		label, err := f.Predict(x)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out[i] = label
	}
	return out, nil
}

// FeatureImportances returns the mean decrease in impurity per feature:
// each tree's raw decreases are normalized to sum to 1, averaged over trees,
// and normalized again. Values are non-negative and sum to 1 unless no tree
// ever split, in which case all are 0.
func (f *Forest) FeatureImportances() []float64 {
	out := make([]float64, f.NFeatures)
	if len(f.Trees) == 0 {
		return out
	}
	for _, t := range f.Trees {
		total := 0.0
		for _, v := range t.Importances {
			total += v
		}
		if total <= 0 {
			continue
		}
		for j, v := range t.Importances {
			out[j] += v / total
		}
	}
	sum := 0.0
	for j := range out {
		out[j] /= float64(len(f.Trees))
		sum += out[j]
	}
	if sum > 0 {
		for j := range out {
			out[j] /= sum
		}
	}
	return out
}

// encodeLabels maps string labels to dense ints, classes sorted for a stable order.
func encodeLabels(y []string) ([]string, []int) {
	seen := map[string]bool{}
	var classes []string
	for _, lab := range y {
		if !seen[lab] {
			seen[lab] = true
			classes = append(classes, lab)
		}
	}
	sort.Strings(classes)
	index := make(map[string]int, len(classes))
	for i, c := range classes {
		index[c] = i
	}
	out := make([]int, len(y))
	for i, lab := range y {
		out[i] = index[lab]
	}
	return classes, out
}

func resolveMaxFeatures(k, p int) int {
	switch {
	case k < 0:
		return p
	case k == 0:
		return max(1, int(math.Sqrt(float64(p))))
	case k > p:
		return p
	default:
		return k
	}
}
