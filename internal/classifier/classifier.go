// Package classifier adapts a trained ensemble to the verdict vocabulary used
// by the rest of the application.
package classifier

import (
	"fmt"
	"sort"

	"github.com/raysh454/phishlens/internal/features"
	"github.com/raysh454/phishlens/internal/forest"
	"github.com/raysh454/phishlens/internal/model"
)

// Predictor is the part of a fitted model the adapter needs.
// *forest.Forest satisfies it.
type Predictor interface {
	Predict(x []float64) (string, error)
	FeatureImportances() []float64
}

// Classifier labels feature vectors. It is immutable and safe for concurrent use.
type Classifier struct {
	p           Predictor
	width       int
	importances []float64
}

// New wraps p, which expects vectors of exactly width entries.
func New(p Predictor, width int) (*Classifier, error) {
	if p == nil {
		return nil, fmt.Errorf("classifier: predictor is nil")
	}
	imp := p.FeatureImportances()
	if len(imp) != width {
		return nil, fmt.Errorf("classifier: %d importances for width %d", len(imp), width)
	}
	return &Classifier{p: p, width: width, importances: append([]float64(nil), imp...)}, nil
}

// FromForest wraps a fitted forest.
func FromForest(f *forest.Forest) (*Classifier, error) {
	if f == nil || len(f.Trees) == 0 {
		return nil, forest.ErrNotTrained
	}
	return New(f, f.NFeatures)
}

// LoadFile reads a gob-encoded forest from path and wraps it.
func LoadFile(path string) (*Classifier, error) {
	f, err := forest.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return FromForest(f)
}

// ExpectedWidth is the number of features the model was trained on.
func (c *Classifier) ExpectedWidth() int { return c.width }

// Classify returns VerdictPhishing or VerdictLegitimate. A vector of the wrong
// width yields features.ErrSchemaMismatch before the model is consulted.
func (c *Classifier) Classify(vec features.Vector) (model.Verdict, error) {
	if err := features.Validate(vec, c.width); err != nil {
		return "", err
	}
	label, err := c.p.Predict(vec)
	if err != nil {
		return "", fmt.Errorf("predict: %w", err)
	}
	v := model.Verdict(label)
	if !v.IsClassLabel() {
		return "", fmt.Errorf("classifier: unexpected label %q", label)
	}
	return v, nil
}

// Importances returns a copy of the per-column importance scores.
func (c *Classifier) Importances() []float64 {
	return append([]float64(nil), c.importances...)
}

// TopImportances ranks the schema columns by importance, descending, and
// returns at most n. Equal scores keep schema order.
func (c *Classifier) TopImportances(schema *features.Schema, n int) ([]model.FeatureImportance, error) {
	if schema.Len() != c.width {
		return nil, fmt.Errorf("%w: schema has %d columns, model expects %d", features.ErrSchemaMismatch, schema.Len(), c.width)
	}
	out := make([]model.FeatureImportance, c.width)
	for i, imp := range c.importances {
		name := schema.Column(i)
		out[i] = model.FeatureImportance{
			Feature:     name,
			Importance:  imp,
			Description: features.DescribeFeature(name),
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Importance > out[j].Importance })
	if n >= 0 && n < len(out) {
		out = out[:n]
	}
	return out, nil
}
