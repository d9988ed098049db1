// Package explain compares an extracted feature vector against the
// class-conditional means of the training data.
package explain

import (
	"fmt"
	"math"

	"github.com/raysh454/phishlens/internal/dataset"
	"github.com/raysh454/phishlens/internal/features"
	"github.com/raysh454/phishlens/internal/model"
)

const (
	// Compared is how many leading schema columns are explained.
	Compared = 30

	// Surfaced is how many explanations are shown to the user.
	Surfaced = 10
)

// Explain builds one line for each of the first n columns (capped at the
// vector width). A column is closer to phishing only when its distance to the
// phishing mean is strictly smaller; ties go to legitimate.
func Explain(schema *features.Schema, vec features.Vector, means *dataset.ClassMeans, n int) ([]model.Explanation, error) {
	if err := features.Validate(vec, schema.Len()); err != nil {
		return nil, err
	}
	if len(means.Legitimate) != len(vec) || len(means.Phishing) != len(vec) {
		return nil, fmt.Errorf("%w: class means have %d/%d columns, vector has %d",
			features.ErrSchemaMismatch, len(means.Legitimate), len(means.Phishing), len(vec))
	}
	if n > len(vec) {
		n = len(vec)
	}

	out := make([]model.Explanation, 0, n)
	for i := 0; i < n; i++ {
		v := vec[i]
		e := model.Explanation{Feature: schema.Column(i), Value: v}
		if math.Abs(v-means.Phishing[i]) < math.Abs(v-means.Legitimate[i]) {
			e.CloserTo = model.VerdictPhishing
			e.Mean = means.Phishing[i]
		} else {
			e.CloserTo = model.VerdictLegitimate
			e.Mean = means.Legitimate[i]
		}
		e.Text = fmt.Sprintf("%s = %.2f is closer to %s (mean: %.2f)", e.Feature, v, e.CloserTo, e.Mean)
		out = append(out, e)
	}
	return out, nil
}

// Surface runs Explain over the first Compared columns and keeps the first
// Surfaced lines.
func Surface(schema *features.Schema, vec features.Vector, means *dataset.ClassMeans) ([]model.Explanation, error) {
	all, err := Explain(schema, vec, means, Compared)
	if err != nil {
		return nil, err
	}
	if len(all) > Surfaced {
		all = all[:Surfaced]
	}
	return all, nil
}
