// Package dataset loads the labeled phishing dataset: a CSV with a url
// column, a status column and one numeric column per feature.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/raysh454/phishlens/internal/features"
	"github.com/raysh454/phishlens/internal/model"
)

var (
	ErrMissingColumn = errors.New("dataset: missing column")
	ErrMissingClass  = errors.New("dataset: class has no rows")
	ErrEmpty         = errors.New("dataset: no rows")
)

// Dataset is the fully loaded training table.
type Dataset struct {
	Schema *features.Schema
	URLs   []string
	X      [][]float64
	Labels []string
}

// Len returns the number of rows.
func (d *Dataset) Len() int { return len(d.X) }

// LoadFile reads a dataset from a CSV file.
func LoadFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer f.Close()

	d, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Read parses a dataset. The schema is the header minus url and status, in
// header order. Every feature cell must parse as a float; an empty cell is 0.
func Read(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	urlCol, statusCol := -1, -1
	var cols []string
	var featIdx []int
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		switch h {
		case features.ColURL:
			urlCol = i
		case features.ColStatus:
			statusCol = i
		default:
			cols = append(cols, h)
			featIdx = append(featIdx, i)
		}
	}
	if urlCol < 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, features.ColURL)
	}
	if statusCol < 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, features.ColStatus)
	}

	schema, err := features.NewSchema(cols)
	if err != nil {
		return nil, fmt.Errorf("building schema: %w", err)
	}

	d := &Dataset{Schema: schema}
	line := 1
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		row := make([]float64, len(featIdx))
		for j, ci := range featIdx {
			cell := strings.TrimSpace(rec[ci])
			if cell == "" {
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d column %q: %w", line, cols[j], err)
			}
			row[j] = v
		}

		d.URLs = append(d.URLs, rec[urlCol])
		d.Labels = append(d.Labels, strings.TrimSpace(rec[statusCol]))
		d.X = append(d.X, row)
	}

	if len(d.X) == 0 {
		return nil, ErrEmpty
	}
	return d, nil
}

// ClassMeans holds the per-column mean over each class's rows, aligned with
// the dataset schema.
type ClassMeans struct {
	Legitimate features.Vector
	Phishing   features.Vector
}

// ClassMeans averages every column separately over legitimate and phishing rows.
// Rows with any other status are ignored.
func (d *Dataset) ClassMeans() (*ClassMeans, error) {
	width := d.Schema.Len()
	legit := make(features.Vector, width)
	phish := make(features.Vector, width)
	var nLegit, nPhish int

	for i, row := range d.X {
		var acc features.Vector
		switch d.Labels[i] {
		case model.LabelLegitimate:
			acc = legit
			nLegit++
		case model.LabelPhishing:
			acc = phish
			nPhish++
		default:
			continue
		}
		for j, v := range row {
			acc[j] += v
		}
	}

	if nLegit == 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingClass, model.LabelLegitimate)
	}
	if nPhish == 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingClass, model.LabelPhishing)
	}
	for j := 0; j < width; j++ {
		legit[j] /= float64(nLegit)
		phish[j] /= float64(nPhish)
	}
	return &ClassMeans{Legitimate: legit, Phishing: phish}, nil
}

// ClassCounts returns how many rows carry each status value.
func (d *Dataset) ClassCounts() map[string]int {
	out := map[string]int{}
	for _, l := range d.Labels {
		out[l]++
	}
	return out
}
