// Package trainer fits the phishing random forest from the labeled dataset
// and writes the model artifacts the runtime loads.
package trainer

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/raysh454/phishlens/internal/dataset"
	"github.com/raysh454/phishlens/internal/features"
	"github.com/raysh454/phishlens/internal/forest"
	"github.com/raysh454/phishlens/internal/logging"
	"github.com/raysh454/phishlens/internal/model"
)

// Artifact names written to Options.OutDir.
const (
	ModelFile   = "phishing_model.gob"
	SidecarFile = "phishing_model.json"
)

// Options control one training run.
type Options struct {
	DatasetPath string
	OutDir      string

	NEstimators int
	MaxDepth    int
	Seed        int64
	TestRatio   float64
	Workers     int
}

// DefaultOptions returns the settings of the reference model: 200 trees,
// unlimited depth, an 80/20 split and seed 42.
func DefaultOptions() Options {
	return Options{
		DatasetPath: "dataset_phishing.csv",
		OutDir:      ".",
		NEstimators: 200,
		Seed:        42,
		TestRatio:   0.2,
	}
}

// Sidecar is the JSON description written next to the model.
type Sidecar struct {
	Columns     []string                  `json:"columns"`
	Classes     []string                  `json:"classes"`
	NEstimators int                       `json:"n_estimators"`
	Seed        int64                     `json:"seed"`
	TrainRows   int                       `json:"train_rows"`
	TestRows    int                       `json:"test_rows"`
	Metrics     forest.Metrics            `json:"metrics"`
	Importances []model.FeatureImportance `json:"importances"`
	TrainedAt   time.Time                 `json:"trained_at"`
}

// Report summarizes a finished run.
type Report struct {
	ModelPath   string
	SidecarPath string
	Sidecar     Sidecar
}

// Run loads the dataset, splits it, fits the forest, evaluates it on the
// held-out rows and writes both artifacts.
func Run(ctx context.Context, opts Options, logger logging.Logger) (*Report, error) {
	if opts.TestRatio <= 0 || opts.TestRatio >= 1 {
		return nil, fmt.Errorf("test ratio must be in (0,1), got %v", opts.TestRatio)
	}
	if opts.NEstimators <= 0 {
		return nil, fmt.Errorf("n estimators must be positive, got %d", opts.NEstimators)
	}

	d, err := dataset.LoadFile(opts.DatasetPath)
	if err != nil {
		return nil, err
	}
	logger.Info("dataset loaded",
		logging.Field{Key: "rows", Value: d.Len()},
		logging.Field{Key: "columns", Value: d.Schema.Len()},
		logging.Field{Key: "classes", Value: d.ClassCounts()})

	trainIdx, testIdx := forest.StratifiedSplit(d.Labels, opts.TestRatio, opts.Seed)
	if len(trainIdx) == 0 || len(testIdx) == 0 {
		return nil, fmt.Errorf("split left %d train and %d test rows", len(trainIdx), len(testIdx))
	}
	Xtr, ytr := forest.Rows(d.X, d.Labels, trainIdx)
	Xte, yte := forest.Rows(d.X, d.Labels, testIdx)

	f := forest.New(
		forest.WithNEstimators(opts.NEstimators),
		forest.WithMaxDepth(opts.MaxDepth),
		forest.WithRandomState(opts.Seed),
		forest.WithWorkers(opts.Workers),
	)
	start := time.Now()
	if err := f.Fit(ctx, Xtr, ytr); err != nil {
		return nil, fmt.Errorf("fitting forest: %w", err)
	}
	logger.Info("forest fitted",
		logging.Field{Key: "trees", Value: len(f.Trees)},
		logging.Field{Key: "elapsed", Value: time.Since(start).String()})

	pred, err := f.PredictBatch(Xte)
	if err != nil {
		return nil, fmt.Errorf("evaluating: %w", err)
	}
	metrics := forest.Evaluate(yte, pred, model.LabelPhishing)

	imps := f.FeatureImportances()
	ranked := make([]model.FeatureImportance, len(imps))
	for i, v := range imps {
		name := d.Schema.Column(i)
		ranked[i] = model.FeatureImportance{Feature: name, Importance: v, Description: features.DescribeFeature(name)}
	}

	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}
	rep := &Report{
		ModelPath:   filepath.Join(opts.OutDir, ModelFile),
		SidecarPath: filepath.Join(opts.OutDir, SidecarFile),
		Sidecar: Sidecar{
			Columns:     d.Schema.Columns(),
			Classes:     append([]string(nil), f.Classes...),
			NEstimators: opts.NEstimators,
			Seed:        opts.Seed,
			TrainRows:   len(trainIdx),
			TestRows:    len(testIdx),
			Metrics:     metrics,
			Importances: ranked,
			TrainedAt:   time.Now().UTC(),
		},
	}

	if err := f.SaveFile(rep.ModelPath); err != nil {
		return nil, fmt.Errorf("saving model: %w", err)
	}
	if err := writeSidecar(rep.SidecarPath, &rep.Sidecar); err != nil {
		return nil, err
	}
	logger.Info("artifacts written",
		logging.Field{Key: "model", Value: rep.ModelPath},
		logging.Field{Key: "sidecar", Value: rep.SidecarPath},
		logging.Field{Key: "accuracy", Value: metrics.Accuracy})
	return rep, nil
}

func writeSidecar(path string, sc *Sidecar) error {
	data, err := json.MarshalIndent(sc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding sidecar: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing sidecar: %w", err)
	}
	return nil
}

// ReadSidecar loads a sidecar written by Run.
func ReadSidecar(path string) (*Sidecar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading sidecar: %w", err)
	}
	var sc Sidecar
	if err := json.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("decoding sidecar: %w", err)
	}
	return &sc, nil
}
