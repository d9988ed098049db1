package trainer_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/raysh454/phishlens/internal/classifier"
	"github.com/raysh454/phishlens/internal/features"
	"github.com/raysh454/phishlens/internal/testutil"
	"github.com/raysh454/phishlens/internal/trainer"
)

// separableDataset writes 20 legitimate and 20 phishing rows that every
// column separates on its own.
func separableDataset(t *testing.T) string {
	t.Helper()
	cols := []string{features.ColLengthURL, features.ColNbDots, features.ColNbHyphens}
	var rows []testutil.DatasetRow
	for i := 0; i < 20; i++ {
		rows = append(rows,
			testutil.DatasetRow{
				URL:    fmt.Sprintf("http://site%d.com", i),
				Values: []float64{float64(10 + i), float64(1 + i%2), 0},
				Status: "legitimate",
			},
			testutil.DatasetRow{
				URL:    fmt.Sprintf("http://login-%d.secure.account.example.xyz/verify", i),
				Values: []float64{float64(80 + i), float64(4 + i%3), float64(2 + i%2)},
				Status: "phishing",
			},
		)
	}
	return testutil.WriteDatasetCSV(t, cols, rows)
}

func TestRun_WritesBothArtifacts(t *testing.T) {
	t.Parallel()
	opts := trainer.DefaultOptions()
	opts.DatasetPath = separableDataset(t)
	opts.OutDir = t.TempDir()
	opts.NEstimators = 10

	rep, err := trainer.Run(context.Background(), opts, &testutil.DummyLogger{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	for _, p := range []string{rep.ModelPath, rep.SidecarPath} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("artifact %s: %v", p, err)
		}
	}
	if rep.Sidecar.TrainRows != 32 || rep.Sidecar.TestRows != 8 {
		t.Errorf("expected 32/8 split, got %d/%d", rep.Sidecar.TrainRows, rep.Sidecar.TestRows)
	}
	if rep.Sidecar.Metrics.Accuracy < 0.9 {
		t.Errorf("accuracy too low on separable data: %v", rep.Sidecar.Metrics.Accuracy)
	}

	sc, err := trainer.ReadSidecar(rep.SidecarPath)
	if err != nil {
		t.Fatalf("ReadSidecar: %v", err)
	}
	if len(sc.Columns) != 3 || sc.Columns[0] != features.ColLengthURL {
		t.Errorf("unexpected sidecar columns: %v", sc.Columns)
	}
	sum := 0.0
	for _, fi := range sc.Importances {
		if fi.Importance < 0 {
			t.Errorf("negative importance for %s", fi.Feature)
		}
		sum += fi.Importance
	}
	if sum < 0.999 || sum > 1.001 {
		t.Errorf("importances should sum to 1, got %v", sum)
	}

	clf, err := classifier.LoadFile(rep.ModelPath)
	if err != nil {
		t.Fatalf("classifier.LoadFile: %v", err)
	}
	if clf.ExpectedWidth() != 3 {
		t.Errorf("expected width 3, got %d", clf.ExpectedWidth())
	}
}

func TestRun_InvalidOptions(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name   string
		mutate func(*trainer.Options)
	}{
		{"ratio zero", func(o *trainer.Options) { o.TestRatio = 0 }},
		{"ratio one", func(o *trainer.Options) { o.TestRatio = 1 }},
		{"no trees", func(o *trainer.Options) { o.NEstimators = 0 }},
		{"missing dataset", func(o *trainer.Options) { o.DatasetPath = "does-not-exist.csv" }},
	}
	for _, tc := range cases {
		opts := trainer.DefaultOptions()
		opts.OutDir = t.TempDir()
		tc.mutate(&opts)
		if _, err := trainer.Run(context.Background(), opts, &testutil.DummyLogger{}); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
}
