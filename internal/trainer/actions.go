package trainer

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/raysh454/phishlens/internal/logging"
)

// Flags are the phishlens-trainer command line flags.
func Flags() []cli.Flag {
	d := DefaultOptions()
	return []cli.Flag{
		&cli.StringFlag{Name: "dataset", Aliases: []string{"d"}, Value: d.DatasetPath, Usage: "labeled CSV dataset"},
		&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: d.OutDir, Usage: "directory for the model artifacts"},
		&cli.IntFlag{Name: "trees", Value: d.NEstimators, Usage: "number of trees"},
		&cli.IntFlag{Name: "max-depth", Value: d.MaxDepth, Usage: "maximum tree depth (0 = unlimited)"},
		&cli.Int64Flag{Name: "seed", Value: d.Seed, Usage: "random seed for the split and the forest"},
		&cli.Float64Flag{Name: "test-ratio", Value: d.TestRatio, Usage: "held-out fraction"},
		&cli.IntFlag{Name: "workers", Usage: "trees fitted in parallel (0 = GOMAXPROCS)"},
		&cli.StringFlag{Name: "log-level", Value: "info", Usage: "debug, info, warn or error"},
	}
}

// TrainAction runs one training pass from the parsed flags and prints the
// held-out metrics.
func TrainAction(c *cli.Context) error {
	opts := Options{
		DatasetPath: c.String("dataset"),
		OutDir:      c.String("out"),
		NEstimators: c.Int("trees"),
		MaxDepth:    c.Int("max-depth"),
		Seed:        c.Int64("seed"),
		TestRatio:   c.Float64("test-ratio"),
		Workers:     c.Int("workers"),
	}
	logger := logging.NewWriterLogger(os.Stderr, "trainer", c.String("log-level"))

	rep, err := Run(c.Context, opts, logger)
	if err != nil {
		return fmt.Errorf("training failed: %w", err)
	}

	m := rep.Sidecar.Metrics
	out := c.App.Writer
	fmt.Fprintf(out, "Trained %d trees on %d rows, evaluated on %d rows\n",
		rep.Sidecar.NEstimators, rep.Sidecar.TrainRows, rep.Sidecar.TestRows)
	fmt.Fprintf(out, "  accuracy  %.4f\n  precision %.4f\n  recall    %.4f\n  f1        %.4f\n",
		m.Accuracy, m.Precision, m.Recall, m.F1)
	fmt.Fprintf(out, "Model saved to %s and %s\n", rep.ModelPath, rep.SidecarPath)
	return nil
}
