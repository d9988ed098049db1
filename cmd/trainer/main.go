// Command trainer fits the phishing random forest from a labeled CSV and
// writes phishing_model.gob plus its JSON sidecar.
//
//	go run ./cmd/trainer --dataset dataset_phishing.csv --out .
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/raysh454/phishlens/internal/trainer"
)

func main() {
	app := &cli.App{
		Name:   "phishlens-trainer",
		Usage:  "train the phishing URL classifier",
		Flags:  trainer.Flags(),
		Action: trainer.TrainAction,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
