// Command phishlens checks URLs against the trained phishing model, from the
// command line or through a small web page and JSON API.
//
//	phishlens check https://example.com
//	phishlens serve --listen :8080
package main

import (
	"fmt"
	"os"

	"github.com/raysh454/phishlens/internal/cli"
)

func main() {
	if err := cli.NewApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
