package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/raysh454/phishlens/internal/app"
	"github.com/raysh454/phishlens/internal/logging"
	"github.com/raysh454/phishlens/internal/model"
	"github.com/raysh454/phishlens/internal/server"
)

// loadApplication resolves config from the global flags and loads every
// startup artifact. Logs go to stderr so command output stays clean.
func loadApplication(c *cli.Context) (*app.Application, error) {
	cfg, err := app.LoadConfig(c.String("config"))
	if err != nil {
		return nil, err
	}
	if lvl := c.String("log-level"); lvl != "" {
		cfg.LogLevel = lvl
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	logger := logging.NewWriterLogger(os.Stderr, "phishlens", cfg.LogLevel)
	a, err := app.NewApplication(c.Context, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to start: %w", err)
	}
	return a, nil
}

// ServeAction runs the HTTP server until SIGINT or SIGTERM.
func ServeAction(c *cli.Context) error {
	a, err := loadApplication(c)
	if err != nil {
		return err
	}
	defer a.Close()

	addr := a.Config.ListenAddr
	if l := c.String("listen"); l != "" {
		addr = l
	}

	srv, err := server.NewServer(server.Config{
		ListenAddr:    addr,
		AllowedOrigin: a.Config.AllowedOrigin,
		Logger:        a.Logger.With(logging.Field{Key: "component", Value: "server"}),
	}, a)
	if err != nil {
		return err
	}
	httpSrv := srv.HTTPServer()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("listening", logging.Field{Key: "addr", Value: addr})
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	a.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}

// CheckAction checks every URL argument and prints the verdicts.
func CheckAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.Exit("usage: phishlens check <url> [url...]", 2)
	}
	a, err := loadApplication(c)
	if err != nil {
		return err
	}
	defer a.Close()

	out := c.App.Writer
	asJSON := c.Bool("json")
	for _, raw := range c.Args().Slice() {
		res, err := a.Check(c.Context, raw)
		if err != nil {
			return fmt.Errorf("%s: %w", raw, err)
		}
		if asJSON {
			if err := json.NewEncoder(out).Encode(res); err != nil {
				return err
			}
			continue
		}
		PrintResult(out, res)
	}
	return nil
}

// HistoryAction prints the most recent checks, newest first.
func HistoryAction(c *cli.Context) error {
	a, err := loadApplication(c)
	if err != nil {
		return err
	}
	defer a.Close()

	entries, err := a.History(c.Context, c.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to list history: %w", err)
	}

	out := c.App.Writer
	if len(entries) == 0 {
		fmt.Fprintln(out, "No checks recorded")
		return nil
	}

	fmt.Fprintf(out, "%-36s %-20s %-24s %s\n", "ID", "Checked", "Verdict", "URL")
	fmt.Fprintln(out, strings.Repeat("-", 110))
	for _, e := range entries {
		fmt.Fprintf(out, "%-36s %-20s %-24s %s\n",
			e.ID,
			e.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			e.Verdict,
			e.URL,
		)
	}
	fmt.Fprintf(out, "\nTotal: %d checks\n", len(entries))
	return nil
}

// PrintResult writes the text rendering of one check.
func PrintResult(w io.Writer, res *model.CheckResult) {
	fmt.Fprintf(w, "URL:     %s\n", res.URL)
	switch res.Verdict {
	case model.VerdictTrusted:
		fmt.Fprintln(w, "Verdict: trusted site (on the known-URL list, not classified)")
		return
	case model.VerdictSchemaMismatch:
		fmt.Fprintf(w, "Verdict: feature count mismatch (%s)\n", res.Error)
		return
	case model.VerdictPhishing:
		fmt.Fprintln(w, "Verdict: PHISHING suspected")
	default:
		fmt.Fprintln(w, "Verdict: looks legitimate")
	}
	if res.UnicodeHost != "" {
		fmt.Fprintf(w, "Host:    %s (%s)\n", res.Host, res.UnicodeHost)
	}

	if len(res.Explanations) > 0 {
		fmt.Fprintln(w, "\nWhy:")
		for _, e := range res.Explanations {
			fmt.Fprintf(w, "  - %s\n", e.Text)
		}
	}
	if len(res.Importances) > 0 {
		fmt.Fprintln(w, "\nTop feature importances:")
		for i, fi := range res.Importances {
			fmt.Fprintf(w, "  %2d. %-22s %.4f\n", i+1, fi.Feature, fi.Importance)
		}
	}
	fmt.Fprintln(w)
}
