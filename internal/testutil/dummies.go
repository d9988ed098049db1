// Package testutil provides shared test doubles and fixtures for package tests.
// Dummies record what they were asked to do and never touch the network.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/raysh454/phishlens/internal/logging"
)

// ─── Logger ────────────────────────────────────────────────────────────

// DummyLogger implements logging.Logger with in-memory recording.
type DummyLogger struct {
	mu     sync.Mutex
	Errors []string
	Infos  []string
	Debugs []string
	Warns  []string
}

func (l *DummyLogger) Debug(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Debugs = append(l.Debugs, msg)
}

func (l *DummyLogger) Info(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Infos = append(l.Infos, msg)
}

func (l *DummyLogger) Warn(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Warns = append(l.Warns, msg)
}

func (l *DummyLogger) Error(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Errors = append(l.Errors, msg)
}

func (l *DummyLogger) With(_ ...logging.Field) logging.Logger { return l }

// ErrorCount returns how many errors were logged.
func (l *DummyLogger) ErrorCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.Errors)
}

// ─── Predictor ─────────────────────────────────────────────────────────

// DummyPredictor implements classifier.Predictor. It always answers Label
// (or Err) and reports Importances verbatim.
type DummyPredictor struct {
	Label       string
	Err         error
	Importances []float64

	mu    sync.Mutex
	calls int
}

func (p *DummyPredictor) Predict(_ []float64) (string, error) {
	p.mu.Lock()
	p.calls++
	p.mu.Unlock()
	if p.Err != nil {
		return "", p.Err
	}
	return p.Label, nil
}

func (p *DummyPredictor) FeatureImportances() []float64 {
	return append([]float64(nil), p.Importances...)
}

// Calls returns how many times Predict ran.
func (p *DummyPredictor) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

// ─── Fixtures ──────────────────────────────────────────────────────────

// DatasetRow is one labeled row for WriteDatasetCSV.
type DatasetRow struct {
	URL    string
	Values []float64
	Status string
}

// WriteDatasetCSV writes a dataset file with header url,<columns...>,status
// under t.TempDir and returns its path.
func WriteDatasetCSV(t *testing.T, columns []string, rows []DatasetRow) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("url," + strings.Join(columns, ",") + ",status\n")
	for _, r := range rows {
		cells := make([]string, len(r.Values))
		for i, v := range r.Values {
			cells[i] = fmt.Sprintf("%g", v)
		}
		fmt.Fprintf(&b, "%q,%s,%s\n", r.URL, strings.Join(cells, ","), r.Status)
	}
	return WriteFile(t, "dataset.csv", b.String())
}

// WriteFile writes content to name under a fresh t.TempDir and returns the path.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}
