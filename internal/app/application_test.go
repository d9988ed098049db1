package app_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/raysh454/phishlens/internal/allowlist"
	"github.com/raysh454/phishlens/internal/app"
	"github.com/raysh454/phishlens/internal/classifier"
	"github.com/raysh454/phishlens/internal/dataset"
	"github.com/raysh454/phishlens/internal/features"
	"github.com/raysh454/phishlens/internal/forest"
	"github.com/raysh454/phishlens/internal/history"
	"github.com/raysh454/phishlens/internal/model"
	"github.com/raysh454/phishlens/internal/testutil"
)

type fixture struct {
	app       *app.Application
	predictor *testutil.DummyPredictor
	logger    *testutil.DummyLogger
}

// newFixture assembles an application over the full dataset schema with a
// predictor that always answers label.
func newFixture(t *testing.T, label string, hist *failingHistory) fixture {
	t.Helper()
	schema, err := features.NewSchema(features.DatasetColumns())
	if err != nil {
		t.Fatalf("NewSchema: %v", err)
	}
	width := schema.Len()

	imp := make([]float64, width)
	for i := range imp {
		imp[i] = float64(i + 1)
	}
	p := &testutil.DummyPredictor{Label: label, Importances: imp}
	clf, err := classifier.New(p, width)
	if err != nil {
		t.Fatalf("classifier.New: %v", err)
	}

	c := app.Components{
		Schema:     schema,
		Classifier: clf,
		Allowlist:  allowlist.New("http://paypal.com.secure-login.verify-account.xyz/login"),
		Means: &dataset.ClassMeans{
			Legitimate: make(features.Vector, width),
			Phishing:   make(features.Vector, width),
		},
	}
	if hist != nil {
		c.History = hist
	}

	logger := &testutil.DummyLogger{}
	a, err := app.Assemble(app.DefaultConfig(), c, logger)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	return fixture{app: a, predictor: p, logger: logger}
}

func TestCheck_EmptyInput(t *testing.T) {
	t.Parallel()
	fx := newFixture(t, "phishing", nil)
	for _, in := range []string{"", "   "} {
		if _, err := fx.app.Check(context.Background(), in); !errors.Is(err, app.ErrEmptyURL) {
			t.Errorf("Check(%q): expected ErrEmptyURL, got %v", in, err)
		}
	}
}

func TestCheck_AllowlistShortCircuits(t *testing.T) {
	t.Parallel()
	fx := newFixture(t, "phishing", nil)

	res, err := fx.app.Check(context.Background(), "http://paypal.com.secure-login.verify-account.xyz/login")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if res.Verdict != model.VerdictTrusted {
		t.Errorf("expected trusted, got %s", res.Verdict)
	}
	if fx.predictor.Calls() != 0 {
		t.Error("classifier consulted for an allowlisted URL")
	}
	if len(res.Explanations) != 0 || len(res.Importances) != 0 {
		t.Error("trusted result should carry no explanation or chart")
	}
}

func TestCheck_Classified(t *testing.T) {
	t.Parallel()
	fx := newFixture(t, "phishing", nil)

	res, err := fx.app.Check(context.Background(), "http://192.168.1.1/login?a=1&b=2")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if res.Verdict != model.VerdictPhishing {
		t.Fatalf("expected phishing, got %s", res.Verdict)
	}
	if res.Host != "192.168.1.1" {
		t.Errorf("unexpected host %q", res.Host)
	}
	if res.Features[features.ColIP] != 1 || res.Features[features.ColNbAnd] != 1 {
		t.Errorf("unexpected features: ip=%v nb_and=%v", res.Features[features.ColIP], res.Features[features.ColNbAnd])
	}
	if len(res.Explanations) != 10 {
		t.Errorf("expected 10 explanations, got %d", len(res.Explanations))
	}
	if len(res.Importances) != 15 {
		t.Fatalf("expected 15 importances, got %d", len(res.Importances))
	}
	for i := 1; i < len(res.Importances); i++ {
		if res.Importances[i].Importance > res.Importances[i-1].Importance {
			t.Fatal("importances not descending")
		}
	}
	if res.ID != "" {
		t.Error("no history configured, id should be empty")
	}
}

func TestCheck_SchemaMismatch(t *testing.T) {
	t.Parallel()
	schema, _ := features.NewSchema([]string{features.ColLengthURL, features.ColNbDots, features.ColNbAt})
	p := &testutil.DummyPredictor{Label: "phishing", Importances: []float64{0.25, 0.25, 0.25, 0.25}}
	clf, err := classifier.New(p, 4)
	if err != nil {
		t.Fatal(err)
	}
	logger := &testutil.DummyLogger{}
	a, err := app.Assemble(app.DefaultConfig(), app.Components{
		Schema:     schema,
		Classifier: clf,
		Means:      &dataset.ClassMeans{Legitimate: make(features.Vector, 3), Phishing: make(features.Vector, 3)},
	}, logger)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	res, err := a.Check(context.Background(), "http://example.com")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if res.Verdict != model.VerdictSchemaMismatch {
		t.Errorf("expected %s, got %s", model.VerdictSchemaMismatch, res.Verdict)
	}
	if !strings.Contains(res.Error, "got 3 features, model expects 4") {
		t.Errorf("unexpected error text %q", res.Error)
	}
	if p.Calls() != 0 {
		t.Error("classifier consulted on mismatched vector")
	}
}

func TestCheck_PunycodeHostDecoded(t *testing.T) {
	t.Parallel()
	fx := newFixture(t, "legitimate", nil)

	res, err := fx.app.Check(context.Background(), "http://xn--e1afmkfd.com/")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if res.Features[features.ColPunycode] != 1 {
		t.Error("punycode flag not set")
	}
	if res.UnicodeHost == "" || strings.Contains(res.UnicodeHost, "xn--") {
		t.Errorf("expected decoded host, got %q", res.UnicodeHost)
	}
}

func TestCheck_HistoryFailureDoesNotChangeVerdict(t *testing.T) {
	t.Parallel()
	hist := &failingHistory{}
	fx := newFixture(t, "legitimate", hist)

	res, err := fx.app.Check(context.Background(), "https://example.com")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if res.Verdict != model.VerdictLegitimate {
		t.Errorf("expected legitimate, got %s", res.Verdict)
	}
	if fx.logger.ErrorCount() != 1 {
		t.Errorf("expected one logged error, got %d", fx.logger.ErrorCount())
	}
}

func TestCheck_Concurrent(t *testing.T) {
	t.Parallel()
	fx := newFixture(t, "phishing", nil)

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := fx.app.Check(context.Background(), "http://login.example-bank.com/?id=1")
			if err != nil {
				errs <- err
				return
			}
			if res.Verdict != model.VerdictPhishing {
				errs <- errors.New("unexpected verdict " + string(res.Verdict))
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestNewApplication_FromFiles(t *testing.T) {
	t.Parallel()
	cols := []string{features.ColLengthURL, features.ColNbDots, features.ColNbHyphens}
	rows := []testutil.DatasetRow{
		{URL: "http://a.com", Values: []float64{12, 1, 0}, Status: "legitimate"},
		{URL: "http://b.org", Values: []float64{12, 1, 0}, Status: "legitimate"},
		{URL: "http://c.net", Values: []float64{14, 1, 0}, Status: "legitimate"},
		{URL: "http://x-y.a.b.c.xyz/q", Values: []float64{90, 5, 3}, Status: "phishing"},
		{URL: "http://x-y.a.b.c.top/q", Values: []float64{95, 6, 2}, Status: "phishing"},
		{URL: "http://x-y.a.b.c.icu/q", Values: []float64{80, 4, 4}, Status: "phishing"},
	}
	datasetPath := testutil.WriteDatasetCSV(t, cols, rows)

	d, err := dataset.LoadFile(datasetPath)
	if err != nil {
		t.Fatal(err)
	}
	f := forest.New(forest.WithNEstimators(5), forest.WithMaxFeatures(-1), forest.WithBootstrap(false))
	if err := f.Fit(context.Background(), d.X, d.Labels); err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	modelPath := filepath.Join(dir, "model.gob")
	if err := f.SaveFile(modelPath); err != nil {
		t.Fatal(err)
	}

	cfg := app.DefaultConfig()
	cfg.ModelPath = modelPath
	cfg.DatasetPath = datasetPath
	cfg.AllowlistPath = testutil.WriteFile(t, "allow.csv", "url\nhttps://www.google.com\n")
	cfg.HistoryPath = filepath.Join(dir, "history.db")

	a, err := app.NewApplication(context.Background(), cfg, &testutil.DummyLogger{})
	if err != nil {
		t.Fatalf("NewApplication: %v", err)
	}
	defer a.Close()

	res, err := a.Check(context.Background(), "http://secure-update.account.login.example-bank.xyz/verify-your-account-now")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if res.Verdict != model.VerdictPhishing {
		t.Errorf("expected phishing, got %s", res.Verdict)
	}
	if res.ID == "" {
		t.Fatal("expected a history id")
	}
	if len(res.Importances) != 3 {
		t.Errorf("expected all 3 importances, got %d", len(res.Importances))
	}

	got, err := a.HistoryEntry(context.Background(), res.ID)
	if err != nil {
		t.Fatalf("HistoryEntry: %v", err)
	}
	if got.Verdict != model.VerdictPhishing {
		t.Errorf("history verdict = %s", got.Verdict)
	}
}

func TestNewApplication_MissingArtifact(t *testing.T) {
	t.Parallel()
	cfg := app.DefaultConfig()
	dir := t.TempDir()
	cfg.ModelPath = filepath.Join(dir, "missing.gob")
	cfg.DatasetPath = filepath.Join(dir, "missing.csv")
	cfg.AllowlistPath = filepath.Join(dir, "missing-allow.csv")
	cfg.HistoryPath = ""

	if _, err := app.NewApplication(context.Background(), cfg, &testutil.DummyLogger{}); err == nil {
		t.Fatal("expected error for missing artifacts")
	}
}

type failingHistory struct{}

func (failingHistory) Record(context.Context, string, model.Verdict, string) (*history.Entry, error) {
	return nil, errors.New("disk full")
}

func (failingHistory) List(context.Context, int) ([]history.Entry, error) { return nil, nil }

func (failingHistory) Get(context.Context, string) (*history.Entry, error) {
	return nil, history.ErrNotFound
}
