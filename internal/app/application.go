package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/net/idna"
	"golang.org/x/sync/errgroup"

	"github.com/raysh454/phishlens/internal/allowlist"
	"github.com/raysh454/phishlens/internal/classifier"
	"github.com/raysh454/phishlens/internal/dataset"
	"github.com/raysh454/phishlens/internal/explain"
	"github.com/raysh454/phishlens/internal/features"
	"github.com/raysh454/phishlens/internal/history"
	"github.com/raysh454/phishlens/internal/interfaces"
	"github.com/raysh454/phishlens/internal/logging"
	"github.com/raysh454/phishlens/internal/model"
)

// ErrEmptyURL is returned by Check when there is nothing to check.
var ErrEmptyURL = errors.New("url is empty")

// Components are the loaded artifacts an Application is assembled from.
type Components struct {
	Schema     *features.Schema
	Classifier *classifier.Classifier
	Allowlist  *allowlist.Set
	Means      *dataset.ClassMeans

	// History is optional.
	History interfaces.HistoryStore
}

// Application is the runtime context shared by the CLI and the HTTP server.
// It is built once at startup and never mutated afterwards, so Check is safe
// for concurrent use.
type Application struct {
	Config *Config
	Logger logging.Logger

	extractor   *features.Extractor
	schema      *features.Schema
	classifier  *classifier.Classifier
	allowlist   *allowlist.Set
	means       *dataset.ClassMeans
	history     interfaces.HistoryStore
	importances []model.FeatureImportance

	now func() time.Time
}

// NewApplication loads the model, the allowlist and the dataset concurrently
// and opens the history store. Any load failure is returned; the caller is
// expected to treat it as fatal.
func NewApplication(ctx context.Context, cfg *Config, logger logging.Logger) (*Application, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	var c Components

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		clf, err := classifier.LoadFile(cfg.ModelPath)
		if err != nil {
			return fmt.Errorf("loading model: %w", err)
		}
		c.Classifier = clf
		return nil
	})
	g.Go(func() error {
		set, err := allowlist.LoadFile(cfg.AllowlistPath)
		if err != nil {
			return fmt.Errorf("loading allowlist: %w", err)
		}
		c.Allowlist = set
		return nil
	})
	g.Go(func() error {
		d, err := dataset.LoadFile(cfg.DatasetPath)
		if err != nil {
			return fmt.Errorf("loading dataset: %w", err)
		}
		means, err := d.ClassMeans()
		if err != nil {
			return fmt.Errorf("computing class means: %w", err)
		}
		c.Schema = d.Schema
		c.Means = means
		logger.Info("dataset loaded",
			logging.Field{Key: "rows", Value: d.Len()},
			logging.Field{Key: "columns", Value: d.Schema.Len()})
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if cfg.HistoryPath != "" {
		store, err := history.Open(cfg.HistoryPath, logger.With(logging.Field{Key: "component", Value: "history"}))
		if err != nil {
			return nil, fmt.Errorf("opening history: %w", err)
		}
		c.History = store
	}

	a, err := Assemble(cfg, c, logger)
	if err != nil {
		if closer, ok := c.History.(io.Closer); ok {
			_ = closer.Close()
		}
		return nil, err
	}
	return a, nil
}

// Assemble builds an Application from already loaded components.
func Assemble(cfg *Config, c Components, logger logging.Logger) (*Application, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if c.Schema == nil || c.Classifier == nil || c.Means == nil {
		return nil, errors.New("app: schema, classifier and class means are required")
	}
	if c.Allowlist == nil {
		c.Allowlist = allowlist.New()
	}

	var opts []features.Option
	if cfg.IPFlagZero {
		opts = append(opts, features.WithZeroIPFlag())
	}

	a := &Application{
		Config:     cfg,
		Logger:     logger,
		extractor:  features.NewExtractor(opts...),
		schema:     c.Schema,
		classifier: c.Classifier,
		allowlist:  c.Allowlist,
		means:      c.Means,
		history:    c.History,
		now:        time.Now,
	}

	// A model trained on another schema still starts; every check then reports
	// the mismatch instead of a verdict.
	if c.Schema.Len() != c.Classifier.ExpectedWidth() {
		logger.Warn("schema width differs from model width",
			logging.Field{Key: "schema", Value: c.Schema.Len()},
			logging.Field{Key: "model", Value: c.Classifier.ExpectedWidth()})
	} else {
		imp, err := c.Classifier.TopImportances(c.Schema, cfg.TopImportances)
		if err != nil {
			return nil, err
		}
		a.importances = imp
	}

	if missing := c.Schema.Missing(a.extractor.Extract("")); len(missing) > 0 {
		logger.Debug("schema columns without an extractor", logging.Field{Key: "count", Value: len(missing)})
	}

	logger.Info("application ready",
		logging.Field{Key: "allowlist", Value: c.Allowlist.Len()},
		logging.Field{Key: "features", Value: c.Schema.Len()},
		logging.Field{Key: "history", Value: c.History != nil})
	return a, nil
}

// Schema returns the feature schema the application aligns vectors to.
func (a *Application) Schema() *features.Schema { return a.schema }

// TopImportances returns a copy of the global importance ranking.
func (a *Application) TopImportances() []model.FeatureImportance {
	return append([]model.FeatureImportance(nil), a.importances...)
}

// Check runs one URL through the pipeline: allowlist, extraction, schema
// validation, classification and explanation. A schema mismatch is reported
// in the result, not as an error.
func (a *Application) Check(ctx context.Context, raw string) (*model.CheckResult, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrEmptyURL
	}

	parts := features.SplitURL(raw)
	res := &model.CheckResult{
		URL:       raw,
		Host:      parts.Host,
		CheckedAt: a.now().UTC(),
	}
	if hostname := parts.Hostname(); strings.Contains(hostname, "xn--") {
		if u, err := idna.ToUnicode(hostname); err == nil && u != hostname {
			res.UnicodeHost = u
		}
	}

	if a.allowlist.Contains(raw) {
		res.Verdict = model.VerdictTrusted
		a.record(ctx, res)
		return res, nil
	}

	values := a.extractor.Extract(raw)
	vec := a.schema.Align(values)
	if err := features.Validate(vec, a.classifier.ExpectedWidth()); err != nil {
		a.Logger.Warn("feature count mismatch", logging.Field{Key: "url", Value: raw}, logging.Err(err))
		res.Verdict = model.VerdictSchemaMismatch
		res.Error = err.Error()
		a.record(ctx, res)
		return res, nil
	}

	verdict, err := a.classifier.Classify(vec)
	if err != nil {
		return nil, fmt.Errorf("classify: %w", err)
	}
	explanations, err := explain.Surface(a.schema, vec, a.means)
	if err != nil {
		return nil, fmt.Errorf("explain: %w", err)
	}

	res.Verdict = verdict
	res.Features = values
	res.Explanations = explanations
	res.Importances = a.TopImportances()
	a.record(ctx, res)

	a.Logger.Info("checked url",
		logging.Field{Key: "url", Value: raw},
		logging.Field{Key: "verdict", Value: verdict})
	return res, nil
}

// record stores the verdict. Failures are logged and never change the result.
func (a *Application) record(ctx context.Context, res *model.CheckResult) {
	if a.history == nil {
		return
	}
	e, err := a.history.Record(ctx, res.URL, res.Verdict, res.Error)
	if err != nil {
		a.Logger.Error("recording check", logging.Field{Key: "url", Value: res.URL}, logging.Err(err))
		return
	}
	res.ID = e.ID
}

// History lists recent checks, newest first.
func (a *Application) History(ctx context.Context, limit int) ([]history.Entry, error) {
	if a.history == nil {
		return []history.Entry{}, nil
	}
	return a.history.List(ctx, limit)
}

// HistoryEntry returns one recorded check.
func (a *Application) HistoryEntry(ctx context.Context, id string) (*history.Entry, error) {
	if a.history == nil {
		return nil, history.ErrNotFound
	}
	return a.history.Get(ctx, id)
}

// Close releases the history store.
func (a *Application) Close() error {
	if closer, ok := a.history.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
