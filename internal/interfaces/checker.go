package interfaces

import (
	"context"

	"github.com/raysh454/phishlens/internal/history"
	"github.com/raysh454/phishlens/internal/model"
)

// Checker is what the presentation layer needs from the runtime.
// *app.Application implements it.
type Checker interface {
	// Check runs the full pipeline for one URL.
	Check(ctx context.Context, url string) (*model.CheckResult, error)

	// TopImportances returns the global importance ranking shown with every verdict.
	TopImportances() []model.FeatureImportance

	// History lists recent checks. It returns an empty slice when history is disabled.
	History(ctx context.Context, limit int) ([]history.Entry, error)

	// HistoryEntry returns one recorded check or history.ErrNotFound.
	HistoryEntry(ctx context.Context, id string) (*history.Entry, error)
}
