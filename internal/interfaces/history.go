package interfaces

import (
	"context"

	"github.com/raysh454/phishlens/internal/history"
	"github.com/raysh454/phishlens/internal/model"
)

// HistoryStore records checked URLs. *history.Store implements it.
type HistoryStore interface {
	// Record stores one verdict and returns the stored entry.
	Record(ctx context.Context, url string, verdict model.Verdict, errMsg string) (*history.Entry, error)

	// List returns up to limit entries, newest first.
	List(ctx context.Context, limit int) ([]history.Entry, error)

	// Get returns one entry or history.ErrNotFound.
	Get(ctx context.Context, id string) (*history.Entry, error)
}
