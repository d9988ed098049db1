package server

import (
	"testing"

	"github.com/raysh454/phishlens/internal/model"
)

func TestBuildChart(t *testing.T) {
	t.Parallel()
	bars := buildChart([]model.FeatureImportance{
		{Feature: "length_url", Importance: 0.5},
		{Feature: "nb_dots", Importance: 0.125},
		{Feature: "domain_age", Importance: 0},
	})
	if len(bars) != 3 {
		t.Fatalf("expected 3 bars, got %d", len(bars))
	}
	if bars[0].Width != chartBarMax || bars[1].Width != chartBarMax/4 || bars[2].Width != 0 {
		t.Errorf("unexpected widths: %d %d %d", bars[0].Width, bars[1].Width, bars[2].Width)
	}
	if bars[1].Y != chartRowHeight {
		t.Errorf("second bar y = %d", bars[1].Y)
	}
	if bars[0].Category != "length" || bars[2].Category != "unmodeled" {
		t.Errorf("unexpected categories: %s %s", bars[0].Category, bars[2].Category)
	}

	if got := buildChart(nil); len(got) != 0 {
		t.Error("expected no bars")
	}
}
