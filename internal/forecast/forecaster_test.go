package forecast

import (
	"reflect"
	"testing"

	"github.com/d-maltsev/bayescope/internal/models"
)

func defaultOptions() Options {
	return Options{
		SuccessThreshold: DefaultSuccessThreshold,
		LaplaceAlpha:     DefaultLaplaceAlpha,
		PriorProb:        DefaultPriorProb,
	}
}

func TestFitLikelihoods(t *testing.T) {
	f := New(defaultOptions())

	indicators := []models.Indicator{
		{ID: "ind-a", Description: "alpha"},
		{ID: "ind-b", Description: "beta"},
	}
	events := []models.Event{
		{ID: "ev-1", TargetScore: 0.9},
		{ID: "ev-2", TargetScore: 0.1},
	}
	observations := []models.Observation{
		{EventID: "ev-1", IndicatorID: "ind-a", Severity: 5},
		{EventID: "ev-1", IndicatorID: "ind-b", Severity: 0},
		{EventID: "ev-2", IndicatorID: "ind-a", Severity: 0},
	}

	results, err := f.FitLikelihoods(indicators, events, observations)
	if err != nil {
		t.Fatalf("FitLikelihoods failed: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if !approxEqual(results[0].KRatio, 2.0) {
		t.Errorf("ind-a k_ratio = %v, want 2.0", results[0].KRatio)
	}
	if !approxEqual(results[1].KRatio, 1.0) {
		t.Errorf("ind-b k_ratio = %v, want 1.0", results[1].KRatio)
	}
}

func TestFitLikelihoodsDeterministic(t *testing.T) {
	f := New(defaultOptions())

	indicators := []models.Indicator{{ID: "ind-a"}, {ID: "ind-b"}, {ID: "ind-c"}}
	events := []models.Event{
		{ID: "ev-1", TargetScore: 0.75},
		{ID: "ev-2", TargetScore: 0.4},
		{ID: "ev-3", TargetScore: 0.95},
	}
	observations := []models.Observation{
		{EventID: "ev-1", IndicatorID: "ind-a", Severity: 2},
		{EventID: "ev-2", IndicatorID: "ind-b", Severity: 1},
		{EventID: "ev-3", IndicatorID: "ind-c", Severity: 0},
		{EventID: "ev-3", IndicatorID: "ind-c", Severity: 3},
	}

	first, err := f.FitLikelihoods(indicators, events, observations)
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	second, err := f.FitLikelihoods(indicators, events, observations)
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("identical inputs produced different results")
	}
}

func TestFitLikelihoodsUnknownEvent(t *testing.T) {
	f := New(defaultOptions())

	indicators := []models.Indicator{{ID: "ind-a"}}
	events := []models.Event{{ID: "ev-1", TargetScore: 0.9}}
	observations := []models.Observation{
		{EventID: "ev-ghost", IndicatorID: "ind-a", Severity: 1},
	}

	if _, err := f.FitLikelihoods(indicators, events, observations); err == nil {
		t.Fatal("expected error for observation referencing unknown event, got nil")
	}
}

func TestFitLikelihoodsDuplicateEvent(t *testing.T) {
	f := New(defaultOptions())

	indicators := []models.Indicator{{ID: "ind-a"}}
	events := []models.Event{
		{ID: "ev-1", TargetScore: 0.9},
		{ID: "ev-1", TargetScore: 0.1},
	}

	if _, err := f.FitLikelihoods(indicators, events, nil); err == nil {
		t.Fatal("expected error for duplicate event ID, got nil")
	}
}

func TestFitLikelihoodsDedupesCatalog(t *testing.T) {
	f := New(defaultOptions())

	indicators := []models.Indicator{
		{ID: "ind-a", Description: "first"},
		{ID: "ind-a", Description: "second"},
	}
	events := []models.Event{{ID: "ev-1", TargetScore: 0.9}}

	results, err := f.FitLikelihoods(indicators, events, nil)
	if err != nil {
		t.Fatalf("FitLikelihoods failed: %v", err)
	}

	if len(results) != 1 {
		t.Fatalf("expected 1 result for a duplicated catalog entry, got %d", len(results))
	}
	if results[0].Description != "first" {
		t.Errorf("description = %q, want first occurrence to win", results[0].Description)
	}
}

// Observations for indicators absent from the catalog are ignored, the
// same way the cross product only ever covers catalog indicators.
func TestFitLikelihoodsIgnoresUncataloguedIndicator(t *testing.T) {
	f := New(defaultOptions())

	indicators := []models.Indicator{{ID: "ind-a"}}
	events := []models.Event{
		{ID: "ev-1", TargetScore: 0.9},
		{ID: "ev-2", TargetScore: 0.1},
	}
	observations := []models.Observation{
		{EventID: "ev-1", IndicatorID: "ind-unknown", Severity: 9},
	}

	results, err := f.FitLikelihoods(indicators, events, observations)
	if err != nil {
		t.Fatalf("FitLikelihoods failed: %v", err)
	}
	if len(results) != 1 || results[0].IndicatorID != "ind-a" {
		t.Fatalf("expected a single result for ind-a, got %+v", results)
	}
}
