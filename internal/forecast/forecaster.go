package forecast

import (
	"fmt"

	"github.com/d-maltsev/bayescope/internal/models"
)

// Default values for the estimation constants.
const (
	DefaultSuccessThreshold = 0.7
	DefaultLaplaceAlpha     = 1.0
	DefaultPriorProb        = 0.2
)

// Options configures a Forecaster.
type Options struct {
	// SuccessThreshold binarizes events: target_score >= threshold is a
	// success.
	SuccessThreshold float64
	// LaplaceAlpha is the additive smoothing constant (1.0 = add-one).
	LaplaceAlpha float64
	// PriorProb is the base prior probability of the target scenario. It
	// is carried on the configuration surface but does not enter the
	// ratio computation; a downstream posterior-odds step would consume
	// it.
	PriorProb float64
}

// Forecaster runs the full estimation pipeline: label outcomes, collapse
// activity, expand the event × indicator cross product, estimate ratios.
type Forecaster struct {
	opts Options
}

// New creates a Forecaster with the given options.
func New(opts Options) *Forecaster {
	return &Forecaster{opts: opts}
}

// Options returns the configured options.
func (f *Forecaster) Options() Options {
	return f.opts
}

// FitLikelihoods computes a likelihood ratio for every catalog indicator
// from the historical events and severity observations. Results follow
// catalog order. Rerunning with identical inputs produces identical
// output.
//
// Input-integrity failures — a duplicate event ID, or an observation
// referencing an event absent from the events table — abort the run with
// an error and no result.
func (f *Forecaster) FitLikelihoods(indicators []models.Indicator, events []models.Event, observations []models.Observation) ([]models.RatioResult, error) {
	labels, err := LabelOutcomes(events, f.opts.SuccessThreshold)
	if err != nil {
		return nil, fmt.Errorf("labeling outcomes: %w", err)
	}

	for _, obs := range observations {
		if _, ok := labels[obs.EventID]; !ok {
			return nil, fmt.Errorf("observation for indicator %q references unknown event %q", obs.IndicatorID, obs.EventID)
		}
	}

	catalog := dedupeIndicators(indicators)
	activity := CollapseActivity(observations)

	cells, err := ExpandCrossProduct(events, catalog, activity, labels)
	if err != nil {
		return nil, fmt.Errorf("expanding cross product: %w", err)
	}

	return EstimateRatios(cells, catalog, f.opts.LaplaceAlpha), nil
}

// dedupeIndicators keeps the first occurrence of each indicator ID,
// preserving catalog order.
func dedupeIndicators(indicators []models.Indicator) []models.Indicator {
	seen := make(map[string]bool, len(indicators))
	catalog := make([]models.Indicator, 0, len(indicators))
	for _, ind := range indicators {
		if seen[ind.ID] {
			continue
		}
		seen[ind.ID] = true
		catalog = append(catalog, ind)
	}
	return catalog
}
