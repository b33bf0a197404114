// Package forecast estimates how diagnostic each indicator is for a binary
// outcome. For every indicator in the catalog it computes
//
//	p_given_H    = P(indicator active | event succeeded)
//	p_given_notH = P(indicator active | event failed)
//	k_ratio      = p_given_H / p_given_notH
//
// Events are binarized against a success threshold, repeated severity
// observations collapse to one active flag per (event, indicator) pair,
// and the full event × indicator cross product is materialized so that an
// indicator never mentioned for an event counts as inactive evidence, not
// missing data. Probabilities use add-alpha (Laplace) smoothing with a
// neutral 0.5 fallback when a class has no events at all.
//
// The whole computation is a pure function of its three input tables and
// the configured constants: single-threaded, deterministic, no state kept
// between runs.
package forecast

import (
	"fmt"

	"github.com/d-maltsev/bayescope/internal/models"
)

// LabelOutcomes binarizes each event into success or failure: an event
// succeeds when its target score meets or exceeds the threshold
// (inclusive). It returns a label for every event.
//
// A duplicate event ID is a data-integrity error: the label lookup built
// downstream would be ambiguous.
func LabelOutcomes(events []models.Event, threshold float64) (map[string]bool, error) {
	labels := make(map[string]bool, len(events))
	for _, ev := range events {
		if _, seen := labels[ev.ID]; seen {
			return nil, fmt.Errorf("duplicate event ID %q in events table", ev.ID)
		}
		labels[ev.ID] = ev.IsSuccess(threshold)
	}
	return labels, nil
}
