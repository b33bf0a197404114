// Package models defines the core domain entities for bayescope.
// These models represent the indicator catalog, historical events with a
// continuous outcome score, raw severity observations, and the computed
// likelihood ratios. All models include built-in validation to ensure data
// integrity throughout the pipeline.
//
// Terminology:
//   - Indicator: a named diagnostic signal tracked per event.
//   - Event: a historical occurrence with a continuous target score.
//   - Active: boolean state of an indicator for a given event, derived
//     from severity > 0.
package models

import "errors"

// Indicator is a catalog entry for a diagnostic signal. Entries are
// immutable: created once from the catalog table and never mutated.
type Indicator struct {
	ID          string `json:"indicator_id"`
	Description string `json:"description,omitempty"` // free text, may be empty
}

// Validate checks that the indicator is a usable catalog entry.
func (i *Indicator) Validate() error {
	if i.ID == "" {
		return errors.New("indicator ID must not be empty")
	}
	return nil
}
