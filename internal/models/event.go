package models

import "errors"

// Event represents a historical occurrence with a continuous outcome score.
// Whether an event counts as a success is not stored on the entity; it is
// derived per run from the configured success threshold.
type Event struct {
	ID          string  `json:"event_id"`
	TargetScore float64 `json:"target_score"`
}

// Validate checks that all event fields are valid.
func (e *Event) Validate() error {
	if e.ID == "" {
		return errors.New("event ID must not be empty")
	}
	return nil
}

// IsSuccess reports whether the event's score meets or exceeds the
// threshold. The comparison is inclusive: a score exactly at the threshold
// is a success.
func (e *Event) IsSuccess(threshold float64) bool {
	return e.TargetScore >= threshold
}
