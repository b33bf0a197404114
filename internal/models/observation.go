package models

import "errors"

// Observation is a single raw severity reading of an indicator during an
// event. The same (event, indicator) pair may appear any number of times;
// severity may be negative, zero, or positive. Observations are the
// read-only source of truth for indicator activity.
type Observation struct {
	EventID     string  `json:"event_id"`
	IndicatorID string  `json:"indicator_id"`
	Severity    float64 `json:"severity"`
}

// Validate checks that all observation fields are valid.
func (o *Observation) Validate() error {
	if o.EventID == "" {
		return errors.New("event ID must not be empty")
	}
	if o.IndicatorID == "" {
		return errors.New("indicator ID must not be empty")
	}
	return nil
}

// Active reports whether this single reading counts as activity.
// The comparison is strict: a severity of exactly 0 is inactive.
func (o *Observation) Active() bool {
	return o.Severity > 0
}
