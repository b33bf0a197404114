package models

import "errors"

// RatioResult holds the computed likelihood ratio for one indicator:
// the smoothed probability of the indicator being active given a
// successful event (PGivenH), given a failed event (PGivenNotH), and
// their ratio KRatio. A ratio well above 1 means the indicator is
// diagnostic of success; well below 1, diagnostic of failure.
type RatioResult struct {
	IndicatorID string  `json:"indicator_id"`
	PGivenH     float64 `json:"p_given_H"`
	PGivenNotH  float64 `json:"p_given_notH"`
	KRatio      float64 `json:"k_ratio"`
	Description string  `json:"description,omitempty"`
}

// Validate checks that all result fields are valid. Smoothing guarantees
// both probabilities stay in (0, 1], so zero is rejected.
func (r *RatioResult) Validate() error {
	if r.IndicatorID == "" {
		return errors.New("indicator ID must not be empty")
	}
	if r.PGivenH <= 0.0 || r.PGivenH > 1.0 {
		return errors.New("p_given_H must be in (0.0, 1.0]")
	}
	if r.PGivenNotH <= 0.0 || r.PGivenNotH > 1.0 {
		return errors.New("p_given_notH must be in (0.0, 1.0]")
	}
	if r.KRatio < 0.0 {
		return errors.New("k_ratio must not be negative")
	}
	return nil
}
