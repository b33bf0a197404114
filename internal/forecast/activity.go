package forecast

import "github.com/d-maltsev/bayescope/internal/models"

// Pair keys one (event, indicator) combination.
type Pair struct {
	EventID     string
	IndicatorID string
}

// CollapseActivity reduces raw severity observations to one active flag
// per distinct (event, indicator) pair. A pair is active iff at least one
// of its observations has severity strictly greater than zero — the max
// rule. Repeated observations for the same pair are expected, not an
// error. Pairs with no observation at all are simply absent from the
// result; the expander fills those in as inactive.
func CollapseActivity(observations []models.Observation) map[Pair]bool {
	activity := make(map[Pair]bool)
	for _, obs := range observations {
		key := Pair{EventID: obs.EventID, IndicatorID: obs.IndicatorID}
		if obs.Active() {
			activity[key] = true
		} else if _, seen := activity[key]; !seen {
			activity[key] = false
		}
	}
	return activity
}
