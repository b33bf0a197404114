package forecast

import (
	"fmt"

	"github.com/d-maltsev/bayescope/internal/models"
)

// DenseCell is one cell of the full event × indicator matrix: whether the
// indicator was active during the event, and whether the event succeeded.
type DenseCell struct {
	EventID     string
	IndicatorID string
	Active      bool
	IsSuccess   bool
}

// ExpandCrossProduct materializes the dense matrix of every
// (event, indicator) combination: exactly len(events) × len(indicators)
// cells, each pair appearing once. A pair absent from the activity map
// defaults to inactive — the closed-world assumption: "never mentioned"
// means "not active", not "unknown".
//
// Cost is O(events × indicators) in both time and memory; for large
// catalogs this step dominates the run.
//
// Every event must have a success label. The labeler covers all events it
// is given, so a missing label means the inputs diverged; that is a
// data-integrity error, not something to paper over.
func ExpandCrossProduct(events []models.Event, indicators []models.Indicator, activity map[Pair]bool, labels map[string]bool) ([]DenseCell, error) {
	cells := make([]DenseCell, 0, len(events)*len(indicators))
	for _, ev := range events {
		isSuccess, ok := labels[ev.ID]
		if !ok {
			return nil, fmt.Errorf("event %q has no success label", ev.ID)
		}
		for _, ind := range indicators {
			cells = append(cells, DenseCell{
				EventID:     ev.ID,
				IndicatorID: ind.ID,
				Active:      activity[Pair{EventID: ev.ID, IndicatorID: ind.ID}],
				IsSuccess:   isSuccess,
			})
		}
	}
	return cells, nil
}
