package forecast

import "github.com/d-maltsev/bayescope/internal/models"

// epsilon floors the ratio denominator. Smoothed probabilities are never
// exactly zero, but with tiny alpha they can get arbitrarily small and
// produce non-finite ratios.
const epsilon = 1e-9

// activityCounts accumulates, for one indicator, how many dense cells fall
// into each outcome class and how many of those were active.
type activityCounts struct {
	succTotal  int
	succActive int
	failTotal  int
	failActive int
}

// EstimateRatios computes the smoothed conditional activation
// probabilities and their ratio for every catalog indicator. Estimates use
// add-alpha smoothing in the two-outcome form (a + alpha) / (n + 2*alpha);
// a class with zero events falls back to the neutral 0.5 — no information,
// not an error. An indicator with no cells at all yields the all-neutral
// result (0.5, 0.5, k=1).
//
// The counts are accumulated in a single pass over the cells rather than
// by slicing per indicator, but the result is identical to partitioning
// each indicator's cells by outcome. Results follow catalog order, and
// each carries the catalog description (an indicator without a description
// still gets its row).
func EstimateRatios(cells []DenseCell, catalog []models.Indicator, alpha float64) []models.RatioResult {
	counts := make(map[string]*activityCounts, len(catalog))
	for _, ind := range catalog {
		counts[ind.ID] = &activityCounts{}
	}

	for _, cell := range cells {
		c, ok := counts[cell.IndicatorID]
		if !ok {
			continue
		}
		if cell.IsSuccess {
			c.succTotal++
			if cell.Active {
				c.succActive++
			}
		} else {
			c.failTotal++
			if cell.Active {
				c.failActive++
			}
		}
	}

	results := make([]models.RatioResult, 0, len(catalog))
	for _, ind := range catalog {
		c := counts[ind.ID]

		pGivenH := 0.5
		if c.succTotal > 0 {
			pGivenH = (float64(c.succActive) + alpha) / (float64(c.succTotal) + 2*alpha)
		}

		pGivenNotH := 0.5
		if c.failTotal > 0 {
			pGivenNotH = (float64(c.failActive) + alpha) / (float64(c.failTotal) + 2*alpha)
		}

		kRatio := pGivenH / max(pGivenNotH, epsilon)

		results = append(results, models.RatioResult{
			IndicatorID: ind.ID,
			PGivenH:     pGivenH,
			PGivenNotH:  pGivenNotH,
			KRatio:      kRatio,
			Description: ind.Description,
		})
	}
	return results
}
