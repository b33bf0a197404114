package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/d-maltsev/bayescope/internal/models"
)

// WriteRatios writes the result table, one row per indicator in input
// order, overwriting any previous output. The file is written to a
// temporary path and renamed into place so a failed run never leaves a
// partial result behind.
func WriteRatios(path string, results []models.RatioResult) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tempPath := path + ".tmp"
	f, err := os.Create(tempPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", tempPath, err)
	}

	w := csv.NewWriter(f)
	records := make([][]string, 0, len(results)+1)
	records = append(records, []string{"indicator_id", "p_given_H", "p_given_notH", "k_ratio", "description"})
	for _, r := range results {
		records = append(records, []string{
			r.IndicatorID,
			formatFloat(r.PGivenH),
			formatFloat(r.PGivenNotH),
			formatFloat(r.KRatio),
			r.Description,
		})
	}

	if err := w.WriteAll(records); err != nil {
		f.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to write %s: %w", tempPath, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to close %s: %w", tempPath, err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to rename output file: %w", err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
