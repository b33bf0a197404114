// Package dataset is the data-access layer: it reads the three input
// tables (indicator catalog, historical events, severity observations)
// from CSV files and writes the result table back. Columns are resolved
// by header name, so column order does not matter and extra columns are
// ignored. A missing required column, an unparsable number, or an
// unreadable file aborts the load; the caller never receives a partial
// table.
package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/d-maltsev/bayescope/internal/models"
)

// table is a parsed CSV file with name-resolved columns.
type table struct {
	header map[string]int
	rows   [][]string
}

func readTable(path string) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: empty file, expected a header row", path)
	}

	header := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		header[strings.TrimSpace(name)] = i
	}

	return &table{header: header, rows: records[1:]}, nil
}

// column returns the index of a required column.
func (t *table) column(path, name string) (int, error) {
	idx, ok := t.header[name]
	if !ok {
		return 0, fmt.Errorf("%s: missing required column %q", path, name)
	}
	return idx, nil
}

func (t *table) cell(row []string, idx int) string {
	return strings.TrimSpace(row[idx])
}

func (t *table) floatCell(path string, rowNum int, row []string, idx int) (float64, error) {
	v, err := strconv.ParseFloat(t.cell(row, idx), 64)
	if err != nil {
		return 0, fmt.Errorf("%s: row %d: invalid number %q: %w", path, rowNum+2, row[idx], err)
	}
	return v, nil
}

// LoadIndicators reads the indicator catalog. The description column is
// optional: a catalog without one still yields valid entries, just with
// empty descriptions.
func LoadIndicators(path string) ([]models.Indicator, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}

	idIdx, err := t.column(path, "indicator_id")
	if err != nil {
		return nil, err
	}
	descIdx, hasDesc := t.header["description"]

	indicators := make([]models.Indicator, 0, len(t.rows))
	for i, row := range t.rows {
		ind := models.Indicator{ID: t.cell(row, idIdx)}
		if hasDesc {
			ind.Description = t.cell(row, descIdx)
		}
		if err := ind.Validate(); err != nil {
			return nil, fmt.Errorf("%s: row %d: %w", path, i+2, err)
		}
		indicators = append(indicators, ind)
	}
	return indicators, nil
}

// LoadEvents reads the historical events table. Extra columns such as
// event_name are ignored.
func LoadEvents(path string) ([]models.Event, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}

	idIdx, err := t.column(path, "event_id")
	if err != nil {
		return nil, err
	}
	scoreIdx, err := t.column(path, "target_score")
	if err != nil {
		return nil, err
	}

	events := make([]models.Event, 0, len(t.rows))
	for i, row := range t.rows {
		score, err := t.floatCell(path, i, row, scoreIdx)
		if err != nil {
			return nil, err
		}
		ev := models.Event{ID: t.cell(row, idIdx), TargetScore: score}
		if err := ev.Validate(); err != nil {
			return nil, fmt.Errorf("%s: row %d: %w", path, i+2, err)
		}
		events = append(events, ev)
	}
	return events, nil
}

// LoadObservations reads the historical indicator observations table.
func LoadObservations(path string) ([]models.Observation, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}

	evIdx, err := t.column(path, "event_id")
	if err != nil {
		return nil, err
	}
	indIdx, err := t.column(path, "indicator_id")
	if err != nil {
		return nil, err
	}
	sevIdx, err := t.column(path, "severity")
	if err != nil {
		return nil, err
	}

	observations := make([]models.Observation, 0, len(t.rows))
	for i, row := range t.rows {
		severity, err := t.floatCell(path, i, row, sevIdx)
		if err != nil {
			return nil, err
		}
		obs := models.Observation{
			EventID:     t.cell(row, evIdx),
			IndicatorID: t.cell(row, indIdx),
			Severity:    severity,
		}
		if err := obs.Validate(); err != nil {
			return nil, fmt.Errorf("%s: row %d: %w", path, i+2, err)
		}
		observations = append(observations, obs)
	}
	return observations, nil
}
