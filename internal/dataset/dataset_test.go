package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/d-maltsev/bayescope/internal/models"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "table.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp CSV: %v", err)
	}
	return path
}

func TestLoadIndicators(t *testing.T) {
	path := writeTempCSV(t, "indicator_id,description,category\nind-a,port closures,logistics\nind-b,,misc\n")

	indicators, err := LoadIndicators(path)
	if err != nil {
		t.Fatalf("LoadIndicators failed: %v", err)
	}

	if len(indicators) != 2 {
		t.Fatalf("expected 2 indicators, got %d", len(indicators))
	}
	if indicators[0].ID != "ind-a" || indicators[0].Description != "port closures" {
		t.Errorf("unexpected first indicator: %+v", indicators[0])
	}
	if indicators[1].Description != "" {
		t.Errorf("expected empty description, got %q", indicators[1].Description)
	}
}

func TestLoadIndicatorsWithoutDescriptionColumn(t *testing.T) {
	path := writeTempCSV(t, "indicator_id\nind-a\n")

	indicators, err := LoadIndicators(path)
	if err != nil {
		t.Fatalf("LoadIndicators failed: %v", err)
	}
	if len(indicators) != 1 || indicators[0].Description != "" {
		t.Errorf("expected one indicator with empty description, got %+v", indicators)
	}
}

func TestLoadIndicatorsMissingIDColumn(t *testing.T) {
	path := writeTempCSV(t, "description\nsomething\n")

	if _, err := LoadIndicators(path); err == nil {
		t.Fatal("expected error for missing indicator_id column, got nil")
	}
}

func TestLoadEvents(t *testing.T) {
	// Column order differs from the canonical one and event_name is an
	// extra column: both must be handled by header-name resolution.
	path := writeTempCSV(t, "event_name,target_score,event_id\nblockade,0.9,ev-1\nflood,0.1,ev-2\n")

	events, err := LoadEvents(path)
	if err != nil {
		t.Fatalf("LoadEvents failed: %v", err)
	}

	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].ID != "ev-1" || events[0].TargetScore != 0.9 {
		t.Errorf("unexpected first event: %+v", events[0])
	}
}

func TestLoadEventsBadScore(t *testing.T) {
	path := writeTempCSV(t, "event_id,target_score\nev-1,not-a-number\n")

	_, err := LoadEvents(path)
	if err == nil {
		t.Fatal("expected parse error for non-numeric score, got nil")
	}
	if !strings.Contains(err.Error(), "row 2") {
		t.Errorf("error should name the offending row, got: %v", err)
	}
}

func TestLoadObservations(t *testing.T) {
	path := writeTempCSV(t, "event_id,indicator_id,severity\nev-1,ind-a,5\nev-1,ind-a,0\nev-2,ind-b,-1.5\n")

	observations, err := LoadObservations(path)
	if err != nil {
		t.Fatalf("LoadObservations failed: %v", err)
	}

	if len(observations) != 3 {
		t.Fatalf("expected 3 observations (repeats preserved), got %d", len(observations))
	}
	if observations[2].Severity != -1.5 {
		t.Errorf("severity = %v, want -1.5", observations[2].Severity)
	}
}

func TestLoadObservationsMissingColumn(t *testing.T) {
	path := writeTempCSV(t, "event_id,indicator_id\nev-1,ind-a\n")

	if _, err := LoadObservations(path); err == nil {
		t.Fatal("expected error for missing severity column, got nil")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := LoadEvents(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
}

func TestWriteRatios(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "ratios.csv")
	results := []models.RatioResult{
		{IndicatorID: "ind-a", PGivenH: 2.0 / 3.0, PGivenNotH: 1.0 / 3.0, KRatio: 2, Description: "port closures"},
		{IndicatorID: "ind-b", PGivenH: 0.5, PGivenNotH: 0.5, KRatio: 1},
	}

	if err := WriteRatios(path, results); err != nil {
		t.Fatalf("WriteRatios failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")

	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "indicator_id,p_given_H,p_given_notH,k_ratio,description" {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if !strings.HasPrefix(lines[1], "ind-a,") || !strings.HasSuffix(lines[1], ",port closures") {
		t.Errorf("unexpected first row: %s", lines[1])
	}

	// Rows follow input order.
	if !strings.HasPrefix(lines[2], "ind-b,") {
		t.Errorf("unexpected second row: %s", lines[2])
	}
}

func TestWriteRatiosOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ratios.csv")

	first := []models.RatioResult{
		{IndicatorID: "ind-a", PGivenH: 0.5, PGivenNotH: 0.5, KRatio: 1},
		{IndicatorID: "ind-b", PGivenH: 0.5, PGivenNotH: 0.5, KRatio: 1},
	}
	if err := WriteRatios(path, first); err != nil {
		t.Fatalf("first write failed: %v", err)
	}

	second := []models.RatioResult{
		{IndicatorID: "ind-c", PGivenH: 0.25, PGivenNotH: 0.75, KRatio: 1.0 / 3.0},
	}
	if err := WriteRatios(path, second); err != nil {
		t.Fatalf("second write failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	content := string(data)
	if strings.Contains(content, "ind-a") {
		t.Error("output must be written in full, not appended")
	}
	if !strings.Contains(content, "ind-c") {
		t.Error("second write missing from output")
	}

	// No stray temp file left behind.
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file was not cleaned up")
	}
}
