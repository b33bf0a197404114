// Package storage keeps a history of completed forecast runs with
// file-based persistence. Each run records when it ran, the constants it
// ran with, and the full result table, so consecutive outputs can be
// compared after the fact. History is capped and rotated to prevent
// unbounded growth.
//
// Persistence uses atomic file writes (write to a temp file, then rename)
// and can be restored on startup. The canonical output of a run is the
// ratios CSV; this store is an operational record only.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/d-maltsev/bayescope/internal/models"
)

// RatioRun is one completed forecast run.
type RatioRun struct {
	ID               string               `json:"id"`
	RanAt            time.Time            `json:"ran_at"`
	SuccessThreshold float64              `json:"success_threshold"`
	LaplaceAlpha     float64              `json:"laplace_alpha"`
	Results          []models.RatioResult `json:"results"`
}

// NewRun builds a run record with a fresh ID and timestamp.
func NewRun(successThreshold, laplaceAlpha float64, results []models.RatioResult) RatioRun {
	return RatioRun{
		ID:               uuid.New().String(),
		RanAt:            time.Now(),
		SuccessThreshold: successThreshold,
		LaplaceAlpha:     laplaceAlpha,
		Results:          results,
	}
}

// Validate checks that the run record is complete.
func (r *RatioRun) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("run ID must not be empty")
	}
	if r.RanAt.IsZero() {
		return fmt.Errorf("run timestamp must be set")
	}
	for i := range r.Results {
		if err := r.Results[i].Validate(); err != nil {
			return fmt.Errorf("invalid result for %q: %w", r.Results[i].IndicatorID, err)
		}
	}
	return nil
}

// Storage provides thread-safe run history with file-based persistence
type Storage struct {
	runs []RatioRun
	mu   sync.RWMutex

	maxRuns  int
	filePath string
}

// persistenceFile is the on-disk structure for JSON persistence
type persistenceFile struct {
	Version string     `json:"version"`
	SavedAt time.Time  `json:"saved_at"`
	Runs    []RatioRun `json:"runs"`
}

// New creates a Storage instance. If filePath is empty, an OS-appropriate
// tmp directory is used.
func New(maxRuns int, filePath string) *Storage {
	if filePath == "" {
		filePath = filepath.Join(os.TempDir(), "bayescope", "runs.json")
	}
	return &Storage{
		runs:     make([]RatioRun, 0),
		maxRuns:  maxRuns,
		filePath: filePath,
	}
}

// RecordRun appends a completed run, rotating out the oldest runs once
// the cap is reached.
func (s *Storage) RecordRun(run RatioRun) error {
	if err := run.Validate(); err != nil {
		return fmt.Errorf("invalid run: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs = append(s.runs, run)
	if len(s.runs) > s.maxRuns {
		s.runs = s.runs[len(s.runs)-s.maxRuns:]
	}
	return nil
}

// GetRuns returns all recorded runs, oldest first.
func (s *Storage) GetRuns() []RatioRun {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]RatioRun, len(s.runs))
	copy(runs, s.runs)
	return runs
}

// LatestRun returns the most recent run.
func (s *Storage) LatestRun() (RatioRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.runs) == 0 {
		return RatioRun{}, fmt.Errorf("no runs recorded")
	}
	return s.runs[len(s.runs)-1], nil
}

// Save persists run history to file
func (s *Storage) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dir := filepath.Dir(s.filePath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	data := persistenceFile{
		Version: "1.0",
		SavedAt: time.Now(),
		Runs:    s.runs,
	}

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal run history: %w", err)
	}

	// Write to temporary file first (atomic write)
	tempPath := s.filePath + ".tmp"
	if err := os.WriteFile(tempPath, jsonData, 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Rename(tempPath, s.filePath); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to rename file: %w", err)
	}
	return nil
}

// Load restores run history from file. A missing file is not an error:
// the store simply starts empty.
func (s *Storage) Load() error {
	jsonData, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read file: %w", err)
	}

	var data persistenceFile
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return fmt.Errorf("failed to unmarshal run history: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs = data.Runs
	if s.runs == nil {
		s.runs = make([]RatioRun, 0)
	}
	if len(s.runs) > s.maxRuns {
		s.runs = s.runs[len(s.runs)-s.maxRuns:]
	}
	return nil
}
