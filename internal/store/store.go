// Package store persists experiment results. Learner state itself is never
// stored; a run is its configuration plus per-trial scores.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"wordlearn/internal/experiment"
	"wordlearn/internal/learner"
	"wordlearn/internal/lexicon"
)

// DefaultDBPath is the default relative path for the SQLite DB.
// Open creates the parent dir.
const DefaultDBPath = ".wordlearn/results.db"

// ErrNotFound is returned when a run ID is unknown.
var ErrNotFound = errors.New("store: not found")

// Run is one stored batch of trials.
type Run struct {
	ID        string
	Name      string
	Spec      learner.Spec
	Seed      uint64
	Shuffled  bool
	Split     string // "train", "test" or empty
	Trials    int
	Summary   experiment.Summary
	StartedAt time.Time
	Elapsed   time.Duration
}

// Trial is the score of one trial in a run.
type Trial struct {
	RunID   string
	Index   int
	Metrics lexicon.Metrics
	Words   int
}

// Store is the persistence facade; implementations are SQLite or in-memory.
type Store interface {
	// SaveRun stores run and its trials. An empty run.ID is assigned a new
	// UUID; the ID used is returned.
	SaveRun(run *Run, trials []Trial) (string, error)
	GetRun(id string) (*Run, error)
	// ListRuns returns all runs, most recent first.
	ListRuns() ([]*Run, error)
	ListTrials(runID string) ([]Trial, error)
	Close() error
}

// FromResult converts an experiment result into storable records.
func FromResult(res *experiment.Result) (*Run, []Trial) {
	run := &Run{
		Name:      res.Name,
		Spec:      res.Spec,
		Seed:      res.Seed,
		Shuffled:  res.Shuffled,
		Split:     res.Split,
		Trials:    len(res.Trials),
		Summary:   res.Summary,
		StartedAt: res.Started,
		Elapsed:   res.Elapsed,
	}
	trials := make([]Trial, len(res.Trials))
	for i, t := range res.Trials {
		trials[i] = Trial{Index: t.Index, Metrics: t.Metrics, Words: t.Words}
	}
	return run, trials
}

func encodeSpec(s learner.Spec) (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("encode spec: %w", err)
	}
	return string(b), nil
}

func decodeSpec(data string) (learner.Spec, error) {
	var s learner.Spec
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		return learner.Spec{}, fmt.Errorf("decode spec: %w", err)
	}
	return s, nil
}
