package store

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemStore is an in-memory Store for tests and one-shot runs.
type MemStore struct {
	mu     sync.Mutex
	runs   map[string]*Run
	order  []string // insertion order
	trials map[string][]Trial
}

func NewMemStore() *MemStore {
	return &MemStore{runs: make(map[string]*Run), trials: make(map[string][]Trial)}
}

func (s *MemStore) SaveRun(run *Run, trials []Trial) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := cloneRun(run)
	if cp.ID == "" {
		cp.ID = uuid.NewString()
	}
	if _, ok := s.runs[cp.ID]; ok {
		return "", fmt.Errorf("run %s already stored", cp.ID)
	}
	ts := make([]Trial, len(trials))
	for i, t := range trials {
		t.RunID = cp.ID
		ts[i] = t
	}
	sort.SliceStable(ts, func(i, j int) bool { return ts[i].Index < ts[j].Index })
	s.runs[cp.ID] = cp
	s.trials[cp.ID] = ts
	s.order = append(s.order, cp.ID)
	return cp.ID, nil
}

func (s *MemStore) GetRun(id string) (*Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.runs[id]
	if !ok {
		return nil, fmt.Errorf("run %s: %w", id, ErrNotFound)
	}
	return cloneRun(r), nil
}

func (s *MemStore) ListRuns() ([]*Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Run, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		out = append(out, cloneRun(s.runs[s.order[i]]))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartedAt.After(out[j].StartedAt) })
	return out, nil
}

func (s *MemStore) ListTrials(runID string) ([]Trial, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ts, ok := s.trials[runID]
	if !ok {
		return nil, fmt.Errorf("run %s: %w", runID, ErrNotFound)
	}
	out := make([]Trial, len(ts))
	copy(out, ts)
	return out, nil
}

func (s *MemStore) Close() error { return nil }

// cloneRun copies r including the spec's parameter structs, which are
// shared through pointers otherwise.
func cloneRun(r *Run) *Run {
	cp := *r
	cp.Spec = r.Spec.Clone()
	return &cp
}
