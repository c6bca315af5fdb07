package store

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"wordlearn/internal/experiment"
	"wordlearn/internal/learner"
	"wordlearn/internal/learner/pbv"
	"wordlearn/internal/lexicon"
)

func openSQL(t *testing.T) *SqlStore {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "results.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleResult(started time.Time) *experiment.Result {
	p := pbv.Params{Alpha: 0.8, AlphaNaught: 0.6}
	return &experiment.Result{
		Name:     "toy",
		Spec:     learner.Spec{Kind: learner.KindPBV, PBV: &p},
		Seed:     1<<63 + 5,
		Shuffled: true,
		Split:    "test",
		Trials: []experiment.TrialResult{
			{Index: 0, Metrics: lexicon.Metrics{Precision: 1, Recall: 0.5, F1: 2.0 / 3}, Words: 3},
			{Index: 1, Metrics: lexicon.Metrics{Precision: 0.5, Recall: 0.5, F1: 0.5}, Words: 4},
		},
		Summary: experiment.Summary{
			Precision: experiment.Stat{Mean: 0.75, Std: 0.25},
			Recall:    experiment.Stat{Mean: 0.5},
			F1:        experiment.Stat{Mean: 7.0 / 12, Std: 1.0 / 12},
		},
		Started: started,
		Elapsed: 1500 * time.Millisecond,
	}
}

func testStore(t *testing.T, s Store) {
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 123456789, time.UTC)
	run, trials := FromResult(sampleResult(t0))
	id, err := s.SaveRun(run, trials)
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	if id == "" {
		t.Fatal("SaveRun returned empty id")
	}

	got, err := s.GetRun(id)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	want := *run
	want.ID = id
	if diff := cmp.Diff(&want, got); diff != "" {
		t.Errorf("GetRun (-want +got):\n%s", diff)
	}

	gotTrials, err := s.ListTrials(id)
	if err != nil {
		t.Fatalf("ListTrials: %v", err)
	}
	for i := range trials {
		trials[i].RunID = id
	}
	if diff := cmp.Diff(trials, gotTrials); diff != "" {
		t.Errorf("ListTrials (-want +got):\n%s", diff)
	}

	later, laterTrials := FromResult(sampleResult(t0.Add(time.Hour)))
	later.ID = "fixed-id"
	if _, err := s.SaveRun(later, laterTrials); err != nil {
		t.Fatalf("SaveRun later: %v", err)
	}
	runs, err := s.ListRuns()
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	var ids []string
	for _, r := range runs {
		ids = append(ids, r.ID)
	}
	if diff := cmp.Diff([]string{"fixed-id", id}, ids); diff != "" {
		t.Errorf("ListRuns order (-want +got):\n%s", diff)
	}

	if _, err := s.SaveRun(later, nil); err == nil {
		t.Error("duplicate id: want error")
	}
	if _, err := s.GetRun("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetRun(missing) err = %v, want ErrNotFound", err)
	}
	if _, err := s.ListTrials("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("ListTrials(missing) err = %v, want ErrNotFound", err)
	}
}

func TestSqlStore(t *testing.T) { testStore(t, openSQL(t)) }

func TestMemStore(t *testing.T) { testStore(t, NewMemStore()) }

func TestSqlStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	run, trials := FromResult(sampleResult(time.Now()))
	id, err := s.SaveRun(run, trials)
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	got, err := s.GetRun(id)
	if err != nil {
		t.Fatalf("GetRun after reopen: %v", err)
	}
	if got.Spec.Kind != learner.KindPBV || got.Trials != 2 {
		t.Errorf("got %+v", got)
	}
}

func TestSqlStore_UnknownSchemaVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := s.db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatalf("bump version: %v", err)
	}
	_ = s.Close()
	if _, err := Open(path); err == nil {
		t.Error("want error for unknown schema version")
	}
}

func TestOpenExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "results.db")
	if _, err := OpenExisting(path); !errors.Is(err, ErrNotFound) {
		t.Fatalf("OpenExisting(missing) err = %v, want ErrNotFound", err)
	}
	if _, err := os.Stat(filepath.Dir(path)); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("OpenExisting created %s (stat err %v)", filepath.Dir(path), err)
	}

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	_ = s.Close()
	s, err = OpenExisting(path)
	if err != nil {
		t.Fatalf("OpenExisting: %v", err)
	}
	_ = s.Close()
}

func TestMemStore_RunsDoNotShareParams(t *testing.T) {
	s := NewMemStore()
	run, trials := FromResult(sampleResult(time.Now()))
	id, err := s.SaveRun(run, trials)
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	want := *run.Spec.PBV

	run.Spec.PBV.Alpha = 0.1
	got, err := s.GetRun(id)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if diff := cmp.Diff(want, *got.Spec.PBV); diff != "" {
		t.Errorf("caller mutation leaked into store (-want +got):\n%s", diff)
	}

	got.Spec.PBV.AlphaNaught = 0.2
	runs, err := s.ListRuns()
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	runs[0].Spec.PBV.Alpha = 0.3
	again, err := s.GetRun(id)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if diff := cmp.Diff(want, *again.Spec.PBV); diff != "" {
		t.Errorf("returned run aliases stored params (-want +got):\n%s", diff)
	}
}
