package xsit

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"wordlearn/internal/lexicon"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func newLearner(t *testing.T, p Params) *Learner {
	t.Helper()
	l, err := New(p)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return l
}

func obs(utt string, scene ...string) lexicon.Observation {
	return lexicon.NewObservation(utt, scene)
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name string
		p    Params
		ok   bool
	}{
		{"defaults", DefaultParams(), true},
		{"zero smoothing", Params{Smoothing: 0, Beta: 100, Threshold: 0.1}, false},
		{"negative beta", Params{Smoothing: 0.01, Beta: -1, Threshold: 0.1}, false},
		{"threshold above one", Params{Smoothing: 0.01, Beta: 100, Threshold: 1.5}, false},
		{"threshold zero", Params{Smoothing: 0.01, Beta: 100, Threshold: 0}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidParams) {
				t.Errorf("Validate() = %v, want ErrInvalidParams", err)
			}
		})
	}
}

func TestLearn_FirstObservationIsUniform(t *testing.T) {
	l := newLearner(t, DefaultParams())
	l.learn("a", []string{"x", "y"})
	want := lexicon.Table{"a": {"x": 0.5, "y": 0.5}}
	if diff := cmp.Diff(want, l.table, approx); diff != "" {
		t.Errorf("table mismatch (-want +got):\n%s", diff)
	}
}

func TestLearn_CompetingWordsShareDenominator(t *testing.T) {
	l := newLearner(t, DefaultParams())
	l.learn("a", []string{"x"})
	// P(b|x) = 0.01/(1+1), P(b|y) = 0.01/1 -> alignment 1/3, 2/3.
	l.learn("b", []string{"x", "y"})
	want := lexicon.Table{
		"a": {"x": 1},
		"b": {"x": 1.0 / 3, "y": 2.0 / 3},
	}
	if diff := cmp.Diff(want, l.table, approx); diff != "" {
		t.Errorf("table mismatch (-want +got):\n%s", diff)
	}
}

func TestObserve_LeftToRightWithinUtterance(t *testing.T) {
	l := newLearner(t, Params{Smoothing: 0.01, Beta: 100, Threshold: 0})
	if err := l.Observe(lexicon.Curriculum{obs("a", "x"), obs("a b", "x", "y")}); err != nil {
		t.Fatal(err)
	}
	// a: P(a|x)=1.01/2, P(a|y)=0.01/1.
	ax := 1 + 0.505/0.515
	ay := 0.01 / 0.515
	// b sees a's update: totals x=ax, y=ay.
	px := 0.01 / (ax + 1)
	py := 0.01 / (ay + 1)
	want := lexicon.Table{
		"a": {"x": ax, "y": ay},
		"b": {"x": px / (px + py), "y": py / (px + py)},
	}
	if diff := cmp.Diff(want, l.Table(), approx); diff != "" {
		t.Errorf("table mismatch (-want +got):\n%s", diff)
	}
}

func TestObserve_ThresholdFilter(t *testing.T) {
	l := newLearner(t, Params{Smoothing: 0.01, Beta: 100, Threshold: 0.3})
	if err := l.Observe(lexicon.Curriculum{obs("a", "x"), obs("b", "x", "y"), obs("c", "z")}); err != nil {
		t.Fatal(err)
	}
	// P(b|x) = (1/3+0.01)/(4/3+1) < 0.3 is dropped.
	want := lexicon.Table{
		"a": {"x": 1},
		"b": {"y": 2.0 / 3},
		"c": {"z": 1},
	}
	if diff := cmp.Diff(want, l.Table(), approx); diff != "" {
		t.Errorf("table mismatch (-want +got):\n%s", diff)
	}
}

func TestObserve_DropsWordsWithoutSurvivors(t *testing.T) {
	l := newLearner(t, Params{Smoothing: 0.01, Beta: 100, Threshold: 0.99})
	if err := l.Observe(lexicon.Curriculum{obs("a b", "x", "y", "z")}); err != nil {
		t.Fatal(err)
	}
	if n := l.Lexicon().Len(); n != 0 {
		t.Errorf("Len = %d, want 0", n)
	}
	if got := l.Evaluate(lexicon.NewGoldStandard(lexicon.Pair{Word: "a", Meaning: "x"})); got != (lexicon.Metrics{}) {
		t.Errorf("Evaluate = %+v, want zero", got)
	}
}

func TestFinalize_Idempotent(t *testing.T) {
	l := newLearner(t, Params{Smoothing: 0.01, Beta: 100, Threshold: 0.2})
	c := lexicon.Curriculum{
		obs("the dog runs", "dog", "grass", "sky"),
		obs("the cat sleeps", "cat", "bed", "sky"),
		obs("a dog and a cat", "dog", "cat", "grass"),
		obs("the sky", "sky", "sun"),
	}
	if err := l.Observe(c); err != nil {
		t.Fatal(err)
	}
	once := l.Table()
	l.Finalize()
	if diff := cmp.Diff(once, l.Table()); diff != "" {
		t.Errorf("second filter changed table (-once +twice):\n%s", diff)
	}
}

func TestLearn_AccumulationNonDecreasing(t *testing.T) {
	l := newLearner(t, DefaultParams())
	c := lexicon.Curriculum{
		obs("red ball", "ball", "red", "sky"),
		obs("red ball", "ball", "red", "grass"),
		obs("blue sky", "sky", "blue", "ball"),
		obs("red sky", "sky", "red"),
	}
	for _, o := range c {
		before := l.table.Clone()
		for _, w := range o.Utterance {
			l.learn(w, o.Scene)
		}
		for w, row := range before {
			for m, v := range row {
				if got, _ := l.table.Get(w, m); got < v {
					t.Errorf("A[%s][%s] decreased %v -> %v", w, m, v, got)
				}
			}
		}
	}
}

func TestObserve_InvalidObservationLeavesStateUntouched(t *testing.T) {
	l := newLearner(t, DefaultParams())
	err := l.Observe(lexicon.Curriculum{obs("a", "x"), obs("b")})
	if !errors.Is(err, lexicon.ErrInvalidObservation) {
		t.Fatalf("Observe = %v, want ErrInvalidObservation", err)
	}
	if len(l.Table()) != 0 {
		t.Errorf("table mutated: %v", l.Table())
	}
}

func TestObserve_EmptyCurriculum(t *testing.T) {
	l := newLearner(t, DefaultParams())
	if err := l.Observe(nil); err != nil {
		t.Fatal(err)
	}
	if l.Lexicon().Len() != 0 {
		t.Error("expected empty lexicon")
	}
	if got := l.Evaluate(lexicon.NewGoldStandard(lexicon.Pair{Word: "a", Meaning: "b"})); got != (lexicon.Metrics{}) {
		t.Errorf("Evaluate = %+v", got)
	}
}

func TestProbability_UnseenPair(t *testing.T) {
	l := newLearner(t, DefaultParams())
	if got := l.Probability("a", "x"); math.Abs(got-0.01) > 1e-12 {
		t.Errorf("Probability = %v, want 1/beta", got)
	}
}
