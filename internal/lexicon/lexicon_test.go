package lexicon

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"wordlearn/internal/rng"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestNewObservation_DedupScene(t *testing.T) {
	o := NewObservation("  the red  ball ", []string{"ball", "red", "ball", "sky"})
	want := Observation{
		Utterance: []string{"the", "red", "ball"},
		Scene:     []string{"ball", "red", "sky"},
	}
	if diff := cmp.Diff(want, o); diff != "" {
		t.Errorf("NewObservation mismatch (-want +got):\n%s", diff)
	}
}

func TestCurriculumValidate_EmptyScene(t *testing.T) {
	c := Curriculum{
		NewObservation("dog", []string{"dog"}),
		NewObservation("cat", nil),
	}
	err := c.Validate()
	if !errors.Is(err, ErrInvalidObservation) {
		t.Fatalf("Validate() = %v, want ErrInvalidObservation", err)
	}
}

func TestShuffled_LeavesOriginal(t *testing.T) {
	c := Curriculum{
		NewObservation("a", []string{"1"}),
		NewObservation("b", []string{"2"}),
		NewObservation("c", []string{"3"}),
		NewObservation("d", []string{"4"}),
	}
	orig := append(Curriculum(nil), c...)
	s := c.Shuffled(rng.New(9, 9))
	if diff := cmp.Diff(orig, c); diff != "" {
		t.Errorf("original modified:\n%s", diff)
	}
	if len(s) != len(c) {
		t.Fatalf("len = %d, want %d", len(s), len(c))
	}
}

func TestTable_RankedTieBreak(t *testing.T) {
	tb := Table{}
	tb.Set("w", "zebra", 0.5)
	tb.Set("w", "apple", 0.5)
	tb.Set("w", "mango", 0.9)
	tb.Set("w", "kiwi", 0.1)
	want := []string{"mango", "apple", "zebra", "kiwi"}
	if diff := cmp.Diff(want, tb.Ranked("w")); diff != "" {
		t.Errorf("Ranked mismatch (-want +got):\n%s", diff)
	}
	m, v, ok := tb.Max("w")
	if !ok || m != "mango" || v != 0.9 {
		t.Errorf("Max = (%q, %v, %v)", m, v, ok)
	}
	if _, _, ok := tb.Max("missing"); ok {
		t.Error("Max on missing word should report !ok")
	}
}

func TestTable_LenIgnoresEmptyRows(t *testing.T) {
	tb := Table{}
	tb.Ensure("empty")
	tb.Add("w", "m", 0.25)
	tb.Add("w", "m", 0.25)
	if tb.Len() != 1 {
		t.Errorf("Len = %d, want 1", tb.Len())
	}
	if v, _ := tb.Get("w", "m"); v != 0.5 {
		t.Errorf("Add accumulated %v, want 0.5", v)
	}
}

func TestEvaluate(t *testing.T) {
	gold := NewGoldStandard(
		Pair{"red", "red"},
		Pair{"ball", "ball"},
		Pair{"dog", "dog"},
		Pair{"dog", "dog"},
	)
	tests := []struct {
		name string
		lex  Lexicon
		gold GoldStandard
		want Metrics
	}{
		{
			name: "empty lexicon",
			lex:  Table{},
			gold: gold,
			want: Metrics{},
		},
		{
			name: "empty gold",
			lex:  SingleTable{"red": "red"},
			gold: nil,
			want: Metrics{},
		},
		{
			name: "perfect on subset",
			lex: Table{
				"red":  {"red": 1},
				"ball": {"ball": 1, "sky": 0.2},
			},
			gold: gold,
			want: Metrics{Precision: 1, Recall: 2.0 / 3, F1: 0.8},
		},
		{
			name: "single table mismatch",
			lex:  SingleTable{"red": "ball", "ball": "ball", "cat": "cat"},
			gold: gold,
			want: Metrics{Precision: 1.0 / 3, Recall: 1.0 / 3, F1: 1.0 / 3},
		},
		{
			name: "nothing correct",
			lex:  SingleTable{"red": "sky"},
			gold: gold,
			want: Metrics{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.lex, tt.gold)
			if !approx(got.Precision, tt.want.Precision) || !approx(got.Recall, tt.want.Recall) || !approx(got.F1, tt.want.F1) {
				t.Errorf("Evaluate = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNewGoldStandard_Dedup(t *testing.T) {
	g := NewGoldStandard(Pair{"a", "x"}, Pair{"b", "y"}, Pair{"a", "x"})
	want := GoldStandard{{"a", "x"}, {"b", "y"}}
	if diff := cmp.Diff(want, g); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}
