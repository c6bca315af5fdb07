// Package xsit implements the cross-situational learner: soft word-meaning
// associations accumulated over the whole curriculum, normalized into the
// Dirichlet-smoothed conditional P(w|m), then thresholded.
package xsit

import (
	"errors"
	"fmt"

	"wordlearn/internal/lexicon"
)

// ErrInvalidParams is returned by Params.Validate.
var ErrInvalidParams = errors.New("xsit: invalid params")

// Params configures the learner.
type Params struct {
	Smoothing float64 `json:"smoothing" yaml:"smoothing"` // lambda
	Beta      float64 `json:"beta" yaml:"beta"`
	Threshold float64 `json:"threshold" yaml:"threshold"` // tau
}

// DefaultParams returns lambda=0.01, beta=100, tau=0.09.
func DefaultParams() Params {
	return Params{Smoothing: 0.01, Beta: 100, Threshold: 0.09}
}

func (p Params) Validate() error {
	var errs []error
	if p.Smoothing <= 0 {
		errs = append(errs, fmt.Errorf("smoothing must be > 0, got %v", p.Smoothing))
	}
	if p.Beta <= 0 {
		errs = append(errs, fmt.Errorf("beta must be > 0, got %v", p.Beta))
	}
	if p.Threshold < 0 || p.Threshold > 1 {
		errs = append(errs, fmt.Errorf("threshold must be in [0,1], got %v", p.Threshold))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidParams, errors.Join(errs...))
	}
	return nil
}

// Learner is a cross-situational learner. It is deterministic.
type Learner struct {
	params Params
	table  lexicon.Table
	// totals[m] = sum over words of A[w][m], kept in step with table.
	totals map[string]float64
}

// New returns an empty learner.
func New(p Params) (*Learner, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Learner{
		params: p,
		table:  lexicon.Table{},
		totals: make(map[string]float64),
	}, nil
}

func (l *Learner) Name() string { return "xsit" }

func (l *Learner) Params() Params { return l.params }

// Probability returns P(w|m) = (A[w][m] + lambda) / (sum_w' A[w'][m] + beta*lambda)
// against the current table.
func (l *Learner) Probability(word, meaning string) float64 {
	a, _ := l.table.Get(word, meaning)
	return (a + l.params.Smoothing) / (l.totals[meaning] + l.params.Beta*l.params.Smoothing)
}

// Observe learns from c in order, then replaces the table with the pairs
// whose P(w|m) clears the threshold. An invalid observation anywhere in c
// is rejected before any state changes.
func (l *Learner) Observe(c lexicon.Curriculum) error {
	if err := c.Validate(); err != nil {
		return err
	}
	for _, o := range c {
		// Left to right: later words see earlier words' updates.
		for _, w := range o.Utterance {
			l.learn(w, o.Scene)
		}
	}
	l.table = l.filter()
	l.recount()
	return nil
}

// learn applies one alignment step for word against scene.
func (l *Learner) learn(word string, scene []string) {
	l.table.Ensure(word)
	probs := make([]float64, len(scene))
	var sum float64
	for i, m := range scene {
		probs[i] = l.Probability(word, m)
		sum += probs[i]
	}
	for i, m := range scene {
		align := probs[i] / sum
		l.table.Add(word, m, align)
		l.totals[m] += align
	}
}

// filter returns the surviving pairs with their raw associations. The
// survivors of a filtered table are the table itself, since removing
// competitors only shrinks each denominator.
func (l *Learner) filter() lexicon.Table {
	out := lexicon.Table{}
	for _, w := range l.table.Words() {
		for _, m := range l.table.Meanings(w) {
			if l.Probability(w, m) >= l.params.Threshold {
				a, _ := l.table.Get(w, m)
				out.Set(w, m, a)
			}
		}
	}
	return out
}

func (l *Learner) recount() {
	l.totals = make(map[string]float64)
	for _, w := range l.table.Words() {
		for _, m := range l.table.Meanings(w) {
			a, _ := l.table.Get(w, m)
			l.totals[m] += a
		}
	}
}

// Finalize re-applies the threshold to the current table. Observe already
// does this once; calling it again on a stable table is a no-op.
func (l *Learner) Finalize() {
	l.table = l.filter()
	l.recount()
}

func (l *Learner) Evaluate(gold lexicon.GoldStandard) lexicon.Metrics {
	return lexicon.Evaluate(l.table, gold)
}

func (l *Learner) Lexicon() lexicon.Lexicon { return l.table }

// Table returns a copy of the association table.
func (l *Learner) Table() lexicon.Table { return l.table.Clone() }
