// Package learner unifies the word-learning models behind one interface so
// experiment drivers can build and run them interchangeably.
package learner

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"wordlearn/internal/learner/pbv"
	"wordlearn/internal/learner/pursuit"
	"wordlearn/internal/learner/xsit"
	"wordlearn/internal/lexicon"
	"wordlearn/internal/rng"
)

// ErrUnknownKind is returned when a Spec names no registered learner.
var ErrUnknownKind = errors.New("learner: unknown kind")

// Learner consumes a curriculum and is scored against a gold standard.
type Learner interface {
	Name() string
	Observe(c lexicon.Curriculum) error
	Evaluate(gold lexicon.GoldStandard) lexicon.Metrics
	Lexicon() lexicon.Lexicon
}

// Kind names a learner variant.
type Kind string

const (
	KindXSit            Kind = "xsit"
	KindPursuit         Kind = "pursuit"
	KindPursuitSampling Kind = "pursuit-sampling"
	KindPBV             Kind = "pbv"
)

// Kinds lists all registered kinds, sorted.
func Kinds() []Kind {
	kinds := []Kind{KindXSit, KindPursuit, KindPursuitSampling, KindPBV}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Spec describes one learner configuration. Only the params block matching
// Kind is read; a nil block means defaults.
type Spec struct {
	Kind    Kind            `json:"kind" yaml:"kind"`
	XSit    *xsit.Params    `json:"xsit,omitempty" yaml:"xsit,omitempty"`
	Pursuit *pursuit.Params `json:"pursuit,omitempty" yaml:"pursuit,omitempty"`
	PBV     *pbv.Params     `json:"pbv,omitempty" yaml:"pbv,omitempty"`
}

// DefaultSpecs returns the canonical comparison set with default parameters.
func DefaultSpecs() []Spec {
	return []Spec{
		{Kind: KindPBV},
		{Kind: KindXSit},
		{Kind: KindPursuit},
		{Kind: KindPursuitSampling},
	}
}

// Clone returns a copy of s that shares no params block with it.
func (s Spec) Clone() Spec {
	out := Spec{Kind: s.Kind}
	if s.XSit != nil {
		p := *s.XSit
		out.XSit = &p
	}
	if s.Pursuit != nil {
		p := *s.Pursuit
		out.Pursuit = &p
	}
	if s.PBV != nil {
		p := *s.PBV
		out.PBV = &p
	}
	return out
}

// Normalize fills in the params block for Kind, applying defaults.
func (s Spec) Normalize() (Spec, error) {
	out := Spec{Kind: s.Kind}
	switch s.Kind {
	case KindXSit:
		p := xsit.DefaultParams()
		if s.XSit != nil {
			p = *s.XSit
		}
		out.XSit = &p
	case KindPursuit, KindPursuitSampling:
		p := pursuit.DefaultParams()
		if s.Pursuit != nil {
			p = *s.Pursuit
		}
		// The kind fixes the policy.
		p.Policy = pursuit.PolicySingle
		if s.Kind == KindPursuitSampling {
			p.Policy = pursuit.PolicySampling
		}
		out.Pursuit = &p
	case KindPBV:
		p := pbv.DefaultParams()
		if s.PBV != nil {
			p = *s.PBV
		}
		out.PBV = &p
	default:
		return Spec{}, fmt.Errorf("%w %q (available: %s)", ErrUnknownKind, s.Kind, kindList())
	}
	return out, nil
}

// Validate normalizes s and checks its parameters.
func (s Spec) Validate() error {
	n, err := s.Normalize()
	if err != nil {
		return err
	}
	switch {
	case n.XSit != nil:
		return n.XSit.Validate()
	case n.Pursuit != nil:
		return n.Pursuit.Validate()
	default:
		return n.PBV.Validate()
	}
}

// Build constructs a fresh learner. src is ignored by deterministic kinds.
func (s Spec) Build(src rng.Source) (Learner, error) {
	n, err := s.Normalize()
	if err != nil {
		return nil, err
	}
	switch n.Kind {
	case KindXSit:
		l, err := xsit.New(*n.XSit)
		if err != nil {
			return nil, fmt.Errorf("build %s: %w", n.Kind, err)
		}
		return l, nil
	case KindPursuit, KindPursuitSampling:
		l, err := pursuit.New(*n.Pursuit, src)
		if err != nil {
			return nil, fmt.Errorf("build %s: %w", n.Kind, err)
		}
		return l, nil
	default:
		l, err := pbv.New(*n.PBV, src)
		if err != nil {
			return nil, fmt.Errorf("build %s: %w", n.Kind, err)
		}
		return l, nil
	}
}

// Stochastic reports whether repeated trials can differ.
func (s Spec) Stochastic() bool { return s.Kind != KindXSit }

// String renders the kind with its effective parameters.
func (s Spec) String() string {
	n, err := s.Normalize()
	if err != nil {
		return string(s.Kind)
	}
	switch {
	case n.XSit != nil:
		p := n.XSit
		return fmt.Sprintf("%s(lambda=%g beta=%g tau=%g)", n.Kind, p.Smoothing, p.Beta, p.Threshold)
	case n.Pursuit != nil:
		p := n.Pursuit
		return fmt.Sprintf("%s(gamma=%g lambda=%g tau=%g)", n.Kind, p.LearningRate, p.Smoothing, p.Threshold)
	default:
		p := n.PBV
		return fmt.Sprintf("%s(alpha=%g alpha0=%g)", n.Kind, p.Alpha, p.AlphaNaught)
	}
}

func kindList() string {
	var names []string
	for _, k := range Kinds() {
		names = append(names, string(k))
	}
	return strings.Join(names, ", ")
}
