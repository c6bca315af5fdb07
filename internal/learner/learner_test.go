package learner_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"wordlearn/internal/learner"
	"wordlearn/internal/learner/pbv"
	"wordlearn/internal/learner/pursuit"
	"wordlearn/internal/learner/xsit"
	"wordlearn/internal/lexicon"
	"wordlearn/internal/rng"
)

var (
	_ learner.Learner = (*xsit.Learner)(nil)
	_ learner.Learner = (*pursuit.Learner)(nil)
	_ learner.Learner = (*pbv.Learner)(nil)
)

func TestBuild_AllDefaultSpecs(t *testing.T) {
	c := lexicon.Curriculum{
		lexicon.NewObservation("red ball", []string{"ball", "red", "sky"}),
		lexicon.NewObservation("red ball", []string{"ball", "red", "grass"}),
	}
	gold := lexicon.NewGoldStandard(
		lexicon.Pair{Word: "red", Meaning: "red"},
		lexicon.Pair{Word: "ball", Meaning: "ball"},
	)
	var names []string
	for _, spec := range learner.DefaultSpecs() {
		l, err := spec.Build(rng.New(1, 0))
		if err != nil {
			t.Fatalf("Build(%s): %v", spec.Kind, err)
		}
		if err := l.Observe(c); err != nil {
			t.Fatalf("%s Observe: %v", spec.Kind, err)
		}
		m := l.Evaluate(gold)
		if m.Precision < 0 || m.Precision > 1 || m.Recall < 0 || m.Recall > 1 {
			t.Errorf("%s metrics out of range: %+v", spec.Kind, m)
		}
		names = append(names, l.Name())
	}
	want := []string{"pbv", "xsit", "pursuit", "pursuit-sampling"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalize_KindFixesPolicy(t *testing.T) {
	p := pursuit.DefaultParams()
	p.Policy = pursuit.PolicySingle
	n, err := learner.Spec{Kind: learner.KindPursuitSampling, Pursuit: &p}.Normalize()
	if err != nil {
		t.Fatal(err)
	}
	if n.Pursuit.Policy != pursuit.PolicySampling {
		t.Errorf("Policy = %q, want sampling", n.Pursuit.Policy)
	}
	if p.Policy != pursuit.PolicySingle {
		t.Error("Normalize mutated the caller's params")
	}
}

func TestSpec_UnknownKind(t *testing.T) {
	_, err := learner.Spec{Kind: "hebbian"}.Build(nil)
	if !errors.Is(err, learner.ErrUnknownKind) {
		t.Errorf("Build = %v, want ErrUnknownKind", err)
	}
}

func TestSpec_ValidateRejectsBadParams(t *testing.T) {
	bad := xsit.Params{Smoothing: -1, Beta: 100, Threshold: 0.1}
	err := learner.Spec{Kind: learner.KindXSit, XSit: &bad}.Validate()
	if !errors.Is(err, xsit.ErrInvalidParams) {
		t.Errorf("Validate = %v, want xsit.ErrInvalidParams", err)
	}
}

func TestSpec_YAML(t *testing.T) {
	data := []byte(`
kind: pbv
pbv:
  alpha: 0.8
  alpha_naught: 0.5
`)
	var s learner.Spec
	if err := yaml.Unmarshal(data, &s); err != nil {
		t.Fatal(err)
	}
	want := learner.Spec{Kind: learner.KindPBV, PBV: &pbv.Params{Alpha: 0.8, AlphaNaught: 0.5}}
	if diff := cmp.Diff(want, s); diff != "" {
		t.Errorf("Spec mismatch (-want +got):\n%s", diff)
	}
	if got := s.String(); got != "pbv(alpha=0.8 alpha0=0.5)" {
		t.Errorf("String = %q", got)
	}
}

func TestSpec_Stochastic(t *testing.T) {
	if (learner.Spec{Kind: learner.KindXSit}).Stochastic() {
		t.Error("xsit is deterministic")
	}
	if !(learner.Spec{Kind: learner.KindPBV}).Stochastic() {
		t.Error("pbv is stochastic")
	}
}

func TestSpec_Clone(t *testing.T) {
	p := pursuit.DefaultParams()
	s := learner.Spec{Kind: learner.KindPursuit, Pursuit: &p}
	c := s.Clone()
	if diff := cmp.Diff(s, c); diff != "" {
		t.Fatalf("Clone (-orig +clone):\n%s", diff)
	}
	c.Pursuit.Threshold = 0.1
	if s.Pursuit.Threshold != pursuit.DefaultParams().Threshold {
		t.Errorf("clone shares params with original: tau = %v", s.Pursuit.Threshold)
	}
	if got := (learner.Spec{Kind: learner.KindXSit}).Clone(); got.XSit != nil || got.Pursuit != nil || got.PBV != nil {
		t.Errorf("Clone of bare spec = %+v, want no params", got)
	}
}
