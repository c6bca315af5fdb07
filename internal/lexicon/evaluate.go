package lexicon

// Pair is one (word, meaning) link.
type Pair struct {
	Word    string `json:"word" yaml:"word"`
	Meaning string `json:"meaning" yaml:"meaning"`
}

// GoldStandard is the de-duplicated reference lexicon, in insertion order.
// It is used only for scoring.
type GoldStandard []Pair

// NewGoldStandard drops repeated pairs, keeping first occurrences.
func NewGoldStandard(pairs ...Pair) GoldStandard {
	seen := make(map[Pair]struct{}, len(pairs))
	out := make(GoldStandard, 0, len(pairs))
	for _, p := range pairs {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// Metrics is the precision/recall/F-score triple for one learner run.
type Metrics struct {
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
}

// Evaluate scores lex against gold. An empty lexicon scores (0, 0, 0) and an
// empty gold set scores recall 0; neither is an error. Gold words never
// observed simply do not count as correct.
func Evaluate(lex Lexicon, gold GoldStandard) Metrics {
	hyps := lex.Len()
	if hyps == 0 {
		return Metrics{}
	}
	gold = NewGoldStandard(gold...)
	correct := 0
	for _, p := range gold {
		if lex.Has(p.Word, p.Meaning) {
			correct++
		}
	}
	var m Metrics
	m.Precision = float64(correct) / float64(hyps)
	if len(gold) > 0 {
		m.Recall = float64(correct) / float64(len(gold))
	}
	if m.Precision+m.Recall > 0 {
		m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
	}
	return m
}
