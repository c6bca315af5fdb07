package experiment

import (
	"encoding/json"
	"fmt"

	"wordlearn/internal/display"
	"wordlearn/internal/format"
)

// RenderSummaries tabulates results, one row per run. A Data column is
// added when any result belongs to a train/test split.
func RenderSummaries(mode format.Mode, results []*Result) string {
	split := false
	for _, r := range results {
		if r.Split != "" {
			split = true
		}
	}
	header := []string{"Learner", "Order", "Trials", "Precision", "Recall", "F1", "Time"}
	if split {
		header = append([]string{header[0], "Data"}, header[1:]...)
	}
	t := format.NewTable(mode)
	t.Header(header...)
	for _, r := range results {
		row := []any{r.Spec.String(), display.Order(r.Shuffled), len(r.Trials),
			format.MeanStd(r.Summary.Precision.Mean, r.Summary.Precision.Std),
			format.MeanStd(r.Summary.Recall.Mean, r.Summary.Recall.Std),
			format.MeanStd(r.Summary.F1.Mean, r.Summary.F1.Std),
			format.Duration(r.Elapsed)}
		if split {
			row = append([]any{row[0], r.Split}, row[1:]...)
		}
		t.Row(row...)
	}
	if split {
		t.Align(format.AlignRight, 4, 5, 6, 7, 8)
	} else {
		t.Align(format.AlignRight, 3, 4, 5, 6, 7)
	}
	return t.String()
}

// RenderTrials tabulates the individual trials of one run.
func RenderTrials(mode format.Mode, r *Result) string {
	t := format.NewTable(mode)
	t.Header("Trial", "Words", "Precision", "Recall", "F1")
	for _, tr := range r.Trials {
		t.Row(tr.Index, tr.Words, format.Score(tr.Metrics.Precision),
			format.Score(tr.Metrics.Recall), format.Score(tr.Metrics.F1))
	}
	t.Align(format.AlignRight, 1, 2, 3, 4, 5)
	return t.String()
}

// RenderOptimize shows the best candidates of a grid search, at most top
// rows, ranked by mean F1 with grid order breaking ties.
func RenderOptimize(mode format.Mode, res *OptimizeResult, top int) string {
	ranked := make([]Candidate, len(res.Candidates))
	copy(ranked, res.Candidates)
	sortCandidates(ranked)
	if top > 0 && len(ranked) > top {
		ranked = ranked[:top]
	}
	t := format.NewTable(mode)
	t.Header("Rank", "Candidate", "Precision", "Recall", "F1")
	for i, c := range ranked {
		t.Row(i+1, c.Spec.String(),
			format.MeanStd(c.Summary.Precision.Mean, c.Summary.Precision.Std),
			format.MeanStd(c.Summary.Recall.Mean, c.Summary.Recall.Std),
			format.MeanStd(c.Summary.F1.Mean, c.Summary.F1.Std))
	}
	t.Footer("", fmt.Sprintf("%d candidates", len(res.Candidates)), "", "", format.Duration(res.Elapsed))
	t.Align(format.AlignRight, 1, 3, 4, 5)
	return t.String()
}

// RenderJSON marshals v with indentation.
func RenderJSON(v any) (string, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal results: %w", err)
	}
	return string(b) + "\n", nil
}
