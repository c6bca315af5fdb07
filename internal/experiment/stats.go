package experiment

import "math"

// Stat is a mean and population standard deviation.
type Stat struct {
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
}

// Summary reduces a batch of trials per metric.
type Summary struct {
	Precision Stat `json:"precision"`
	Recall    Stat `json:"recall"`
	F1        Stat `json:"f1"`
}

// Summarize reduces trials. An empty batch summarizes to zeros.
func Summarize(trials []TrialResult) Summary {
	p := make([]float64, len(trials))
	r := make([]float64, len(trials))
	f := make([]float64, len(trials))
	for i, t := range trials {
		p[i], r[i], f[i] = t.Metrics.Precision, t.Metrics.Recall, t.Metrics.F1
	}
	return Summary{Precision: stat(p), Recall: stat(r), F1: stat(f)}
}

func stat(vals []float64) Stat {
	if len(vals) == 0 {
		return Stat{}
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	mean := sum / float64(len(vals))
	var sq float64
	for _, v := range vals {
		sq += (v - mean) * (v - mean)
	}
	return Stat{Mean: mean, Std: math.Sqrt(sq / float64(len(vals)))}
}
