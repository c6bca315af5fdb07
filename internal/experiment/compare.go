package experiment

import (
	"context"
	"fmt"

	"wordlearn/internal/learner"
)

// Compare runs every spec over base's curriculum in order. With
// withShuffled, each spec is then run again on per-trial shuffled copies,
// which shows how order-sensitive each learner is.
func Compare(ctx context.Context, base Config, specs []learner.Spec, withShuffled bool) ([]*Result, error) {
	orders := []bool{false}
	if withShuffled {
		orders = append(orders, true)
	}
	var out []*Result
	for _, shuffle := range orders {
		for _, s := range specs {
			cfg := base
			cfg.Spec = s
			cfg.Shuffle = shuffle
			res, err := Run(ctx, cfg)
			if err != nil {
				return nil, fmt.Errorf("compare %s: %w", s.Kind, err)
			}
			out = append(out, res)
		}
	}
	return out, nil
}
