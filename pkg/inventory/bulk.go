package inventory

import (
	"context"

	"foodflow/domain"

	"golang.org/x/sync/errgroup"
)

const defaultBulkConcurrency = 4

type BulkResult struct {
	Succeeded []string
	Failed    []domain.BulkFailure
}

// runBulk calls fn once per id with at most limit calls in flight. A failing
// id never stops the others. Results keep the order of ids.
func runBulk(ctx context.Context, ids []string, limit int, fn func(ctx context.Context, id string) error) BulkResult {
	if limit <= 0 {
		limit = defaultBulkConcurrency
	}

	errs := make([]error, len(ids))
	var g errgroup.Group
	g.SetLimit(limit)
	for i, id := range ids {
		i, id := i, id // per-iteration copies; module targets go 1.21 loop semantics
		g.Go(func() error {
			errs[i] = fn(ctx, id)
			return nil
		})
	}
	_ = g.Wait()

	res := BulkResult{
		Succeeded: make([]string, 0, len(ids)),
		Failed:    make([]domain.BulkFailure, 0),
	}
	for i, id := range ids {
		if errs[i] != nil {
			res.Failed = append(res.Failed, domain.BulkFailure{ID: id, Error: errs[i].Error()})
			continue
		}
		res.Succeeded = append(res.Succeeded, id)
	}
	return res
}
