package query

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/diorama/document"
)

// Filter evaluates the query over every document in original order.
//
// The returned mask has the same length as the input; the filtered
// slice preserves the relative order of matches and aliases the input
// documents (documents are immutable, so no copies are made).
func (q *Query) Filter(docs []document.Document) ([]document.Document, *Mask) {
	mask := NewMask(len(docs))
	filtered := make([]document.Document, 0, len(docs))
	for i, doc := range docs {
		if q.Matches(doc) {
			mask.Set(i)
			filtered = append(filtered, doc)
		}
	}
	return filtered, mask
}

// chunk size for parallel evaluation. Matching a single document is
// cheap, so goroutines work on ranges rather than single documents.
const filterChunk = 1024

// FilterParallel is Filter with the match loop fanned out across
// workers. Output order matches input order exactly; the only possible
// error is context cancellation.
//
// Documents are evaluated independently, so this is safe for any
// query. workers <= 0 means one goroutine per chunk, unbounded.
func (q *Query) FilterParallel(ctx context.Context, docs []document.Document, workers int) ([]document.Document, *Mask, error) {
	if len(docs) <= filterChunk {
		filtered, mask := q.Filter(docs)
		return filtered, mask, nil
	}

	bits := make([]bool, len(docs))

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for start := 0; start < len(docs); start += filterChunk {
		end := min(start+filterChunk, len(docs))
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for i := start; i < end; i++ {
				bits[i] = q.Matches(docs[i])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	mask := MaskFromBools(bits)
	filtered := make([]document.Document, 0, mask.Count())
	for i, b := range bits {
		if b {
			filtered = append(filtered, docs[i])
		}
	}
	return filtered, mask, nil
}
