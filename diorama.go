package diorama

import (
	"context"
	"time"

	"github.com/hupe1980/diorama/document"
	"github.com/hupe1980/diorama/fields"
	"github.com/hupe1980/diorama/perspective"
	"github.com/hupe1980/diorama/query"
	"github.com/hupe1980/diorama/reduce"
	"github.com/hupe1980/diorama/render"
)

// defaultTopPathLimit bounds auto-discovered coloring fields.
const defaultTopPathLimit = 15

// Result is the outcome of one pipeline run. All structures are
// request-scoped; nothing persists across calls.
type Result struct {
	// Points are the (possibly reduced, possibly filtered) 2D/3D
	// points, aligned with Documents.
	Points [][]float32
	// Documents are the selected documents in original relative order.
	Documents []document.Document
	// Mask is the selection vector over the ORIGINAL collection;
	// nil when no query was applied.
	Mask *query.Mask
	// Perspectives are the typed coloring specifications, in request
	// order, including ones that planned to zero groups.
	Perspectives []perspective.Perspective
	// Hover is the per-point display text, aligned with Points.
	Hover []string
	// Plan is the drawable-group plan handed to the renderer. Always
	// well-formed; empty when nothing survived filtering.
	Plan *render.Plan
	// Method is the reduction method label, for axis titles.
	Method string
}

// Explore runs the full data-layer pipeline: validate shapes, reduce
// points with more than 3 dimensions, filter documents and points in
// lockstep, build coloring perspectives for the chosen (or
// auto-discovered) field paths, and plan drawable groups.
//
// An empty outcome (no matching documents, or no usable fields) is a
// valid terminal state and yields a well-formed empty Plan, not an
// error. Structural problems (shape mismatch, malformed query, bad
// color-kind literal) fail immediately.
func Explore(ctx context.Context, points [][]float32, docs []document.Document, optFns ...Option) (*Result, error) {
	o := applyOptions(optFns)

	if err := validateShape(points, len(docs)); err != nil {
		return nil, err
	}

	res := &Result{Plan: &render.Plan{}}
	if o.reducer != nil {
		res.Method = o.reducer.Name()
	}
	if len(docs) == 0 {
		return res, nil
	}

	// Reduce before filtering so point positions stay stable across
	// different filters on the same collection.
	lowPoints := points
	if len(points[0]) > 3 {
		start := time.Now()
		reduced, err := reduce.Apply(ctx, o.reducer, points, o.components)
		o.logger.LogReduce(ctx, res.Method, len(points), len(points[0]), o.components, time.Since(start), err)
		o.metrics.RecordReduce(len(points), o.components, time.Since(start), err)
		if err != nil {
			return nil, err
		}
		lowPoints = reduced
	}

	selectedDocs, selectedPoints := docs, lowPoints
	q := o.compiledQuery
	if q == nil && o.rawQuery != nil {
		var err error
		q, err = query.Compile(o.rawQuery)
		if err != nil {
			return nil, err
		}
	}
	if q != nil {
		start := time.Now()
		filtered, mask, err := q.FilterParallel(ctx, docs, o.parallelism)
		matched := 0
		if mask != nil {
			matched = mask.Count()
		}
		o.logger.LogFilter(ctx, matched, len(docs), time.Since(start), err)
		o.metrics.RecordFilter(matched, len(docs), time.Since(start), err)
		if err != nil {
			return nil, err
		}
		selectedDocs = filtered
		selectedPoints = mask.SelectRows(lowPoints)
		res.Mask = mask
	}

	res.Points = selectedPoints
	res.Documents = selectedDocs
	if len(selectedDocs) == 0 {
		return res, nil
	}

	colorBy := o.colorBy
	if len(colorBy) == 0 {
		colorBy = fields.TopPaths(selectedDocs, o.topPathLimit)
	}
	if len(colorBy) == 0 {
		return res, nil
	}

	overrides, err := parseOverrides(o.overrides)
	if err != nil {
		return nil, err
	}

	res.Perspectives = perspective.Build(selectedDocs, colorBy, perspective.Options{
		Overrides:         overrides,
		DiscreteThreshold: o.discreteThreshold,
	})
	res.Hover = render.HoverText(selectedDocs, o.hoverMaxLen)

	start := time.Now()
	res.Plan = render.PlanPerspectives(res.Perspectives, render.Options{
		MaxCategories: o.maxCategories,
	})
	o.logger.LogPlan(ctx, len(res.Perspectives), len(res.Plan.Groups), time.Since(start))
	o.metrics.RecordPlan(len(res.Perspectives), len(res.Plan.Groups), time.Since(start))

	return res, nil
}

func parseOverrides(raw map[string]string) (map[string]fields.ColorKind, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make(map[string]fields.ColorKind, len(raw))
	for path, literal := range raw {
		kind, err := fields.ParseColorKind(literal)
		if err != nil {
			return nil, err
		}
		out[path] = kind
	}
	return out, nil
}
