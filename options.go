package diorama

import (
	"log/slog"

	"github.com/hupe1980/diorama/fields"
	"github.com/hupe1980/diorama/query"
	"github.com/hupe1980/diorama/reduce"
	"github.com/hupe1980/diorama/render"
)

type options struct {
	rawQuery          map[string]any
	compiledQuery     *query.Query
	colorBy           []string
	overrides         map[string]string
	discreteThreshold int
	maxCategories     int
	components        int
	reducer           reduce.Reducer
	hoverMaxLen       int
	parallelism       int
	topPathLimit      int
	logger            *Logger
	metrics           MetricsCollector
}

// Option configures Explore behavior.
type Option func(*options)

// WithQuery filters documents (and, in lockstep, points) with a
// document-shaped query. See the query package for the DSL.
func WithQuery(q map[string]any) Option {
	return func(o *options) {
		o.rawQuery = q
	}
}

// WithCompiledQuery filters with an already-compiled query, letting
// callers reuse one compilation across requests.
func WithCompiledQuery(q *query.Query) Option {
	return func(o *options) {
		o.compiledQuery = q
	}
}

// WithColorBy selects the field paths to color by, in order. Without
// it the pipeline auto-discovers the top fields by coverage.
func WithColorBy(paths ...string) Option {
	return func(o *options) {
		o.colorBy = paths
	}
}

// WithColorKindOverrides forces specific field paths to "discrete" or
// "numeric" instead of classifying their values. Unknown literals are
// a caller error.
func WithColorKindOverrides(overrides map[string]string) Option {
	return func(o *options) {
		o.overrides = overrides
	}
}

// WithDiscreteThreshold sets the cardinality threshold below which an
// all-numeric field is still treated as discrete.
// Default is fields.DefaultDiscreteThreshold.
func WithDiscreteThreshold(threshold int) Option {
	return func(o *options) {
		o.discreteThreshold = threshold
	}
}

// WithMaxCategories caps the discrete categories retained per
// perspective; the remainder collapses into "Other".
// Default is render.DefaultMaxCategories.
func WithMaxCategories(n int) Option {
	return func(o *options) {
		o.maxCategories = n
	}
}

// WithReducer configures the external dimensionality reduction
// routine, invoked when points carry more than 3 dimensions.
func WithReducer(r reduce.Reducer) Option {
	return func(o *options) {
		o.reducer = r
	}
}

// WithComponents sets the reduction target dimensionality (2 or 3).
// Ignored when points already have 2 or 3 dimensions. Default 2.
func WithComponents(n int) Option {
	return func(o *options) {
		o.components = n
	}
}

// WithHoverMaxLen sets the truncation limit for generated hover text.
// Default is render.DefaultHoverMaxLen.
func WithHoverMaxLen(n int) Option {
	return func(o *options) {
		o.hoverMaxLen = n
	}
}

// WithParallelism bounds the worker count for parallel filtering.
// Zero leaves the fan-out unbounded.
func WithParallelism(workers int) Option {
	return func(o *options) {
		o.parallelism = workers
	}
}

// WithTopPathLimit bounds how many auto-discovered field paths are
// surfaced when no WithColorBy is given. Default 15.
func WithTopPathLimit(n int) Option {
	return func(o *options) {
		o.topPathLimit = n
	}
}

// WithLogger configures structured logging. Pass nil to disable.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets
// it. Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetricsCollector configures a metrics collector.
// Pass nil to disable metrics collection.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metrics = mc
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		discreteThreshold: fields.DefaultDiscreteThreshold,
		maxCategories:     render.DefaultMaxCategories,
		components:        2,
		hoverMaxLen:       render.DefaultHoverMaxLen,
		topPathLimit:      defaultTopPathLimit,
		logger:            NoopLogger(),
		metrics:           NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
