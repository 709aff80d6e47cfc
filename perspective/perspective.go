// Package perspective builds named, typed coloring specifications from
// document fields.
//
// A Perspective is one way of coloring the point set: discrete (one
// label per point) or numeric (one float per point, with a validity
// mask for missing data). Build produces one perspective per requested
// field path, preserving request order.
package perspective

import (
	"fmt"

	"github.com/hupe1980/diorama/document"
	"github.com/hupe1980/diorama/fields"
)

// NullLabel is the display label substituted for null and absent
// values in discrete perspectives.
const NullLabel = "N/A"

// DefaultScale is the color scale assigned to numeric perspectives
// when the caller does not override it.
const DefaultScale = "Viridis"

// Perspective is one named way of coloring the point set.
//
// Invariant: the per-point sequences (Labels for discrete, Numbers and
// Valid for numeric) always have exactly one entry per document.
type Perspective struct {
	// Name is the field path the perspective was built from.
	Name string
	// Kind selects discrete or numeric rendering.
	Kind fields.ColorKind

	// Labels holds the per-point category labels (discrete only).
	// Null and absent values carry NullLabel.
	Labels []string

	// Numbers holds the per-point scale values (numeric only).
	// Entries are meaningful only where Valid is true; null, absent
	// and non-numeric values are invalid, never an error.
	Numbers []float64
	Valid   []bool

	// ColorMap optionally fixes category colors (discrete only).
	ColorMap map[string]string

	// Scale is the color scale name (numeric only).
	Scale string
	// ScaleTitle is the color bar label; defaults to Name.
	ScaleTitle string
	// Min and Max optionally pin the numeric color range. When nil the
	// planner uses the observed bounds.
	Min *float64
	Max *float64
}

// Options configures Build.
type Options struct {
	// Overrides forces the color kind for specific field paths instead
	// of classifying their values.
	Overrides map[string]fields.ColorKind
	// DiscreteThreshold is the cardinality threshold for Classify.
	// Zero means fields.DefaultDiscreteThreshold.
	DiscreteThreshold int
}

// Build produces one Perspective per requested field path, preserving
// request order. Values are extracted per document (absent mapped to
// null), the kind is taken from an override when present and inferred
// otherwise, and values are projected into the kind's representation.
func Build(docs []document.Document, paths []string, opts Options) []Perspective {
	threshold := opts.DiscreteThreshold
	if threshold <= 0 {
		threshold = fields.DefaultDiscreteThreshold
	}

	out := make([]Perspective, 0, len(paths))
	for _, path := range paths {
		values := fields.Values(docs, path)

		kind, ok := opts.Overrides[path]
		if !ok {
			kind = fields.Classify(values, threshold)
		}

		p := Perspective{Name: path, Kind: kind}
		switch kind {
		case fields.Numeric:
			p.Numbers, p.Valid = projectNumeric(values)
			p.Scale = DefaultScale
			p.ScaleTitle = path
		default:
			p.Labels = projectDiscrete(values)
		}
		out = append(out, p)
	}
	return out
}

// Len returns the number of per-point values carried by the
// perspective.
func (p *Perspective) Len() int {
	if p.Kind == fields.Numeric {
		return len(p.Numbers)
	}
	return len(p.Labels)
}

// Validate checks the per-point length invariant against a document
// count.
func (p *Perspective) Validate(docs int) error {
	if n := p.Len(); n != docs {
		return fmt.Errorf("perspective %q carries %d values for %d documents", p.Name, n, docs)
	}
	if p.Kind == fields.Numeric && len(p.Valid) != len(p.Numbers) {
		return fmt.Errorf("perspective %q has mismatched validity mask", p.Name)
	}
	return nil
}

func projectDiscrete(values []document.Value) []string {
	labels := make([]string, len(values))
	for i, v := range values {
		if v.IsNull() || v.IsAbsent() {
			labels[i] = NullLabel
			continue
		}
		labels[i] = v.Text()
	}
	return labels
}

func projectNumeric(values []document.Value) ([]float64, []bool) {
	numbers := make([]float64, len(values))
	valid := make([]bool, len(values))
	for i, v := range values {
		// Booleans and everything non-numeric become invalid entries,
		// not errors.
		if f, ok := v.AsFloat64(); ok {
			numbers[i] = f
			valid[i] = true
		}
	}
	return numbers, valid
}
