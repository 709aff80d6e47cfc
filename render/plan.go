package render

// DrawableGroup is one renderable, homogeneous subset of points.
//
// Discrete perspectives produce one group per retained category with a
// fixed Color. Numeric perspectives produce at most one group carrying
// a color scale and per-index scale values instead of a fixed color.
type DrawableGroup struct {
	// Indices are the point indices belonging to the group, ascending.
	Indices []int
	// Label is the display name (category value, or the perspective
	// name for numeric groups).
	Label string
	// Color is the fixed group color (discrete groups only).
	Color string
	// Visible is the initial visibility of the group.
	Visible bool

	// Numeric-group fields.

	// Scale is the color scale name; empty for discrete groups.
	Scale string
	// ScaleTitle is the color bar label.
	ScaleTitle string
	// Min and Max bound the color range.
	Min float64
	Max float64
	// Values are the per-index scale values, aligned with Indices.
	Values []float64
}

// Toggle maps one surfaced perspective to the contiguous range of
// group indices it owns, for UI switching between perspectives.
type Toggle struct {
	// Label is the perspective name.
	Label string
	// Start and End delimit the half-open group index range
	// [Start, End) owned by the perspective.
	Start int
	End   int
}

// Plan is the planner output handed to the rendering backend: the
// ordered drawable groups plus the visibility/offset table.
//
// Perspectives are assigned consecutive group ranges in perspective
// order. Only the first perspective's groups start visible. A
// perspective contributing zero groups consumes no range and does not
// appear in Toggles.
type Plan struct {
	Groups  []DrawableGroup
	Toggles []Toggle
}

// VisibleFor returns the per-group visibility vector that shows
// exactly the groups owned by the given toggle. The rendering backend
// applies it when the user switches perspectives.
func (p *Plan) VisibleFor(t Toggle) []bool {
	vis := make([]bool, len(p.Groups))
	for i := t.Start; i < t.End && i < len(vis); i++ {
		vis[i] = true
	}
	return vis
}
