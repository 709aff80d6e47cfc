// Package render plans drawable groups from coloring perspectives.
//
// The planner is renderer-agnostic: it turns an ordered list of
// perspectives into DrawableGroups (point indices, label, color,
// initial visibility) plus a toggle table mapping each surfaced
// perspective to its contiguous group range. A rendering backend
// consumes the plan to build one figure with one interactive control
// per surfaced perspective.
package render
