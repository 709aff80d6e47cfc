package render

import (
	"sort"

	"github.com/hupe1980/diorama/fields"
	"github.com/hupe1980/diorama/perspective"
)

// DefaultMaxCategories is the default cap on discrete categories
// before the remainder collapses into the Other bucket.
const DefaultMaxCategories = 20

// Options configures the planner.
type Options struct {
	// MaxCategories caps the number of discrete categories retained
	// verbatim per perspective. Zero means DefaultMaxCategories.
	MaxCategories int
	// Palette overrides the default qualitative palette.
	Palette []string
}

// PlanPerspectives converts an ordered list of coloring perspectives
// into drawable groups plus the visibility/offset table.
//
// Only the groups of the first perspective start visible. Perspectives
// that contribute zero groups (numeric with no valid values) consume
// no group range and are skipped in the toggle table, but remain named
// perspectives for the caller's own tracking.
func PlanPerspectives(persps []perspective.Perspective, opts Options) *Plan {
	maxCats := opts.MaxCategories
	if maxCats <= 0 {
		maxCats = DefaultMaxCategories
	}
	palette := opts.Palette
	if len(palette) == 0 {
		palette = Palette
	}

	plan := &Plan{}
	for i, p := range persps {
		visible := i == 0

		var groups []DrawableGroup
		if p.Kind == fields.Numeric {
			groups = planNumeric(&p, visible)
		} else {
			groups = planDiscrete(&p, maxCats, palette, visible)
		}
		if len(groups) == 0 {
			continue
		}

		start := len(plan.Groups)
		plan.Groups = append(plan.Groups, groups...)
		plan.Toggles = append(plan.Toggles, Toggle{
			Label: p.Name,
			Start: start,
			End:   len(plan.Groups),
		})
	}
	return plan
}

// planDiscrete emits one group per retained category.
//
// When the distinct count exceeds the cap, the most frequent cap
// values are kept verbatim and every other value is relabeled to the
// Other bucket before recounting. Retained categories sort by count
// descending with label ascending as tie-break; Other always sorts
// last regardless of its count.
func planDiscrete(p *perspective.Perspective, maxCats int, palette []string, visible bool) []DrawableGroup {
	labels := p.Labels
	counts := countLabels(labels)

	if len(counts) > maxCats {
		top := topLabels(counts, maxCats)
		relabeled := make([]string, len(labels))
		for i, l := range labels {
			if _, ok := top[l]; ok {
				relabeled[i] = l
			} else {
				relabeled[i] = OtherLabel
			}
		}
		labels = relabeled
		counts = countLabels(labels)
	}

	categories := make([]string, 0, len(counts))
	for l := range counts {
		categories = append(categories, l)
	}
	sort.Slice(categories, func(i, j int) bool {
		a, b := categories[i], categories[j]
		if (a == OtherLabel) != (b == OtherLabel) {
			return b == OtherLabel
		}
		if counts[a] != counts[b] {
			return counts[a] > counts[b]
		}
		return a < b
	})

	groups := make([]DrawableGroup, 0, len(categories))
	for idx, cat := range categories {
		var color string
		switch {
		case len(p.ColorMap) > 0:
			color = p.ColorMap[cat]
			if color == "" {
				color = OtherColor
			}
		case cat == OtherLabel:
			color = OtherColor
		default:
			color = palette[idx%len(palette)]
		}

		indices := make([]int, 0, counts[cat])
		for i, l := range labels {
			if l == cat {
				indices = append(indices, i)
			}
		}
		groups = append(groups, DrawableGroup{
			Indices: indices,
			Label:   cat,
			Color:   color,
			Visible: visible,
		})
	}
	return groups
}

// planNumeric emits at most one group spanning all indices with a
// usable value, carrying the color range (caller bounds, else the
// observed min/max). All-null perspectives emit zero groups.
func planNumeric(p *perspective.Perspective, visible bool) []DrawableGroup {
	indices := make([]int, 0, len(p.Numbers))
	values := make([]float64, 0, len(p.Numbers))
	for i, ok := range p.Valid {
		if ok {
			indices = append(indices, i)
			values = append(values, p.Numbers[i])
		}
	}
	if len(indices) == 0 {
		return nil
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if p.Min != nil {
		lo = *p.Min
	}
	if p.Max != nil {
		hi = *p.Max
	}

	scale := p.Scale
	if scale == "" {
		scale = perspective.DefaultScale
	}
	title := p.ScaleTitle
	if title == "" {
		title = p.Name
	}

	return []DrawableGroup{{
		Indices:    indices,
		Label:      p.Name,
		Visible:    visible,
		Scale:      scale,
		ScaleTitle: title,
		Min:        lo,
		Max:        hi,
		Values:     values,
	}}
}

func countLabels(labels []string) map[string]int {
	counts := make(map[string]int)
	for _, l := range labels {
		counts[l]++
	}
	return counts
}

// topLabels returns the n most frequent labels, breaking count ties by
// label order so capping is deterministic.
func topLabels(counts map[string]int, n int) map[string]struct{} {
	all := make([]string, 0, len(counts))
	for l := range counts {
		all = append(all, l)
	}
	sort.Slice(all, func(i, j int) bool {
		if counts[all[i]] != counts[all[j]] {
			return counts[all[i]] > counts[all[j]]
		}
		return all[i] < all[j]
	})
	top := make(map[string]struct{}, n)
	for _, l := range all[:n] {
		top[l] = struct{}{}
	}
	return top
}
