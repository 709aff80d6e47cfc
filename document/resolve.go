package document

import "strings"

// MaxDepth bounds path and document nesting. Inputs are externally
// supplied, so traversal depth is capped rather than trusted.
const MaxDepth = 64

// Resolve walks a dot-separated field path through nested objects.
//
// It returns the absent sentinel when a segment is missing, when the
// current value is not an object, or when the path exceeds MaxDepth.
// Resolve never fails: "present with null" resolves to a null Value,
// which is distinct from absent. Arrays are opaque leaves and are not
// traversed. Complexity is O(depth).
func Resolve(doc Document, path string) Value {
	segments := strings.Split(path, ".")
	if len(segments) > MaxDepth {
		return Absent()
	}

	current := doc
	for i, seg := range segments {
		v, ok := current[seg]
		if !ok {
			return Absent()
		}
		if i == len(segments)-1 {
			return v
		}
		if v.Kind != KindObject {
			return Absent()
		}
		current = v.O
	}
	return Absent()
}
