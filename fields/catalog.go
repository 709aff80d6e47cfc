package fields

import (
	"sort"

	"github.com/hupe1980/diorama/document"
)

// Paths discovers all unique dot-notation leaf field paths across a
// document collection, in lexicographic order.
//
// A key expands one level deeper iff its value is a non-empty object.
// Everything else terminates a path: scalars, nulls, arrays and empty
// objects are all leaves.
func Paths(docs []document.Document) []string {
	set := make(map[string]struct{})
	for _, doc := range docs {
		walk(doc, "", 0, set)
	}
	out := make([]string, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

func walk(obj document.Document, prefix string, depth int, set map[string]struct{}) {
	if depth >= document.MaxDepth {
		return
	}
	for key, v := range obj {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		if v.Kind == document.KindObject && len(v.O) > 0 {
			walk(v.O, path, depth+1, set)
		} else {
			set[path] = struct{}{}
		}
	}
}

// Coverage returns the fraction of documents for which the path
// resolves to anything other than the absent sentinel. The coverage of
// an empty collection is 0.
func Coverage(docs []document.Document, path string) float64 {
	if len(docs) == 0 {
		return 0
	}
	count := 0
	for _, doc := range docs {
		if !document.Resolve(doc, path).IsAbsent() {
			count++
		}
	}
	return float64(count) / float64(len(docs))
}

// TopPaths ranks all discovered paths by coverage descending, with
// lexicographic path order as the tie-break, truncated to limit.
func TopPaths(docs []document.Document, limit int) []string {
	paths := Paths(docs)

	coverage := make(map[string]float64, len(paths))
	for _, p := range paths {
		coverage[p] = Coverage(docs, p)
	}
	sort.SliceStable(paths, func(i, j int) bool {
		ci, cj := coverage[paths[i]], coverage[paths[j]]
		if ci != cj {
			return ci > cj
		}
		return paths[i] < paths[j]
	})

	if limit >= 0 && len(paths) > limit {
		paths = paths[:limit]
	}
	return paths
}

// Values extracts the value at the path from each document, in order.
// The absent sentinel is mapped to null, so downstream consumers see a
// uniform "no data here" marker.
func Values(docs []document.Document, path string) []document.Value {
	out := make([]document.Value, len(docs))
	for i, doc := range docs {
		v := document.Resolve(doc, path)
		if v.IsAbsent() {
			v = document.Null()
		}
		out[i] = v
	}
	return out
}
