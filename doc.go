// Package diorama turns a collection of semi-structured documents plus
// a parallel array of N-dimensional points into a filtered, typed,
// colorable point set ready for rendering.
//
// The pipeline is renderer-agnostic pure computation: documents are
// filtered with a MongoDB-subset query (the matching indices applied
// in lockstep to the point array), displayable fields are discovered
// and classified as discrete or numeric, and each chosen field becomes
// a coloring perspective that plans into drawable groups plus a
// visibility table for UI toggling.
//
//	res, err := diorama.Explore(ctx, points, docs,
//	    diorama.WithQuery(map[string]any{"meta.lang": "go"}),
//	    diorama.WithColorBy("meta.lang", "stars"),
//	)
//	for _, g := range res.Plan.Groups {
//	    // hand indices, label, color to your renderer
//	}
//
// Dimensionality reduction is an external collaborator behind the
// reduce.Reducer interface; points already in 2 or 3 dimensions are
// used as-is. Datasets (documents + points) can be persisted and
// reloaded through the dataset and blobstore packages so the expensive
// reduction runs once.
package diorama
