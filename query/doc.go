// Package query implements a MongoDB-subset predicate engine over
// documents.
//
// Queries are document-shaped structures: top-level keys are implicitly
// AND-ed field conditions, with $and/$or/$nor combinators and the
// condition operators $eq, $ne, $gt, $gte, $lt, $lte, $in, $nin,
// $exists, $regex and $not.
//
//	q, err := query.Compile(map[string]any{
//	    "age":          map[string]any{"$gte": 18, "$lt": 65},
//	    "address.city": "Berlin",
//	})
//	filtered, mask := q.Filter(docs)
//
// Compile validates the whole tree up front: an unrecognized operator
// aborts with *OperatorError before any document is examined, so a
// filter never returns a partial result for a malformed query.
//
// The returned Mask is positionally aligned with the input collection
// and can be applied in lockstep to a parallel array of points.
package query
