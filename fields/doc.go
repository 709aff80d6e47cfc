// Package fields discovers which document attributes are worth
// displaying and how to treat them.
//
// Paths walks a collection and returns every dot-notation leaf path;
// Coverage and TopPaths rank them by how many documents actually carry
// them; Classify decides discrete-vs-numeric treatment for a field's
// extracted values.
package fields
