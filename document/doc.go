// Package document models semi-structured records as typed values.
//
// A Document is an arbitrarily nested mapping from string keys to
// values. Value is a closed tagged variant (null, bool, int, float,
// string, array, object) plus a distinct absent sentinel, so the rest
// of the pipeline can dispatch on kinds without runtime type probing
// and "present with null" stays provably distinguishable from "path
// absent".
//
// Resolve provides dot-notation traversal:
//
//	v := document.Resolve(doc, "address.city")
//	if v.IsAbsent() { ... }
//
// Adapters (FromAny, FromMap) ingest plain map[string]any data, e.g.
// decoded JSON.
package document
