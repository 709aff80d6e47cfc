package codec

import (
	"encoding/json"
)

// JSON is the standard-library JSON codec.
//
// Use it when portability matters more than throughput. Documents are
// typed values with natural JSON forms, so both built-in codecs
// produce interchangeable bytes.
type JSON struct{}

// Marshal encodes the value to JSON.
func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal decodes the JSON data into v.
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Name returns the unique name of the codec ("json").
func (JSON) Name() string { return "json" }

// Default is the default codec used for dataset snapshots.
//
// Existing snapshots are self-describing (they store the codec name in
// their header), so changing the default never breaks old files.
var Default Codec = GoJSON{}
