package render

import (
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/hupe1980/diorama/document"
)

// DefaultHoverMaxLen is the default truncation limit for hover text.
const DefaultHoverMaxLen = 500

var hoverEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// HoverText generates HTML hover text for each document: the document
// pretty-printed as JSON, truncated at maxLen characters, escaped and
// reflowed for tooltip rendering (tooltips ignore <pre> whitespace, so
// newlines become <br> and indentation becomes &nbsp;).
//
// maxLen <= 0 means DefaultHoverMaxLen.
func HoverText(docs []document.Document, maxLen int) []string {
	if maxLen <= 0 {
		maxLen = DefaultHoverMaxLen
	}

	out := make([]string, len(docs))
	for i, doc := range docs {
		b, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			// Value marshaling cannot fail for well-formed documents;
			// fall back to an empty object rather than aborting.
			b = []byte("{}")
		}
		text := string(b)
		if len(text) > maxLen {
			// Back the cut point up to a rune boundary so truncation
			// never emits invalid UTF-8.
			cut := maxLen
			for cut > 0 && !utf8.RuneStart(text[cut]) {
				cut--
			}
			text = text[:cut] + "\n..."
		}
		html := hoverEscaper.Replace(text)
		html = strings.ReplaceAll(html, "\n", "<br>")
		html = strings.ReplaceAll(html, "  ", "&nbsp;&nbsp;")
		out[i] = html
	}
	return out
}
