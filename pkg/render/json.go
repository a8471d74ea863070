package render

import (
	"encoding/json"

	"github.com/dkoosis/cpfgen/pkg/pattern"
)

// SchemaVersion is bumped whenever the JSON document changes shape.
const SchemaVersion = "1.0"

// JSON renders patterns as one indented document for scripts and CI.
type JSON struct{}

// NewJSON returns a JSON renderer.
func NewJSON() *JSON { return &JSON{} }

type document struct {
	Version  string    `json:"version"`
	Tool     string    `json:"tool"`
	Patterns []section `json:"patterns"`
}

// section tags each pattern with its type so consumers can decode Data.
type section struct {
	Type pattern.PatternType `json:"type"`
	Data pattern.Pattern     `json:"data"`
}

// Render returns the document followed by a newline. A marshal failure is
// reported as {"error": "..."} rather than dropped.
func (j *JSON) Render(patterns []pattern.Pattern) string {
	doc := document{Version: SchemaVersion, Tool: "cpfgen", Patterns: []section{}}
	for _, p := range patterns {
		doc.Patterns = append(doc.Patterns, section{Type: p.Type(), Data: p})
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		fallback, _ := json.Marshal(map[string]string{"error": err.Error()})
		return string(fallback) + "\n"
	}
	return string(data) + "\n"
}
