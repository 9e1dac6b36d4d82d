package outreach

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// SystemPrompt is the persona and task framing sent with every provider call.
const SystemPrompt = "You are OutreachIQ, a world-class cold outreach copywriter. Your goal is to write high-converting DMs."

// Psychology explains why the generated sequence should work on the prospect.
type Psychology struct {
	PainPoint string `json:"painPoint"`
	Authority string `json:"authority"`
	Curiosity string `json:"curiosity"`
	CTA       string `json:"cta"`
}

// Result is the structured DM sequence returned by both the provider path and the fallback path.
type Result struct {
	Hook       string     `json:"hook"`
	Main       string     `json:"main"`
	FollowUp1  string     `json:"followUp1"`
	FollowUp2  string     `json:"followUp2"`
	Psychology Psychology `json:"psychology"`
	IsMock     bool       `json:"isMock"`
}

// Field describes one string property of the schema.
type Field struct {
	Name        string
	Description string
}

// Schema is the structural contract a provider must satisfy. It is shared by every provider
// binding so the wire schema and the local validation never drift apart.
type Schema struct {
	Name       string
	Fields     []Field
	Psychology []Field
}

// ResultSchema is the schema of Result without the isMock flag.
var ResultSchema = Schema{
	Name: "OutreachSequence",
	Fields: []Field{
		{Name: "hook", Description: "Attention grabbing opening line under 15 words"},
		{Name: "main", Description: "The main core message under 50 words"},
		{Name: "followUp1", Description: "A value-based follow-up for 2 days later"},
		{Name: "followUp2", Description: "A 'break-up' or final nudge message for 5 days later"},
	},
	Psychology: []Field{
		{Name: "painPoint"},
		{Name: "authority"},
		{Name: "curiosity"},
		{Name: "cta"},
	},
}

// JSONSchema renders the schema as a JSON Schema object suitable for strict structured output.
func (s Schema) JSONSchema() map[string]any {
	psychology := objectSchema(s.Psychology)
	root := objectSchema(s.Fields)
	props := root["properties"].(map[string]any)
	props["psychology"] = psychology
	root["required"] = append(root["required"].([]string), "psychology")
	return root
}

func objectSchema(fields []Field) map[string]any {
	props := make(map[string]any, len(fields))
	required := make([]string, 0, len(fields))
	for _, f := range fields {
		prop := map[string]any{"type": "string"}
		if f.Description != "" {
			prop["description"] = f.Description
		}
		props[f.Name] = prop
		required = append(required, f.Name)
	}
	return map[string]any{
		"type":                 "object",
		"properties":           props,
		"required":             required,
		"additionalProperties": false,
	}
}

// SchemaError reports a provider payload that does not satisfy the schema.
type SchemaError struct {
	Field  string
	Reason string
	Shape  string
}

func (e *SchemaError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("schema validation: %s (payload=%s)", e.Reason, e.Shape)
	}
	return fmt.Sprintf("schema validation: field %q %s (payload=%s)", e.Field, e.Reason, e.Shape)
}

// Decode parses a provider payload into a Result and validates it against the schema.
// Models sometimes wrap JSON in markdown fences; those are stripped first.
func Decode(raw []byte) (*Result, error) {
	clean := stripFences(raw)

	var generic map[string]any
	if err := json.Unmarshal(clean, &generic); err != nil {
		return nil, &SchemaError{Reason: "payload is not a JSON object", Shape: Shape(clean)}
	}
	if err := ResultSchema.check(generic); err != nil {
		err.Shape = Shape(clean)
		return nil, err
	}

	var res Result
	if err := json.Unmarshal(clean, &res); err != nil {
		return nil, &SchemaError{Reason: err.Error(), Shape: Shape(clean)}
	}
	res.IsMock = false
	return &res, nil
}

func (s Schema) check(obj map[string]any) *SchemaError {
	if err := checkStrings(obj, s.Fields, ""); err != nil {
		return err
	}
	raw, ok := obj["psychology"]
	if !ok {
		return &SchemaError{Field: "psychology", Reason: "is missing"}
	}
	nested, ok := raw.(map[string]any)
	if !ok {
		return &SchemaError{Field: "psychology", Reason: "must be an object"}
	}
	return checkStrings(nested, s.Psychology, "psychology.")
}

func checkStrings(obj map[string]any, fields []Field, prefix string) *SchemaError {
	for _, f := range fields {
		v, ok := obj[f.Name]
		if !ok {
			return &SchemaError{Field: prefix + f.Name, Reason: "is missing"}
		}
		str, ok := v.(string)
		if !ok {
			return &SchemaError{Field: prefix + f.Name, Reason: "must be a string"}
		}
		if strings.TrimSpace(str) == "" {
			return &SchemaError{Field: prefix + f.Name, Reason: "must not be empty"}
		}
	}
	return nil
}

// Validate checks that every string field of r is non-empty.
func (r Result) Validate() error {
	values := []struct{ name, value string }{
		{"hook", r.Hook},
		{"main", r.Main},
		{"followUp1", r.FollowUp1},
		{"followUp2", r.FollowUp2},
		{"psychology.painPoint", r.Psychology.PainPoint},
		{"psychology.authority", r.Psychology.Authority},
		{"psychology.curiosity", r.Psychology.Curiosity},
		{"psychology.cta", r.Psychology.CTA},
	}
	for _, v := range values {
		if strings.TrimSpace(v.value) == "" {
			return &SchemaError{Field: v.name, Reason: "must not be empty"}
		}
	}
	return nil
}

// Shape summarizes a payload for logs: top-level keys with their JSON types, never the values.
func Shape(raw []byte) string {
	var generic map[string]any
	if err := json.Unmarshal(raw, &generic); err != nil {
		const limit = 64
		s := strings.TrimSpace(string(raw))
		if len(s) > limit {
			s = s[:limit] + "…"
		}
		return fmt.Sprintf("non-object(%q)", s)
	}
	keys := make([]string, 0, len(generic))
	for k, v := range generic {
		keys = append(keys, k+":"+jsonType(v))
	}
	sort.Strings(keys)
	return "{" + strings.Join(keys, ",") + "}"
}

func jsonType(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "bool"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return "unknown"
	}
}

func stripFences(raw []byte) []byte {
	clean := bytes.TrimSpace(raw)
	clean = bytes.TrimPrefix(clean, []byte("```json"))
	clean = bytes.TrimPrefix(clean, []byte("```"))
	clean = bytes.TrimSuffix(clean, []byte("```"))
	return bytes.TrimSpace(clean)
}
