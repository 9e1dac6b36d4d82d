package outreach

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validPayload = `{
  "hook": "Loved your talk, Sam.",
  "main": "We help agencies book more calls.",
  "followUp1": "Sharing a quick case study.",
  "followUp2": "Closing the loop here.",
  "psychology": {"painPoint": "p", "authority": "a", "curiosity": "c", "cta": "Open to a chat?"}
}`

func TestDecode(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		res, err := Decode([]byte(validPayload))
		require.NoError(t, err)
		assert.Equal(t, "Loved your talk, Sam.", res.Hook)
		assert.Equal(t, "Open to a chat?", res.Psychology.CTA)
		assert.False(t, res.IsMock)
	})

	t.Run("fenced", func(t *testing.T) {
		res, err := Decode([]byte("```json\n" + validPayload + "\n```"))
		require.NoError(t, err)
		assert.Equal(t, "We help agencies book more calls.", res.Main)
	})

	t.Run("isMock from provider is ignored", func(t *testing.T) {
		payload := `{"hook":"h","main":"m","followUp1":"f1","followUp2":"f2","isMock":true,
			"psychology":{"painPoint":"p","authority":"a","curiosity":"c","cta":"x"}}`
		res, err := Decode([]byte(payload))
		require.NoError(t, err)
		assert.False(t, res.IsMock)
	})

	failures := []struct {
		name    string
		payload string
		field   string
	}{
		{"not json", `nope`, ""},
		{"missing field", `{"hook":"h","main":"m","followUp1":"f1","psychology":{}}`, "followUp2"},
		{"wrong type", `{"hook":1,"main":"m","followUp1":"f1","followUp2":"f2","psychology":{}}`, "hook"},
		{"empty string", `{"hook":"  ","main":"m","followUp1":"f1","followUp2":"f2","psychology":{}}`, "hook"},
		{"psychology not object", `{"hook":"h","main":"m","followUp1":"f1","followUp2":"f2","psychology":"x"}`, "psychology"},
		{"nested missing", `{"hook":"h","main":"m","followUp1":"f1","followUp2":"f2","psychology":{"painPoint":"p","authority":"a","curiosity":"c"}}`, "psychology.cta"},
	}
	for _, tc := range failures {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode([]byte(tc.payload))
			require.Error(t, err)
			var schemaErr *SchemaError
			require.True(t, errors.As(err, &schemaErr))
			assert.Equal(t, tc.field, schemaErr.Field)
			assert.NotEmpty(t, schemaErr.Shape)
		})
	}
}

func TestJSONSchema(t *testing.T) {
	schema := ResultSchema.JSONSchema()

	assert.Equal(t, "object", schema["type"])
	assert.Equal(t, false, schema["additionalProperties"])
	assert.ElementsMatch(t, []string{"hook", "main", "followUp1", "followUp2", "psychology"}, schema["required"])

	props := schema["properties"].(map[string]any)
	psychology := props["psychology"].(map[string]any)
	assert.ElementsMatch(t, []string{"painPoint", "authority", "curiosity", "cta"}, psychology["required"])
}

func TestShape(t *testing.T) {
	assert.Equal(t, "{a:number,b:string}", Shape([]byte(`{"b":"x","a":1}`)))
	assert.Contains(t, Shape([]byte(`oops`)), "non-object")
}
