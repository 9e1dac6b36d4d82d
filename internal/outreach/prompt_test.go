package outreach

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePrompt(t *testing.T) {
	cases := []struct {
		name string
		text string
		want PromptFields
	}{
		{
			name: "both fields",
			text: "Prospect Name: Sarah\nTone: Friendly\n",
			want: PromptFields{Tone: "friendly", ToneFound: true, Name: "Sarah", NameFound: true},
		},
		{
			name: "placeholder name",
			text: "Prospect Name: Name\nTone: direct\n",
			want: PromptFields{Tone: "direct", ToneFound: true},
		},
		{
			name: "blank name",
			text: "Prospect Name:  \nTone: direct\n",
			want: PromptFields{Tone: "direct", ToneFound: true},
		},
		{
			name: "nothing",
			text: "hello there",
			want: PromptFields{},
		},
		{
			name: "indented form output",
			text: "\n      Prospect Name: Jo Lee\r\n      Tone: authority  \n",
			want: PromptFields{Tone: "authority", ToneFound: true, Name: "Jo Lee", NameFound: true},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParsePrompt(tc.text))
		})
	}
}

func TestPromptText(t *testing.T) {
	req := Request{Messages: []Turn{
		{Role: "system", Content: "sys"},
		{Role: "user", Content: "first user"},
		{Role: "user", Content: "second user"},
	}}
	assert.Equal(t, "first user", req.PromptText())

	assert.Equal(t, "sys", Request{Messages: []Turn{{Role: "system", Content: "sys"}}}.PromptText())
	assert.Equal(t, "", Request{}.PromptText())
}

func TestBuildPromptRoundTrip(t *testing.T) {
	text := BuildPrompt(Brief{
		ProspectName:       "Sarah",
		ProspectBio:        "Founder of a design studio",
		ServiceDescription: "Outreach automation",
		OutreachGoal:       "book_call",
		Tone:               "friendly",
	})
	assert.Equal(t, PromptFields{Tone: "friendly", ToneFound: true, Name: "Sarah", NameFound: true}, ParsePrompt(text))
	assert.Contains(t, text, "My Service Description:\nOutreach automation\n")

	anonymous := ParsePrompt(BuildPrompt(Brief{Tone: "direct"}))
	assert.False(t, anonymous.HasName())
	assert.Equal(t, "direct", anonymous.Tone)
}

func TestNewRequest(t *testing.T) {
	req := NewRequest("hello")
	assert.Equal(t, "hello", req.PromptText())
	assert.Equal(t, "user", req.Messages[0].Role)
}
