package outreach

import (
	"regexp"
	"strings"
)

// Turn is one message of the conversation sent to a provider.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is an ordered conversation. The first user turn carries the prospect and service
// details as labeled lines inside one text blob.
type Request struct {
	Messages []Turn `json:"messages"`
}

// PromptText returns the content of the first user turn, falling back to the first turn.
func (r Request) PromptText() string {
	for _, t := range r.Messages {
		if strings.EqualFold(t.Role, "user") {
			return t.Content
		}
	}
	if len(r.Messages) > 0 {
		return r.Messages[0].Content
	}
	return ""
}

// NamePlaceholder is what the generator form sends when the prospect name was left blank.
const NamePlaceholder = "Name"

var (
	toneLine = regexp.MustCompile(`Tone: (.*)`)
	nameLine = regexp.MustCompile(`Prospect Name: (.*?)\n`)
)

// PromptFields holds the values recovered from the legacy prompt blob.
type PromptFields struct {
	Tone      string
	ToneFound bool
	Name      string
	NameFound bool
}

// HasName reports whether a real prospect name was supplied.
func (f PromptFields) HasName() bool {
	return f.NameFound && f.Name != ""
}

// ParsePrompt extracts tone and prospect name from the prompt text. Tone is lower-cased.
// A missing name, an empty one, or the form placeholder all count as not found.
func ParsePrompt(text string) PromptFields {
	var f PromptFields
	if m := toneLine.FindStringSubmatch(text); m != nil {
		f.Tone = strings.ToLower(strings.TrimSpace(m[1]))
		f.ToneFound = true
	}
	if m := nameLine.FindStringSubmatch(text); m != nil {
		name := strings.TrimSpace(m[1])
		if name != "" && name != NamePlaceholder {
			f.Name = name
			f.NameFound = true
		}
	}
	return f
}

// Brief is the structured form of a generation request.
type Brief struct {
	ProspectName       string
	ProspectBio        string
	ServiceDescription string
	OutreachGoal       string
	Tone               string
}

// BuildPrompt renders a brief in the labeled-line format ParsePrompt reads back.
func BuildPrompt(b Brief) string {
	name := strings.TrimSpace(b.ProspectName)
	if name == "" {
		name = NamePlaceholder
	}
	var sb strings.Builder
	sb.WriteString("Prospect Name: " + name + "\n")
	sb.WriteString("Prospect Info/Bio:\n" + strings.TrimSpace(b.ProspectBio) + "\n\n")
	sb.WriteString("My Service Description:\n" + strings.TrimSpace(b.ServiceDescription) + "\n\n")
	sb.WriteString("Outreach Goal: " + b.OutreachGoal + "\n")
	sb.WriteString("Tone: " + b.Tone + "\n\n")
	sb.WriteString("Generate a personalized DM sequence based on this information.\n")
	return sb.String()
}

// NewRequest wraps prompt text as a single user turn.
func NewRequest(prompt string) Request {
	return Request{Messages: []Turn{{Role: "user", Content: prompt}}}
}
