package provider

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/Raju11sui/Outreacher-ai/internal/outreach"
)

const (
	GeminiName         = "gemini"
	defaultGeminiModel = "gemini-1.5-flash"
)

// Gemini generates sequences through the Google Gemini API with a constrained response schema.
type Gemini struct {
	client *genai.Client
	model  string
	log    *slog.Logger
}

// NewGemini builds the client. baseURL is empty in production and points at a test server in tests.
func NewGemini(ctx context.Context, apiKey, baseURL, model string, httpClient *http.Client, log *slog.Logger) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if model == "" {
		model = defaultGeminiModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  httpClient,
		HTTPOptions: genai.HTTPOptions{BaseURL: baseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Gemini{client: client, model: model, log: log}, nil
}

func (g *Gemini) Name() string { return GeminiName }

func (g *Gemini) Submit(ctx context.Context, req outreach.Request, schema outreach.Schema, systemPrompt string) (*outreach.Result, error) {
	system := []string{systemPrompt}
	contents := make([]*genai.Content, 0, len(req.Messages))
	for _, turn := range req.Messages {
		switch turn.Role {
		case "system":
			system = append(system, turn.Content)
		case "assistant", genai.RoleModel:
			contents = append(contents, genai.NewContentFromText(turn.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(turn.Content, genai.RoleUser))
		}
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(strings.Join(system, "\n\n"), genai.RoleUser),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    geminiSchema(schema),
	})
	if err != nil {
		g.log.Error("gemini request failed", "model", g.model, "err", err)
		return nil, fmt.Errorf("gemini generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("gemini returned no text")
	}
	return outreach.Decode([]byte(text))
}

// geminiSchema converts the shared schema into the OpenAPI subset Gemini accepts.
func geminiSchema(s outreach.Schema) *genai.Schema {
	root := objectOf(s.Fields)
	root.Properties["psychology"] = objectOf(s.Psychology)
	root.Required = append(root.Required, "psychology")
	root.PropertyOrdering = append(root.PropertyOrdering, "psychology")
	return root
}

func objectOf(fields []outreach.Field) *genai.Schema {
	out := &genai.Schema{
		Type:       genai.TypeObject,
		Properties: make(map[string]*genai.Schema, len(fields)),
	}
	for _, f := range fields {
		out.Properties[f.Name] = &genai.Schema{Type: genai.TypeString, Description: f.Description}
		out.Required = append(out.Required, f.Name)
		out.PropertyOrdering = append(out.PropertyOrdering, f.Name)
	}
	return out
}
