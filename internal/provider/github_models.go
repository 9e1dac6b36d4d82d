package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Raju11sui/Outreacher-ai/internal/outreach"
)

const (
	GitHubModelsName       = "github-models"
	defaultGitHubModelsURL = "https://models.inference.ai.azure.com"
	defaultGitHubModel     = "gpt-4o"
)

// GitHubModels talks to the OpenAI-compatible chat completions endpoint of GitHub Models.
type GitHubModels struct {
	token      string
	baseURL    string
	model      string
	httpClient *http.Client
	log        *slog.Logger
}

func NewGitHubModels(token, baseURL, model string, httpClient *http.Client, log *slog.Logger) *GitHubModels {
	if baseURL == "" {
		baseURL = defaultGitHubModelsURL
	}
	if model == "" {
		model = defaultGitHubModel
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &GitHubModels{
		token:      token,
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		httpClient: httpClient,
		log:        log,
	}
}

func (g *GitHubModels) Name() string { return GitHubModelsName }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	ResponseFormat responseFormat `json:"response_format"`
}

type responseFormat struct {
	Type       string     `json:"type"`
	JSONSchema jsonSchema `json:"json_schema"`
}

type jsonSchema struct {
	Name   string         `json:"name"`
	Strict bool           `json:"strict"`
	Schema map[string]any `json:"schema"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

func (g *GitHubModels) Submit(ctx context.Context, req outreach.Request, schema outreach.Schema, systemPrompt string) (*outreach.Result, error) {
	messages := make([]chatMessage, 0, len(req.Messages)+1)
	messages = append(messages, chatMessage{Role: "system", Content: systemPrompt})
	for _, turn := range req.Messages {
		messages = append(messages, chatMessage{Role: turn.Role, Content: turn.Content})
	}

	body, err := json.Marshal(chatRequest{
		Model:    g.model,
		Messages: messages,
		ResponseFormat: responseFormat{
			Type:       "json_schema",
			JSONSchema: jsonSchema{Name: schema.Name, Strict: true, Schema: schema.JSONSchema()},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	endpoint := g.baseURL + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+g.token)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("post github models: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode >= 300 {
		g.log.Error("github models request failed", "status", resp.StatusCode, "model", g.model, "body", truncateBody(rawBody))
		return nil, fmt.Errorf("github models error: status=%d body=%s", resp.StatusCode, truncateBody(rawBody))
	}

	var decoded chatResponse
	if err := json.Unmarshal(rawBody, &decoded); err != nil {
		return nil, fmt.Errorf("decode chat response: %w (body=%s)", err, truncateBody(rawBody))
	}
	if len(decoded.Choices) == 0 {
		return nil, fmt.Errorf("github models returned no choices")
	}

	return outreach.Decode([]byte(decoded.Choices[0].Message.Content))
}

func truncateBody(body []byte) string {
	const limit = 512
	s := strings.TrimSpace(string(body))
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "…"
}
