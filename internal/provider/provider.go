package provider

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/Raju11sui/Outreacher-ai/internal/config"
	"github.com/Raju11sui/Outreacher-ai/internal/outreach"
)

// ErrNoProviderConfigured is returned by Select when no credential is present.
var ErrNoProviderConfigured = errors.New("no generation provider configured")

// Provider submits a conversation plus a result schema to a language model and returns a
// schema-conforming result.
type Provider interface {
	Name() string
	Submit(ctx context.Context, req outreach.Request, schema outreach.Schema, systemPrompt string) (*outreach.Result, error)
}

// Credentials holds the provider settings read from the environment.
type Credentials struct {
	GitHubToken       string
	GitHubModelsURL   string
	GitHubModelsModel string
	GoogleAPIKey      string
	GeminiBaseURL     string
	GeminiModel       string
}

func CredentialsFromConfig(cfg config.Config) Credentials {
	return Credentials{
		GitHubToken:       cfg.GitHubToken,
		GitHubModelsURL:   cfg.GitHubModelsURL,
		GitHubModelsModel: cfg.GitHubModelsModel,
		GoogleAPIKey:      cfg.GoogleAPIKey,
		GeminiModel:       cfg.GeminiModel,
	}
}

// Status reports which credentials are present.
type Status struct {
	GitHubTokenConfigured bool `json:"github_token_configured"`
	GoogleKeyConfigured   bool `json:"google_key_configured"`
}

type registration struct {
	name       string
	configured func(Credentials) bool
	build      func(ctx context.Context, c Credentials, httpClient *http.Client, log *slog.Logger) (Provider, error)
}

// registry is ordered by priority; the first configured entry wins.
var registry = []registration{
	{
		name:       GitHubModelsName,
		configured: func(c Credentials) bool { return c.GitHubToken != "" },
		build: func(_ context.Context, c Credentials, httpClient *http.Client, log *slog.Logger) (Provider, error) {
			return NewGitHubModels(c.GitHubToken, c.GitHubModelsURL, c.GitHubModelsModel, httpClient, log), nil
		},
	},
	{
		name:       GeminiName,
		configured: func(c Credentials) bool { return c.GoogleAPIKey != "" },
		build: func(ctx context.Context, c Credentials, httpClient *http.Client, log *slog.Logger) (Provider, error) {
			return NewGemini(ctx, c.GoogleAPIKey, c.GeminiBaseURL, c.GeminiModel, httpClient, log)
		},
	},
}

// Selector picks the provider to use from the configured credentials. The choice and the
// constructed client are cached after the first call.
type Selector struct {
	creds      Credentials
	httpClient *http.Client
	log        *slog.Logger

	once     sync.Once
	provider Provider
	err      error
}

// NewSelector builds a selector. A nil httpClient is replaced by one with a two minute timeout.
func NewSelector(creds Credentials, httpClient *http.Client, log *slog.Logger) *Selector {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 2 * time.Minute}
	}
	return &Selector{
		creds:      creds,
		httpClient: httpClient,
		log:        log,
	}
}

// Select returns the highest-priority configured provider or ErrNoProviderConfigured.
func (s *Selector) Select(ctx context.Context) (Provider, error) {
	s.once.Do(func() {
		for _, reg := range registry {
			if !reg.configured(s.creds) {
				continue
			}
			p, err := reg.build(context.WithoutCancel(ctx), s.creds, s.httpClient, s.log)
			if err != nil {
				s.err = fmt.Errorf("build %s provider: %w", reg.name, err)
				return
			}
			s.log.Info("generation provider selected", "provider", reg.name)
			s.provider = p
			return
		}
		s.err = ErrNoProviderConfigured
	})
	return s.provider, s.err
}

// Configured reports which credentials are present, for health output.
func (s *Selector) Configured() Status {
	return Status{
		GitHubTokenConfigured: s.creds.GitHubToken != "",
		GoogleKeyConfigured:   s.creds.GoogleAPIKey != "",
	}
}
