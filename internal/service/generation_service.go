package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Raju11sui/Outreacher-ai/internal/outreach"
	"github.com/Raju11sui/Outreacher-ai/internal/provider"
)

type FailureReason string

const (
	ReasonUnconfigured     FailureReason = "unconfigured"
	ReasonProvider         FailureReason = "provider"
	ReasonTimeout          FailureReason = "timeout"
	ReasonSchemaValidation FailureReason = "schema_validation"
)

// GenerationFailure is any reason the provider path did not yield a valid result.
type GenerationFailure struct {
	Reason   FailureReason
	Provider string
	Err      error
}

func (e *GenerationFailure) Error() string {
	if e.Provider == "" {
		return fmt.Sprintf("generation %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("generation %s (%s): %v", e.Reason, e.Provider, e.Err)
}

func (e *GenerationFailure) Unwrap() error {
	return e.Err
}

// ProviderSelector returns the provider to use for a generation.
type ProviderSelector interface {
	Select(ctx context.Context) (provider.Provider, error)
}

// Pipeline runs one provider call under a deadline and classifies every failure.
type Pipeline struct {
	selector ProviderSelector
	timeout  time.Duration
}

func NewPipeline(selector ProviderSelector, timeout time.Duration) *Pipeline {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Pipeline{selector: selector, timeout: timeout}
}

func (p *Pipeline) Generate(ctx context.Context, req outreach.Request) (*outreach.Result, error) {
	prov, err := p.selector.Select(ctx)
	if err != nil {
		if errors.Is(err, provider.ErrNoProviderConfigured) {
			return nil, &GenerationFailure{Reason: ReasonUnconfigured, Err: err}
		}
		return nil, &GenerationFailure{Reason: ReasonProvider, Err: err}
	}

	callCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	res, err := prov.Submit(callCtx, req, outreach.ResultSchema, outreach.SystemPrompt)
	if err != nil {
		var schemaErr *outreach.SchemaError
		switch {
		case errors.As(err, &schemaErr):
			return nil, &GenerationFailure{Reason: ReasonSchemaValidation, Provider: prov.Name(), Err: err}
		case errors.Is(err, context.DeadlineExceeded) || errors.Is(callCtx.Err(), context.DeadlineExceeded):
			return nil, &GenerationFailure{Reason: ReasonTimeout, Provider: prov.Name(), Err: err}
		default:
			return nil, &GenerationFailure{Reason: ReasonProvider, Provider: prov.Name(), Err: err}
		}
	}
	if res == nil {
		return nil, &GenerationFailure{Reason: ReasonProvider, Provider: prov.Name(), Err: errors.New("empty result")}
	}
	if err := res.Validate(); err != nil {
		return nil, &GenerationFailure{Reason: ReasonSchemaValidation, Provider: prov.Name(), Err: err}
	}
	res.IsMock = false
	return res, nil
}

// GenerationService always answers: a failed provider path degrades to the fallback synthesizer.
type GenerationService struct {
	pipeline *Pipeline
	log      *slog.Logger
}

func NewGenerationService(pipeline *Pipeline, log *slog.Logger) *GenerationService {
	return &GenerationService{pipeline: pipeline, log: log}
}

func (s *GenerationService) Generate(ctx context.Context, req outreach.Request) *outreach.Result {
	res, err := s.pipeline.Generate(ctx, req)
	if err == nil {
		return res
	}

	var failure *GenerationFailure
	if errors.As(err, &failure) && failure.Reason == ReasonUnconfigured {
		s.log.Info("no provider configured, using fallback generator")
	} else if failure != nil {
		s.log.Warn("provider generation failed, using fallback generator",
			"reason", failure.Reason, "provider", failure.Provider, "err", failure.Err)
	} else {
		s.log.Error("generation failed, using fallback generator", "err", err)
	}

	fallback := outreach.Synthesize(req.PromptText())
	return &fallback
}
