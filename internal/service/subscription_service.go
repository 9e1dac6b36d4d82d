package service

import (
	"context"
	"fmt"

	"github.com/Raju11sui/Outreacher-ai/internal/models"
	"github.com/Raju11sui/Outreacher-ai/internal/repository"
)

type SubscriptionService struct {
	store repository.Store
}

func NewSubscriptionService(store repository.Store) *SubscriptionService {
	return &SubscriptionService{store: store}
}

// Get returns the user's subscription, creating the free plan on first read.
func (s *SubscriptionService) Get(ctx context.Context, userID int64) (*models.Subscription, error) {
	sub, err := s.store.GetOrCreateSubscription(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get subscription: %w", err)
	}
	return sub, nil
}

// RecordGeneration counts one saved generation against the user's allowance.
// The limit is reported, not enforced.
func (s *SubscriptionService) RecordGeneration(ctx context.Context, userID int64) (*models.Subscription, error) {
	sub, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	updated, err := s.store.IncrementGenerationsUsed(ctx, sub.ID)
	if err != nil {
		return nil, fmt.Errorf("record generation: %w", err)
	}
	if updated == nil {
		return nil, fmt.Errorf("record generation: subscription %d not found", sub.ID)
	}
	return updated, nil
}

// ChangePlan moves the subscription to another plan and allowance.
func (s *SubscriptionService) ChangePlan(ctx context.Context, userID int64, plan models.Plan, limit int) (*models.Subscription, error) {
	if !models.ValidPlan(plan) {
		return nil, &ValidationError{Field: "plan", Reason: fmt.Sprintf("unknown plan %q", plan)}
	}
	if limit < 0 {
		return nil, &ValidationError{Field: "generationsLimit", Reason: "must not be negative"}
	}
	sub, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	updated, err := s.store.UpdateSubscription(ctx, sub.ID, repository.SubscriptionUpdate{Plan: &plan, GenerationsLimit: &limit})
	if err != nil {
		return nil, fmt.Errorf("change plan: %w", err)
	}
	if updated == nil {
		return nil, fmt.Errorf("change plan: subscription %d not found", sub.ID)
	}
	return updated, nil
}
