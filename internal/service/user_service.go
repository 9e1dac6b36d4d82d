package service

import (
	"context"
	"fmt"

	"github.com/Raju11sui/Outreacher-ai/internal/models"
	"github.com/Raju11sui/Outreacher-ai/internal/repository"
)

type UserService struct {
	store repository.Store
}

func NewUserService(store repository.Store) *UserService {
	return &UserService{store: store}
}

// Login records a sign-in and returns the stored user.
func (s *UserService) Login(ctx context.Context, in repository.UpsertUserInput) (*models.User, error) {
	if in.OpenID == "" {
		return nil, &ValidationError{Field: "openId", Reason: "is required"}
	}
	if err := s.store.UpsertUser(ctx, in); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	user, err := s.store.GetUserByOpenID(ctx, in.OpenID)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("login: user %q missing after upsert", in.OpenID)
	}
	return user, nil
}

// Ensure returns the user for openID, creating it on first sight.
func (s *UserService) Ensure(ctx context.Context, openID string, name, email *string) (*models.User, bool, error) {
	user, err := s.store.GetUserByOpenID(ctx, openID)
	if err != nil {
		return nil, false, fmt.Errorf("ensure user: %w", err)
	}
	if user != nil {
		return user, false, nil
	}
	method := "header"
	user, err = s.Login(ctx, repository.UpsertUserInput{OpenID: openID, Name: name, Email: email, LoginMethod: &method})
	if err != nil {
		return nil, false, err
	}
	return user, true, nil
}
