package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/elevatepath/elevatepath/internal/domain"
	"github.com/elevatepath/elevatepath/internal/repository"
)

type UserService struct {
	store repository.UserRepository
}

func NewUserService(store repository.UserRepository) *UserService {
	return &UserService{store: store}
}

// FindOrCreate looks the user up by their identity-provider subject, creating
// the record on first sight. The second return reports whether a new user was
// created.
func (s *UserService) FindOrCreate(ctx context.Context, authID, email, name string) (*domain.User, bool, error) {
	user, err := s.store.GetUserByAuthID(ctx, authID)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, false, fmt.Errorf("get user: %w", err)
	}

	user, err = s.store.CreateUser(ctx, repository.CreateUserInput{
		AuthID: authID,
		Email:  email,
		Name:   name,
	})
	if err != nil {
		return nil, false, fmt.Errorf("create user: %w", err)
	}
	return user, true, nil
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.store.GetUserByID(ctx, id)
}

type ProfileUpdate struct {
	Industry   string
	Experience int
	Bio        string
	Skills     []string
}

// UpdateProfile applies the onboarding form.
func (s *UserService) UpdateProfile(ctx context.Context, user *domain.User, update ProfileUpdate) (*domain.User, error) {
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	updated, err := s.store.UpdateProfile(ctx, repository.UpdateProfileInput{
		UserID:     user.ID,
		Industry:   update.Industry,
		Experience: update.Experience,
		Bio:        update.Bio,
		Skills:     update.Skills,
	})
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return updated, nil
}
