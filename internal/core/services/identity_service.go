package services

import (
	"context"

	"eps-clinic/internal/adapters/persistence/repositories"
	"eps-clinic/internal/core/domain"
	"eps-clinic/internal/pkg/validate"
)

// IdentityService handles user registration and session state
type IdentityService struct {
	userRepo repositories.UserRepository
}

// NewIdentityService creates a new identity service
func NewIdentityService(userRepo repositories.UserRepository) *IdentityService {
	return &IdentityService{userRepo: userRepo}
}

// RegisterUser registers a new user. Names are the unique key; the role is
// kept as an open string (only "doctor" matters downstream).
func (s *IdentityService) RegisterUser(ctx context.Context, name, password, role string) (domain.Result, error) {
	if validate.Blank(name, password, role) {
		return domain.ResultInvalidData, nil
	}

	exists, err := s.userRepo.ExistsByName(ctx, name)
	if err != nil {
		return "", err
	}
	if exists {
		return domain.ResultAlreadyExists, nil
	}

	user := &domain.User{Name: name, Password: password, Role: role}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return "", err
	}
	return domain.ResultOK, nil
}

// OpenCloseSession toggles the session flag after checking credentials.
// open=true logs the user in, open=false logs them out.
func (s *IdentityService) OpenCloseSession(ctx context.Context, name, password string, open bool) (domain.Result, error) {
	user, err := s.userRepo.GetByName(ctx, name)
	if err != nil {
		return "", err
	}
	if user == nil {
		return domain.ResultNotFound, nil
	}
	if user.Password != password {
		return domain.ResultInvalidData, nil
	}

	if _, err := s.userRepo.SetSession(ctx, name, open); err != nil {
		return "", err
	}
	return domain.ResultOK, nil
}

// FindUser is the exact-name lookup exported to the clinical domain.
// Returns nil when no user matches.
func (s *IdentityService) FindUser(ctx context.Context, name string) (*domain.User, error) {
	return s.userRepo.GetByName(ctx, name)
}
