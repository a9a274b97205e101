package service

import (
	"context"
	"errors"

	"anoa.com/storerating/internal/config"
	"anoa.com/storerating/internal/entity"
	"anoa.com/storerating/internal/modules/user/dto"
	"anoa.com/storerating/internal/modules/user/repository"
	"anoa.com/storerating/pkg/apperror"
	"anoa.com/storerating/pkg/sanitize"
	"anoa.com/storerating/pkg/validator"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	msgUserNotFound  = "User not found"
	msgWrongPassword = "Current password is incorrect"
)

type UserService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error)
	UpdatePassword(ctx context.Context, userID uuid.UUID, input dto.UpdatePasswordInput) error
	UpdateProfile(ctx context.Context, userID uuid.UUID, input dto.UpdateProfileInput) (*entity.User, error)
}

type userService struct {
	repo repository.UserRepository
	cfg  *config.Config
}

func NewUserService(repo repository.UserRepository, cfg *config.Config) UserService {
	return &userService{repo: repo, cfg: cfg}
}

func notFound(err error) error {
	if errors.Is(err, apperror.ErrNotFound) {
		return apperror.NotFound(msgUserNotFound)
	}
	return err
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error) {
	summary, err := s.repo.FindSummaryByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	res := dto.NewUserResponse(*summary)
	return &res, nil
}

func (s *userService) UpdatePassword(ctx context.Context, userID uuid.UUID, input dto.UpdatePasswordInput) error {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return notFound(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.CurrentPassword)); err != nil {
		return apperror.BadRequest(msgWrongPassword)
	}

	hash, err := HashPassword(input.NewPassword, s.cfg.BcryptCost)
	if err != nil {
		return err
	}
	return notFound(s.repo.UpdatePassword(ctx, userID, hash))
}

func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, input dto.UpdateProfileInput) (*entity.User, error) {
	var name, address *string
	if input.Name != nil {
		cleaned := sanitize.Text(*input.Name)
		name = &cleaned
	}
	if input.Address != nil {
		cleaned := sanitize.Text(*input.Address)
		address = &cleaned
	}
	if err := validator.ValidateCleaned("Name", name, address, false); err != nil {
		return nil, err
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, notFound(err)
	}
	if name == nil {
		name = &user.Name
	}
	if address == nil {
		address = &user.Address
	}

	updated, err := s.repo.UpdateProfile(ctx, userID, *name, *address)
	if err != nil {
		return nil, notFound(err)
	}
	return updated, nil
}
