package service

import (
	"context"
	"errors"
	"strings"

	"anoa.com/storerating/internal/config"
	"anoa.com/storerating/internal/entity"
	"anoa.com/storerating/internal/modules/admin/dto"
	userDto "anoa.com/storerating/internal/modules/user/dto"
	"anoa.com/storerating/internal/modules/user/repository"
	userService "anoa.com/storerating/internal/modules/user/service"
	"anoa.com/storerating/pkg/apperror"
	"anoa.com/storerating/pkg/sanitize"
	"anoa.com/storerating/pkg/validator"
	"github.com/google/uuid"
)

const msgEmailTaken = "User with this email already exists"

// AdminService manages user accounts on behalf of system admins.
type AdminService interface {
	ListUsers(ctx context.Context, query dto.ListUsersQuery) ([]userDto.UserResponse, error)
	CreateUser(ctx context.Context, input dto.CreateUserInput) (*entity.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

type adminService struct {
	userRepo repository.UserRepository
	cfg      *config.Config
}

func NewAdminService(userRepo repository.UserRepository, cfg *config.Config) AdminService {
	return &adminService{userRepo: userRepo, cfg: cfg}
}

func (s *adminService) ListUsers(ctx context.Context, query dto.ListUsersQuery) ([]userDto.UserResponse, error) {
	desc, err := query.Descending(false)
	if err != nil {
		return nil, err
	}

	filter := repository.UserFilter{
		Name:    query.Name,
		Email:   query.Email,
		Address: query.Address,
		SortBy:  query.SortBy,
		Desc:    desc,
	}
	if role := strings.TrimSpace(query.Role); role != "" {
		parsed, err := entity.ParseRole(role)
		if err != nil {
			return nil, apperror.BadRequest("Invalid role specified")
		}
		filter.Role = parsed
	}

	summaries, err := s.userRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	users := make([]userDto.UserResponse, 0, len(summaries))
	for _, summary := range summaries {
		users = append(users, userDto.NewUserResponse(summary))
	}
	return users, nil
}

func (s *adminService) CreateUser(ctx context.Context, input dto.CreateUserInput) (*entity.User, error) {
	name, address := sanitize.Text(input.Name), sanitize.Text(input.Address)
	if err := validator.ValidateCleaned("Name", &name, &address, true); err != nil {
		return nil, err
	}

	role := entity.RoleNormalUser
	if input.Role != "" {
		parsed, err := entity.ParseRole(input.Role)
		if err != nil {
			return nil, apperror.BadRequest("Invalid role specified")
		}
		role = parsed
	}

	email := strings.TrimSpace(input.Email)
	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperror.Conflict(msgEmailTaken)
	}

	hash, err := userService.HashPassword(input.Password, s.cfg.BcryptCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Name:     name,
		Email:    email,
		Password: hash,
		Address:  address,
		Role:     role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			return nil, apperror.Conflict(msgEmailTaken)
		}
		return nil, err
	}
	return user, nil
}

func (s *adminService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return apperror.NotFound("User not found")
		}
		return err
	}
	return nil
}
