package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"anoa.com/storerating/internal/config"
	"anoa.com/storerating/internal/entity"
	"anoa.com/storerating/internal/modules/user/dto"
	"anoa.com/storerating/internal/modules/user/repository"
	"anoa.com/storerating/pkg/apperror"
	"anoa.com/storerating/pkg/sanitize"
	"anoa.com/storerating/pkg/validator"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	msgEmailTaken         = "User with this email already exists"
	msgInvalidCredentials = "Invalid email or password"
	msgTokenRequired      = "Access token required"
	msgInvalidToken       = "Invalid token"
	msgTokenExpired       = "Token expired"
	msgUserGone           = "User not found"
)

type AuthService interface {
	Register(ctx context.Context, input dto.RegisterInput) (*dto.AuthResponse, error)
	Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error)
	// ResolveSession turns a bearer token into the user it was issued to, as
	// currently stored.
	ResolveSession(ctx context.Context, token string) (*entity.User, error)
}

type authService struct {
	repo repository.UserRepository
	cfg  *config.Config
	now  func() time.Time
}

func NewAuthService(repo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{repo: repo, cfg: cfg, now: time.Now}
}

// HashPassword hashes password with the given bcrypt cost.
func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (s *authService) Register(ctx context.Context, input dto.RegisterInput) (*dto.AuthResponse, error) {
	email := strings.TrimSpace(input.Email)
	name, address := sanitize.Text(input.Name), sanitize.Text(input.Address)
	if err := validator.ValidateCleaned("Name", &name, &address, true); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperror.Conflict(msgEmailTaken)
	}

	hash, err := HashPassword(input.Password, s.cfg.BcryptCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Name:     name,
		Email:    email,
		Password: hash,
		Address:  address,
		Role:     entity.RoleNormalUser,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			return nil, apperror.Conflict(msgEmailTaken)
		}
		return nil, err
	}

	return s.buildAuthResponse(user)
}

func (s *authService) Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error) {
	user, err := s.repo.FindByEmail(ctx, strings.TrimSpace(input.Email))
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.Unauthorized(msgInvalidCredentials)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return nil, apperror.Unauthorized(msgInvalidCredentials)
	}

	return s.buildAuthResponse(user)
}

func (s *authService) ResolveSession(ctx context.Context, tokenString string) (*entity.User, error) {
	if tokenString == "" {
		return nil, apperror.Unauthorized(msgTokenRequired)
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperror.Unauthorized(msgTokenExpired)
		}
		return nil, apperror.Unauthorized(msgInvalidToken)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, apperror.Unauthorized(msgInvalidToken)
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.Unauthorized(msgUserGone)
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) buildAuthResponse(user *entity.User) (*dto.AuthResponse, error) {
	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		User:      user,
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int64(s.cfg.JWTTTL.Seconds()),
	}, nil
}

func (s *authService) generateToken(user *entity.User) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
