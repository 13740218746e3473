package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/invoice-ticket-api/internal/domain/entity"
	"github.com/sangkips/invoice-ticket-api/internal/domain/repository"
	"github.com/sangkips/invoice-ticket-api/pkg/apperror"
	"github.com/sangkips/invoice-ticket-api/pkg/utils"
)

// TokenType is returned alongside every access token
const TokenType = "Bearer"

// AuthService handles authentication-related operations
type AuthService struct {
	userRepo   repository.UserRepository
	jwtManager *utils.JWTManager
	logger     *slog.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, jwtManager *utils.JWTManager, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
		logger:     logger,
	}
}

// RegisterInput represents the registration input
type RegisterInput struct {
	Name     string
	Login    string
	Password string
}

// Register creates a new user account. Logins are unique regardless of case.
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*entity.User, error) {
	login := entity.NormalizeLogin(input.Login)
	conflict := apperror.NewConflictError(fmt.Sprintf(
		"User with login «%s» already exists. Please, choose another one", login))

	existing, err := s.userRepo.GetByLogin(ctx, login)
	if err != nil {
		return nil, apperror.Persistence(err)
	}
	if existing != nil {
		return nil, conflict
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Name:     strings.TrimSpace(input.Name),
		Login:    login,
		Password: hashedPassword,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if apperror.IsAppError(err) {
			return nil, conflict
		}
		return nil, apperror.Persistence(err)
	}

	s.logger.InfoContext(ctx, "user registered", "user_id", user.ID, "login", user.Login)
	return user, nil
}

// LoginInput represents the login input
type LoginInput struct {
	Login    string
	Password string
}

// LoginOutput represents the login output
type LoginOutput struct {
	User        *entity.User
	AccessToken string
	TokenType   string
}

// Login authenticates a user and returns an access token
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	user, err := s.userRepo.GetByLogin(ctx, input.Login)
	if err != nil {
		return nil, apperror.Persistence(err)
	}
	if user == nil || !utils.CheckPasswordHash(input.Password, user.Password) {
		return nil, apperror.ErrInvalidCredentials
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Login, user.Name)
	if err != nil {
		return nil, err
	}

	return &LoginOutput{
		User:        user,
		AccessToken: accessToken,
		TokenType:   TokenType,
	}, nil
}

// GetCurrentUser returns the current user by ID
func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperror.Persistence(err)
	}
	if user == nil {
		return nil, apperror.ErrInvalidToken
	}
	return user, nil
}
