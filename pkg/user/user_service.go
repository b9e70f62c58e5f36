package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"foodflow/domain"
	"foodflow/entities"
	"foodflow/internal/utils/mailing"
	"foodflow/pkg/jwt"
	"foodflow/pkg/logger"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const resetTokenTTL = 30 * time.Minute

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.AuthResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.AuthResponse, error)
		Me(ctx context.Context, userID string) (domain.UserResponse, error)
		ForgotPassword(ctx context.Context, req domain.ForgotPasswordRequest) error
		ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
		mailer         mailing.Mailer
		appURL         string
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService, mailer mailing.Mailer, appURL string) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
		mailer:         mailer,
		appURL:         appURL,
	}
}

// DisplayName falls back from the name to the email to a fixed label.
func DisplayName(name, email string) string {
	if n := strings.TrimSpace(name); n != "" {
		return n
	}
	if e := strings.TrimSpace(email); e != "" {
		return e
	}
	return domain.DefaultDisplayName
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return domain.AuthResponse{}, domain.NewValidationError("email and password are required")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.AuthResponse{}, err
	}

	user := &entities.User{
		ID:       uuid.New(),
		Name:     strings.TrimSpace(req.Name),
		Email:    email,
		Password: string(hashed),
		Role:     domain.RoleUser,
	}
	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		return domain.AuthResponse{}, err
	}

	token, err := s.jwtService.GenerateTokenUser(user.ID.String(), user.Role)
	if err != nil {
		return domain.AuthResponse{}, err
	}

	logger.Info(ctx).Str("user_id", user.ID.String()).Msg("user registered")
	return domain.AuthResponse{UserID: user.ID.String(), Token: token}, nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return domain.AuthResponse{}, domain.NewValidationError("email and password are required")
	}

	user, err := s.userRepository.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.AuthResponse{}, domain.ErrInvalidCredentials
		}
		return domain.AuthResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return domain.AuthResponse{}, domain.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateTokenUser(user.ID.String(), user.Role)
	if err != nil {
		return domain.AuthResponse{}, err
	}
	return domain.AuthResponse{UserID: user.ID.String(), Token: token}, nil
}

func (s *userService) Me(ctx context.Context, userID string) (domain.UserResponse, error) {
	if userID == "" {
		return domain.UserResponse{}, domain.ErrUnauthenticated
	}

	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return domain.UserResponse{}, err
	}

	return domain.UserResponse{
		ID:          user.ID.String(),
		Name:        user.Name,
		Email:       user.Email,
		DisplayName: DisplayName(user.Name, user.Email),
	}, nil
}

// ForgotPassword mails a reset link. Unknown emails succeed silently.
func (s *userService) ForgotPassword(ctx context.Context, req domain.ForgotPasswordRequest) error {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepository.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			logger.Debug(ctx).Str("email", email).Msg("password reset requested for unknown email")
			return nil
		}
		return err
	}

	token, err := s.jwtService.GenerateTokenResetPassword(user.ID.String(), user.Email, resetTokenTTL)
	if err != nil {
		return err
	}

	if err := s.mailer.SendMail(user.Email, "Reset your FoodFlow password", mailing.PasswordResetBody(s.appURL, token)); err != nil {
		return domain.NewRemoteFailure("send reset email", err)
	}
	return nil
}

func (s *userService) ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error {
	userID, _, err := s.jwtService.ValidateTokenResetPassword(req.Token)
	if err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.userRepository.UpdatePassword(ctx, userID, string(hashed)); err != nil {
		return err
	}

	logger.Info(ctx).Str("user_id", userID).Msg("password reset")
	return nil
}
