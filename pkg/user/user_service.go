package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"recipe-catalog/domain"
	"recipe-catalog/entities"
	"recipe-catalog/internal/metrics"
	"recipe-catalog/internal/utils"
	"recipe-catalog/internal/utils/mailing"
	"recipe-catalog/pkg/jwt"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"
)

const verifyEmailTTL = 24 * time.Hour

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.UserResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
		GetUserByID(ctx context.Context, id int) (*entities.User, error)
		Me(ctx context.Context, id int) (domain.MeResponse, error)
		SendVerificationEmail(ctx context.Context, userID int) error
		VerifyEmail(ctx context.Context, req domain.VerifyEmailRequest) error
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
		mailer         mailing.Mailer
		appURL         string
		dispatch       func(func())
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService, mailer mailing.Mailer, appURL string) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
		mailer:         mailer,
		appURL:         strings.TrimRight(appURL, "/"),
		dispatch:       func(f func()) { go f() },
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.UserResponse, error) {
	if len(req.Password) > utils.MaxPasswordBytes {
		return domain.UserResponse{}, domain.ErrPasswordTooLong
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return domain.UserResponse{}, err
	}

	user := &entities.User{
		Username:       strings.TrimSpace(req.Username),
		Email:          strings.ToLower(strings.TrimSpace(req.Email)),
		HashedPassword: hashed,
		IsActive:       true,
	}
	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) || errors.Is(err, domain.ErrEmailTaken) {
			metrics.AuthEvents.WithLabelValues("register", "conflict").Inc()
		}
		return domain.UserResponse{}, err
	}
	metrics.AuthEvents.WithLabelValues("register", "success").Inc()

	if s.mailer != nil && s.mailer.Enabled() {
		created := *user
		s.dispatch(func() {
			if err := s.sendVerification(&created); err != nil {
				log.Warnw("verification email not sent", "user_id", created.ID, "error", err)
			}
		})
	}

	return domain.UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}, nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	user, err := s.userRepository.GetUserByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.LoginResponse{}, err
		}
		utils.CheckPasswordAgainstDummy(req.Password)
		metrics.AuthEvents.WithLabelValues("login", "unauthorized").Inc()
		return domain.LoginResponse{}, domain.ErrInvalidCredentials
	}

	if !utils.CheckPassword(user.HashedPassword, req.Password) || !user.IsActive {
		metrics.AuthEvents.WithLabelValues("login", "unauthorized").Inc()
		return domain.LoginResponse{}, domain.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateTokenUser(user.ID, user.Username)
	if err != nil {
		return domain.LoginResponse{}, err
	}
	metrics.AuthEvents.WithLabelValues("login", "success").Inc()

	return domain.LoginResponse{
		AccessToken: token,
		TokenType:   domain.TokenTypeBearer,
	}, nil
}

func (s *userService) GetUserByID(ctx context.Context, id int) (*entities.User, error) {
	user, err := s.userRepository.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) Me(ctx context.Context, id int) (domain.MeResponse, error) {
	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		return domain.MeResponse{}, err
	}

	return domain.MeResponse{
		ID:         user.ID,
		Username:   user.Username,
		Email:      user.Email,
		IsActive:   user.IsActive,
		IsVerified: user.IsVerified,
		CreatedAt:  user.CreatedAt,
	}, nil
}

func (s *userService) SendVerificationEmail(ctx context.Context, userID int) error {
	if s.mailer == nil || !s.mailer.Enabled() {
		return domain.ErrMailerNotConfigured
	}

	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.IsVerified {
		return domain.ErrEmailAlreadyVerified
	}

	return s.sendVerification(user)
}

func (s *userService) sendVerification(user *entities.User) error {
	token, err := s.jwtService.GenerateTokenVerifyEmail(user.ID, user.Email, verifyEmailTTL)
	if err != nil {
		return err
	}

	link := mailing.VerificationLink(s.appURL, token)
	return s.mailer.SendMail(user.Email, "Verify your email", mailing.VerificationBody(user.Username, link))
}

func (s *userService) VerifyEmail(ctx context.Context, req domain.VerifyEmailRequest) error {
	userID, email, err := s.jwtService.ValidateTokenVerifyEmail(req.Token)
	if err != nil {
		return err
	}

	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	// the address changed since the link was issued
	if user.Email != email {
		return domain.ErrTokenInvalid
	}
	if user.IsVerified {
		return domain.ErrEmailAlreadyVerified
	}

	return s.userRepository.MarkVerified(ctx, userID)
}
