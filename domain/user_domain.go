package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessRegister         = "user registered successfully"
	MessageSuccessLogin            = "login successful"
	MessageSuccessGetUser          = "success get user"
	MessageSuccessSendVerification = "verification email sent"
	MessageSuccessVerifyEmail      = "email verified successfully"
	MessageFailedRegister          = "failed to register user"
	MessageFailedLogin             = "failed to login"
	MessageFailedGetUser           = "failed to get user"
	MessageFailedSendVerification  = "failed to send verification email"
	MessageFailedVerifyEmail       = "failed to verify email"
	MessageUnauthorized            = "unauthorized"

	ErrUsernameTaken        = errors.New("username already registered")
	ErrEmailTaken           = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("incorrect username or password")
	ErrUserNotFound         = errors.New("user not found")
	ErrUserInactive         = errors.New("user is inactive")
	ErrEmailAlreadyVerified = errors.New("email already verified")
	ErrMailerNotConfigured  = errors.New("mailer not configured")
	ErrPasswordTooLong      = errors.New("password must be at most 72 bytes")
)

type (
	RegisterRequest struct {
		Username string `json:"username" validate:"required,min=3,max=50"`
		Email    string `json:"email" validate:"required,email,max=255"`
		Password string `json:"password" validate:"required,min=8,max=72,bcryptlen"`
	}

	UserResponse struct {
		ID       int    `json:"id"`
		Username string `json:"username"`
		Email    string `json:"email"`
	}

	MeResponse struct {
		ID         int       `json:"id"`
		Username   string    `json:"username"`
		Email      string    `json:"email"`
		IsActive   bool      `json:"is_active"`
		IsVerified bool      `json:"is_verified"`
		CreatedAt  time.Time `json:"created_at"`
	}

	LoginRequest struct {
		Username string `json:"username" form:"username" validate:"required"`
		Password string `json:"password" form:"password" validate:"required"`
	}

	LoginResponse struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}

	VerifyEmailRequest struct {
		Token string `query:"token" validate:"required"`
	}
)
