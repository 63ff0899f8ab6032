package jwt

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"recipe-catalog/domain"
	"recipe-catalog/internal/utils"

	"github.com/golang-jwt/jwt/v4"
)

const (
	purposeVerifyEmail = "verify_email"
	defaultTokenTTL    = 30 * time.Minute
)

type (
	JWTService interface {
		GenerateTokenUser(userID int, username string) (string, error)
		ValidateTokenUser(token string) (*jwt.Token, error)
		GetUserIDByToken(token string) (int, error)
		GenerateTokenVerifyEmail(userID int, email string, duration time.Duration) (string, error)
		ValidateTokenVerifyEmail(token string) (int, string, error)
	}

	jwtUserClaim struct {
		Username string `json:"username,omitempty"`
		Email    string `json:"email,omitempty"`
		Purpose  string `json:"purpose,omitempty"`
		jwt.RegisteredClaims
	}

	jwtService struct {
		secretKey string
		issuer    string
		ttl       time.Duration
		now       func() time.Time
	}
)

func NewJWTService(secretKey, issuer string, ttl time.Duration) JWTService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &jwtService{
		secretKey: secretKey,
		issuer:    issuer,
		ttl:       ttl,
		now:       time.Now,
	}
}

func NewJWTServiceFromConfig() JWTService {
	return NewJWTService(
		utils.GetConfig("JWT_SECRET"),
		utils.GetConfig("JWT_ISSUER"),
		utils.GetConfigMinutes("JWT_EXPIRE_MINUTES", defaultTokenTTL),
	)
}

func (j *jwtService) GenerateTokenUser(userID int, username string) (string, error) {
	now := j.now()
	claims := jwtUserClaim{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(userID),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

func (j *jwtService) parseToken(t_ *jwt.Token) (any, error) {
	if _, ok := t_.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t_.Header["alg"])
	}
	return []byte(j.secretKey), nil
}

func (j *jwtService) ValidateTokenUser(token string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(token, &jwtUserClaim{}, j.parseToken)
}

func (j *jwtService) claims(token string) (*jwtUserClaim, error) {
	t_Token, err := j.ValidateTokenUser(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	if !t_Token.Valid {
		return nil, domain.ErrTokenInvalid
	}

	claims, ok := t_Token.Claims.(*jwtUserClaim)
	if !ok || !claims.VerifyIssuer(j.issuer, true) {
		return nil, domain.ErrTokenInvalid
	}
	return claims, nil
}

func (j *jwtService) GetUserIDByToken(token string) (int, error) {
	claims, err := j.claims(token)
	if err != nil {
		return 0, err
	}
	if claims.Purpose != "" {
		return 0, domain.ErrTokenInvalid
	}

	id, err := strconv.Atoi(claims.Subject)
	if err != nil || id <= 0 {
		return 0, domain.ErrTokenInvalid
	}
	return id, nil
}

func (j *jwtService) GenerateTokenVerifyEmail(userID int, email string, duration time.Duration) (string, error) {
	now := j.now()
	claims := jwtUserClaim{
		Email:   email,
		Purpose: purposeVerifyEmail,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(userID),
			ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

func (j *jwtService) ValidateTokenVerifyEmail(token string) (int, string, error) {
	claims, err := j.claims(token)
	if err != nil {
		return 0, "", err
	}
	if claims.Purpose != purposeVerifyEmail {
		return 0, "", domain.ErrTokenInvalid
	}

	id, err := strconv.Atoi(claims.Subject)
	if err != nil || id <= 0 {
		return 0, "", domain.ErrTokenInvalid
	}
	return id, claims.Email, nil
}
