package jwt

import (
	"errors"
	"fmt"
	"time"

	"foodflow/domain"

	"github.com/golang-jwt/jwt/v4"
)

const (
	issuer = "FOODFLOW"

	tokenUserTTL = 120 * time.Minute

	subjectAccess        = "access"
	subjectResetPassword = "reset_password"
)

type (
	JWTService interface {
		GenerateTokenUser(userId string, role string) (string, error)
		GetUserIDByToken(token string) (string, string, error)
		GenerateTokenResetPassword(userId string, email string, duration time.Duration) (string, error)
		ValidateTokenResetPassword(token string) (string, string, error)
	}

	jwtUserClaim struct {
		UserID string `json:"user_id"`
		Role   string `json:"role"`
		jwt.RegisteredClaims
	}

	jwtResetClaim struct {
		UserID string `json:"user_id"`
		Email  string `json:"email"`
		jwt.RegisteredClaims
	}

	jwtService struct {
		secretKey []byte
		issuer    string
		now       func() time.Time
	}
)

func NewJWTService(secretKey string) JWTService {
	return &jwtService{
		secretKey: []byte(secretKey),
		issuer:    issuer,
		now:       time.Now,
	}
}

// registered builds the standard claims. The subject tells access tokens
// and reset tokens apart.
func (j *jwtService) registered(subject string, ttl time.Duration) jwt.RegisteredClaims {
	now := j.now()
	return jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		Issuer:    j.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
	}
}

func (j *jwtService) GenerateTokenUser(userId string, role string) (string, error) {
	claims := jwtUserClaim{
		UserID:           userId,
		Role:             role,
		RegisteredClaims: j.registered(subjectAccess, tokenUserTTL),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secretKey)
}

func (j *jwtService) parseToken(t_ *jwt.Token) (any, error) {
	if _, ok := t_.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t_.Header["alg"])
	}
	return j.secretKey, nil
}

func (j *jwtService) validate(token string, claims jwt.Claims) error {
	t_Token, err := jwt.ParseWithClaims(token, claims, j.parseToken)
	if err != nil {
		var vErr *jwt.ValidationError
		if errors.As(err, &vErr) && vErr.Errors&jwt.ValidationErrorExpired != 0 {
			return domain.ErrTokenExpired
		}
		return domain.ErrTokenInvalid
	}
	if !t_Token.Valid {
		return domain.ErrTokenInvalid
	}
	return nil
}

func (j *jwtService) GetUserIDByToken(token string) (string, string, error) {
	claims := &jwtUserClaim{}
	if err := j.validate(token, claims); err != nil {
		return "", "", err
	}
	if claims.Subject != subjectAccess || claims.UserID == "" {
		return "", "", domain.ErrTokenInvalid
	}
	return claims.UserID, claims.Role, nil
}

func (j *jwtService) GenerateTokenResetPassword(userId string, email string, duration time.Duration) (string, error) {
	claims := jwtResetClaim{
		UserID:           userId,
		Email:            email,
		RegisteredClaims: j.registered(subjectResetPassword, duration),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secretKey)
}

func (j *jwtService) ValidateTokenResetPassword(token string) (string, string, error) {
	claims := &jwtResetClaim{}
	if err := j.validate(token, claims); err != nil {
		return "", "", err
	}
	if claims.Subject != subjectResetPassword || claims.UserID == "" {
		return "", "", domain.ErrTokenInvalid
	}
	return claims.UserID, claims.Email, nil
}
