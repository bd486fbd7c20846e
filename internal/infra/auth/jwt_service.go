// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"adsync/config"
	"adsync/internal/domain/service"
)

// jwtValidator verifies the HMAC access tokens issued by the identity
// service. This service never mints tokens itself.
type jwtValidator struct {
	accessSecret string
}

// NewJWTValidator is the constructor for jwtValidator.
func NewJWTValidator(cfg *config.Config) (service.TokenValidator, error) {
	if cfg.SecretKey.Access == "" {
		return nil, errors.New("jwt access secret must be provided")
	}

	return &jwtValidator{accessSecret: cfg.SecretKey.Access}, nil
}

// ValidateAccessToken verifies the token and extracts the subject user ID.
func (s *jwtValidator) ValidateAccessToken(tokenString string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(s.accessSecret), nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	if !token.Valid {
		return uuid.Nil, jwt.ErrTokenUnverifiable
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, errors.New("unexpected claims type")
	}

	subject, err := claims.GetSubject()
	if err != nil {
		return uuid.Nil, err
	}

	userID, err := uuid.Parse(subject)
	if err != nil {
		return uuid.Nil, errors.New("subject is not a user id")
	}

	return userID, nil
}
