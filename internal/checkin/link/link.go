// Package link issues and validates the one-time check-in link tokens sent
// to offenders. A token is an HS256 JWT whose subject is the submission id;
// expiry tracks the check-in window.
package link

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	dErrors "checkin/pkg/domain-errors"
)

// Claims are the link token claims.
type Claims struct {
	jwt.RegisteredClaims
}

// Service signs and validates link tokens.
type Service struct {
	signingKey []byte
}

func NewService(signingKey string) *Service {
	return &Service{signingKey: []byte(signingKey)}
}

// Generate mints a link token for a submission, valid until the check-in
// window closes.
func (s *Service) Generate(submissionID string, expiresAt time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   submissionID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			Issuer:    "checkin",
		},
	})
	return token.SignedString(s.signingKey)
}

// Validate checks a link token and returns the submission id it points at.
func (s *Service) Validate(tokenString string) (string, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", dErrors.New(dErrors.CodeUnauthorized, "link has expired")
		}
		return "", dErrors.New(dErrors.CodeUnauthorized, "invalid link")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return "", dErrors.New(dErrors.CodeUnauthorized, "invalid link")
	}
	return claims.Subject, nil
}
