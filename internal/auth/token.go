package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/shamanic-technologies/email-sending-service/internal/config"
)

// Token validation errors
var (
	ErrNoSecret     = errors.New("auth secret is not configured")
	ErrInvalidToken = errors.New("token is invalid or expired")
)

// TokenService validates the HS256 bearer tokens internal services present
// to the gateway. The token subject identifies the calling app and doubles
// as the caller identity used for signature composition.
type TokenService struct {
	cfg config.AuthConfig
}

// TokenClaims represents the claims in a service token.
type TokenClaims struct {
	jwt.RegisteredClaims
}

// NewTokenService creates a new TokenService.
func NewTokenService(cfg config.AuthConfig) (*TokenService, error) {
	if cfg.Secret == "" {
		return nil, ErrNoSecret
	}
	return &TokenService{cfg: cfg}, nil
}

// GenerateToken signs a token for the given app ID. Used by the CLI and by
// tests; services normally mint their own tokens with the shared secret.
func (s *TokenService) GenerateToken(appID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.Issuer,
			Subject:   appID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and verifies a service token, returning its claims.
func (s *TokenService) ValidateToken(tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if s.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.cfg.Issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.Secret), nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
