package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the payload of a session token.
type Claims struct {
	jwt.RegisteredClaims
	Role Role `json:"role"`
}

// TokenConfig configures token signing.
type TokenConfig struct {
	Issuer     string
	SigningKey []byte
}

// Tokens issues and verifies HS256 session tokens. Tokens carry no expiry;
// they end when revoked.
type Tokens struct {
	issuer string
	key    []byte
	now    func() time.Time
}

func NewTokens(cfg TokenConfig) (*Tokens, error) {
	if len(cfg.SigningKey) == 0 {
		return nil, errors.New("token signing key is required")
	}
	return &Tokens{issuer: cfg.Issuer, key: cfg.SigningKey, now: time.Now}, nil
}

// Issue signs a token for subject acting as role.
func (t *Tokens) Issue(subject string, role Role) (string, Claims, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  subject,
			Issuer:   t.issuer,
			ID:       uuid.NewString(),
			IssuedAt: jwt.NewNumericDate(t.now()),
		},
		Role: role,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.key)
	if err != nil {
		return "", Claims{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, claims, nil
}

// Verify checks the signature, issuer and role of raw.
func (t *Tokens) Verify(raw string) (Claims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{"HS256"})}
	if t.issuer != "" {
		opts = append(opts, jwt.WithIssuer(t.issuer))
	}
	claims := Claims{}
	token, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (interface{}, error) {
		return t.key, nil
	}, opts...)
	if err != nil {
		return Claims{}, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return Claims{}, errors.New("invalid token")
	}
	if claims.Subject == "" || claims.ID == "" {
		return Claims{}, errors.New("invalid token: missing subject or id")
	}
	if !claims.Role.Valid() {
		return Claims{}, fmt.Errorf("invalid token: %w: %q", ErrUnknownRole, claims.Role)
	}
	return claims, nil
}
