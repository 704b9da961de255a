package auth

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"
)

type contextKey string

const sessionKey contextKey = "session"

// Verifier is what the session middleware needs to trust a bearer token.
type Verifier struct {
	Tokens  *Tokens
	Revoked *TokenRevocationStore
	// Ready reports whether the application finished starting up. While it
	// returns false every request carries an unresolved session.
	Ready func() bool
	// Skipper bypasses session resolution, e.g. AuthSkipper.
	Skipper func(echo.Context) bool
}

// SessionMiddleware attaches a Session to every request. It never rejects a
// request itself; the gate does that per resource.
func SessionMiddleware(v Verifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if v.Skipper != nil && v.Skipper(c) {
				return next(c)
			}
			header := c.Request().Header.Get("Authorization")
			if header == "" && c.IsWebSocket() {
				// Browsers cannot set headers on the upgrade request.
				if tok := c.QueryParam("access_token"); tok != "" {
					header = "Bearer " + tok
				}
			}
			s := v.resolve(header)
			if s.Authenticated() {
				c.Set("subject", s.Subject)
			}
			ctx := WithSession(c.Request().Context(), s)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

func (v Verifier) resolve(header string) Session {
	if v.Ready != nil && !v.Ready() {
		return Session{State: StateUnresolved}
	}
	if header == "" {
		return Anonymous()
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
		return Anonymous()
	}
	claims, err := v.Tokens.Verify(strings.TrimSpace(parts[1]))
	if err != nil {
		return Anonymous()
	}
	if v.Revoked != nil && v.Revoked.IsRevoked(claims.ID) {
		return Anonymous()
	}
	return sessionFromClaims(claims)
}

// WithSession returns ctx carrying s.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// SessionFromContext returns the session attached to ctx. A context without
// one is treated as unauthenticated.
func SessionFromContext(ctx context.Context) Session {
	s, ok := ctx.Value(sessionKey).(Session)
	if !ok {
		return Anonymous()
	}
	return s
}
