package auth

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// loginRequest is the request body for POST /auth/login.
type loginRequest struct {
	Identifier string `json:"identifier"`
	Secret     string `json:"secret"`
	Role       string `json:"role"`
}

// loginResponse is the response for POST /auth/login.
type loginResponse struct {
	Token   string  `json:"token"`
	Session Session `json:"session"`
}

// revocationListResponse is the response for GET /auth/revocations.
type revocationListResponse struct {
	Count   int              `json:"count"`
	Entries []RevocationInfo `json:"entries"`
}

// Handler serves the session endpoints. Each request carries its own
// bearer token; the handler keeps no per-user state.
type Handler struct {
	accounts *Directory
	tokens   *Tokens
	revoked  *TokenRevocationStore
	gate     *Gate
}

func NewHandler(accounts *Directory, tokens *Tokens, revoked *TokenRevocationStore, gate *Gate) *Handler {
	return &Handler{accounts: accounts, tokens: tokens, revoked: revoked, gate: gate}
}

// RegisterRoutes mounts the session endpoints. loginMW guards the login
// route only, e.g. with a tighter rate limit.
func (h *Handler) RegisterRoutes(api *echo.Group, loginMW ...echo.MiddlewareFunc) {
	api.POST("/auth/login", h.Login, loginMW...)
	api.GET("/auth/session", h.CurrentSession)
	api.GET("/navigation", h.Navigation)

	api.POST("/auth/logout", h.Logout, h.gate.Require(ResourceProfile))
	api.GET("/auth/revocations", h.ListRevocations, h.gate.Require(ResourceSettings))
}

func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Identifier == "" || req.Secret == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "identifier and secret are required")
	}
	role, err := ParseRole(req.Role)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	acct, err := h.accounts.Authenticate(req.Identifier, req.Secret, role)
	switch {
	case errors.Is(err, ErrRoleNotPermitted):
		return echo.NewHTTPError(http.StatusForbidden, ErrRoleNotPermitted.Error())
	case err != nil:
		return echo.NewHTTPError(http.StatusUnauthorized, ErrInvalidCredentials.Error())
	}
	raw, claims, err := h.tokens.Issue(acct.Identifier, role)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, loginResponse{Token: raw, Session: sessionFromClaims(claims)})
}

func (h *Handler) Logout(c echo.Context) error {
	s := SessionFromContext(c.Request().Context())
	if err := h.revoked.RevokeForUser(c.Request().Context(), s.TokenID, s.Subject); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) CurrentSession(c echo.Context) error {
	return c.JSON(http.StatusOK, SessionFromContext(c.Request().Context()))
}

func (h *Handler) Navigation(c echo.Context) error {
	return c.JSON(http.StatusOK, Navigation(SessionFromContext(c.Request().Context())))
}

func (h *Handler) ListRevocations(c echo.Context) error {
	entries := h.revoked.Entries()
	return c.JSON(http.StatusOK, revocationListResponse{
		Count:   len(entries),
		Entries: entries,
	})
}
