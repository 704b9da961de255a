package auth

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Outcome is the verdict of the gate.
type Outcome string

const (
	OutcomeLoading Outcome = "loading"
	OutcomeAllow   Outcome = "allow"
	OutcomeDeny    Outcome = "deny"
)

const (
	NoticeAuthRequired = "authentication required"
	NoticeAccessDenied = "access denied"

	LoginPath = "/login"
	HomePath  = "/"
)

// Decision is what the gate tells the caller to do with a request.
type Decision struct {
	Outcome  Outcome `json:"outcome"`
	Notice   string  `json:"notice,omitempty"`
	Redirect string  `json:"redirect,omitempty"`
}

// Allowed reports whether the decision lets the request through.
func (d Decision) Allowed() bool { return d.Outcome == OutcomeAllow }

// DecisionRecorder receives every decision, e.g. for metrics.
type DecisionRecorder func(resource Resource, outcome Outcome)

// Gate decides per resource whether a session may enter.
type Gate struct {
	logger   zerolog.Logger
	recorder DecisionRecorder
}

func NewGate(logger zerolog.Logger, recorder DecisionRecorder) *Gate {
	return &Gate{logger: logger, recorder: recorder}
}

// Decide evaluates s against resource. location is the path the caller asked
// for and is carried in the login redirect.
func (g *Gate) Decide(s Session, resource Resource, location string) Decision {
	d := decide(s, resource, location)
	if g.recorder != nil {
		g.recorder(resource, d.Outcome)
	}
	if d.Outcome == OutcomeDeny {
		g.logger.Info().
			Str("resource", string(resource)).
			Str("subject", s.Subject).
			Str("role", string(s.Role)).
			Str("notice", d.Notice).
			Msg("access denied")
	}
	return d
}

func decide(s Session, resource Resource, location string) Decision {
	switch s.State {
	case StateUnresolved:
		return Decision{Outcome: OutcomeLoading}
	case StateUnauthenticated:
		return Decision{
			Outcome:  OutcomeDeny,
			Notice:   NoticeAuthRequired,
			Redirect: LoginRedirect(location),
		}
	case StateAuthenticated:
	default:
		return Decision{Outcome: OutcomeDeny, Notice: NoticeAuthRequired, Redirect: LoginRedirect(location)}
	}

	rule, err := Lookup(resource)
	if err != nil {
		return Decision{Outcome: OutcomeDeny, Notice: NoticeAccessDenied, Redirect: HomePath}
	}
	if !rule.Restricted() || s.Role == RoleAdmin || rule.Permits(s.Role) {
		return Decision{Outcome: OutcomeAllow}
	}
	return Decision{Outcome: OutcomeDeny, Notice: NoticeAccessDenied, Redirect: HomePath}
}

// LoginRedirect builds the login location that returns to location after
// signing in.
func LoginRedirect(location string) string {
	if location == "" {
		return LoginPath
	}
	return LoginPath + "?" + url.Values{"next": {location}}.Encode()
}

// retryAfterSeconds is sent with 503 responses while the session resolves.
const retryAfterSeconds = 1

// Require returns middleware that admits a request only when the gate
// allows the request's session into resource.
func (g *Gate) Require(resource Resource) echo.MiddlewareFunc {
	if _, err := Lookup(resource); err != nil {
		panic(err)
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			s := SessionFromContext(c.Request().Context())
			d := g.Decide(s, resource, c.Request().URL.RequestURI())
			switch d.Outcome {
			case OutcomeAllow:
				return next(c)
			case OutcomeLoading:
				c.Response().Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds))
				return echo.NewHTTPError(http.StatusServiceUnavailable, d)
			}
			if s.Authenticated() {
				return echo.NewHTTPError(http.StatusForbidden, d)
			}
			return echo.NewHTTPError(http.StatusUnauthorized, d)
		}
	}
}

// Check is Decide for callers that prefer an error. It returns nil when the
// decision allows access.
func (g *Gate) Check(s Session, resource Resource) error {
	d := g.Decide(s, resource, "")
	if d.Allowed() {
		return nil
	}
	if d.Outcome == OutcomeLoading {
		return errors.New("session not resolved")
	}
	return errors.New(d.Notice)
}
