package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/platform/auth"
)

// AuditEntry records who touched which collection, and how.
type AuditEntry struct {
	Subject    string
	Role       string
	Collection string
	RecordID   string
	Action     string // read, list, create, update, delete
	Method     string
	Path       string
	IPAddress  string
	RequestID  string
	StatusCode int
	Timestamp  time.Time
}

// AuditRecorder persists audit entries somewhere other than the log.
type AuditRecorder interface {
	RecordAccess(entry AuditEntry) error
}

// AuditRecorderFunc is a function adapter for AuditRecorder.
type AuditRecorderFunc func(entry AuditEntry) error

func (f AuditRecorderFunc) RecordAccess(entry AuditEntry) error {
	return f(entry)
}

// Audit logs every request under /api/v1 once it has been answered, with
// the session that made it. Refused requests are logged at warn.
func Audit(logger zerolog.Logger, recorders ...AuditRecorder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			path := req.URL.Path
			if !strings.HasPrefix(path, apiPrefix) {
				return next(c)
			}

			err := next(c)

			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}
			collection, id := splitAPIPath(path)
			entry := AuditEntry{
				Collection: collection,
				RecordID:   id,
				Action:     auditAction(req.Method, id),
				Method:     req.Method,
				Path:       path,
				IPAddress:  c.RealIP(),
				RequestID:  RequestIDFrom(c),
				StatusCode: status,
				Timestamp:  time.Now().UTC(),
			}
			if s := auth.SessionFromContext(req.Context()); s.Authenticated() {
				entry.Subject = s.Subject
				entry.Role = s.Role.String()
			}

			for _, r := range recorders {
				if r == nil {
					continue
				}
				if recErr := r.RecordAccess(entry); recErr != nil {
					logger.Error().Err(recErr).Str("request_id", entry.RequestID).Msg("failed to record audit entry")
				}
			}

			evt := logger.Info()
			if status == http.StatusUnauthorized || status == http.StatusForbidden {
				evt = logger.Warn()
			}
			evt.
				Str("type", "audit").
				Str("request_id", entry.RequestID).
				Str("subject", entry.Subject).
				Str("role", entry.Role).
				Str("collection", entry.Collection).
				Str("record_id", entry.RecordID).
				Str("action", entry.Action).
				Int("status", entry.StatusCode).
				Msg("access")

			return err
		}
	}
}

const apiPrefix = "/api/v1/"

// splitAPIPath returns the collection and record id of an API path:
//
//	/api/v1/patients            -> patients, ""
//	/api/v1/patients/p1         -> patients, p1
//	/api/v1/patients/p1/invoices -> patients, p1
func splitAPIPath(path string) (collection, id string) {
	segments := strings.Split(strings.Trim(strings.TrimPrefix(path, apiPrefix), "/"), "/")
	collection = segments[0]
	if len(segments) > 1 {
		id = segments[1]
	}
	return collection, id
}

func auditAction(method, id string) string {
	switch method {
	case http.MethodPost:
		if id != "" {
			return "update"
		}
		return "create"
	case http.MethodPut, http.MethodPatch:
		return "update"
	case http.MethodDelete:
		return "delete"
	}
	if id == "" {
		return "list"
	}
	return "read"
}
