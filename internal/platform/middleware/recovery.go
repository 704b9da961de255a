package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/platform/auth"
)

// PanicRecorder counts recovered panics per route.
type PanicRecorder interface {
	Panic(route string)
}

// Recovery turns a handler panic into a 500 and logs it together with the
// request and session it happened in. recorder may be nil.
func Recovery(logger zerolog.Logger, recorder PanicRecorder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				if r == http.ErrAbortHandler {
					panic(r)
				}
				route := c.Path()
				if route == "" {
					route = "unmatched"
				}
				cause, ok := r.(error)
				if !ok {
					cause = fmt.Errorf("%v", r)
				}

				ev := logger.Error().
					Err(cause).
					Str("request_id", RequestIDFrom(c)).
					Str("method", c.Request().Method).
					Str("route", route).
					Str("path", c.Request().URL.Path)
				if s := auth.SessionFromContext(c.Request().Context()); s.Authenticated() {
					ev = ev.Str("subject", s.Subject).Str("role", string(s.Role))
				}
				ev.Bytes("stack", debug.Stack()).Msg("panic recovered")

				if recorder != nil {
					recorder.Panic(route)
				}
				err = echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
			}()
			return next(c)
		}
	}
}
