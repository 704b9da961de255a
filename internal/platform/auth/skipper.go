package auth

import (
	"github.com/labstack/echo/v4"
)

// publicPaths lists route paths that are served without a session. These
// are infrastructure endpoints and the login route itself.
var publicPaths = map[string]bool{
	"/health":            true,
	"/metrics":           true,
	"/api/v1/auth/login": true,
}

// AuthSkipper returns true for requests whose route should skip session
// resolution.
func AuthSkipper(c echo.Context) bool {
	return publicPaths[c.Path()]
}

// IsPublicPath reports whether path is served without a session.
func IsPublicPath(path string) bool {
	return publicPaths[path]
}
