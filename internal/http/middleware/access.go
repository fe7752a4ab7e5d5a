package middleware

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ramcivil/monitoring-service/internal/model"
)

const (
	loginPath     = "/auth/login"
	forbiddenPath = "/forbidden"
)

// Paths any caller may reach without a session.
var publicPaths = []string{
	"/auth/",
	"/favicon.ico",
	"/robots.txt",
	"/healthz",
}

// GET paths that still require admin: mutation sub-pages and every API
// path not explicitly published under /api/public.
var adminPathPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)/dashboard/.*/(new|edit|delete)`),
	regexp.MustCompile(`(?i)/dashboard/.*/spk/.*/(edit|notifikasi/new)`),
}

// Access is the request gate: no session means login redirect (or 401
// for API calls); a guest session may read non-admin paths but never
// mutate; admin passes everywhere.
func Access() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if isPublicPath(path) {
			c.Next()
			return
		}

		_, hasSession := MustPrincipal(c)
		if !hasSession {
			if isAPIPath(path) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
				return
			}
			c.Redirect(http.StatusSeeOther, loginPath)
			c.Abort()
			return
		}

		if !requiresAdmin(c.Request.Method, path) {
			c.Next()
			return
		}
		if RoleOf(c) == model.RoleAdmin {
			c.Next()
			return
		}

		if isAPIPath(path) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		c.Redirect(http.StatusSeeOther, forbiddenPath)
		c.Abort()
	}
}

func isPublicPath(path string) bool {
	for _, p := range publicPaths {
		if strings.HasSuffix(p, "/") {
			if strings.HasPrefix(path, p) {
				return true
			}
			continue
		}
		if path == p {
			return true
		}
	}
	return false
}

func isAPIPath(path string) bool {
	return strings.HasPrefix(path, "/api/") || strings.HasPrefix(path, "/ws/")
}

func requiresAdmin(method, path string) bool {
	if method != http.MethodGet {
		return true
	}
	if strings.HasPrefix(path, "/api/") && !strings.HasPrefix(path, "/api/public/") {
		return true
	}
	for _, pattern := range adminPathPatterns {
		if pattern.MatchString(path) {
			return true
		}
	}
	return false
}
