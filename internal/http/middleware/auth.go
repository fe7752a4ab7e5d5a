package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ramcivil/monitoring-service/internal/auth"
	"github.com/ramcivil/monitoring-service/internal/model"
	"github.com/ramcivil/monitoring-service/internal/repository"
)

const (
	principalKey = "principal"
	roleKey      = "role"
)

// Auth resolves the session, if any. A missing or invalid token is not
// an error here; the access gate decides what anonymous callers may do.
// The role is looked up fresh on every request.
func Auth(parser *auth.Parser, resolver *auth.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Next()
			return
		}

		principal, err := parser.Parse(token)
		if err != nil {
			c.Next()
			return
		}

		role := resolver.Resolve(c.Request.Context(), principal.UserID)

		c.Set(principalKey, principal)
		c.Set(roleKey, role)
		c.Request = c.Request.WithContext(
			repository.WithOwner(c.Request.Context(), principal.UserID),
		)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if cookie, err := c.Cookie("access_token"); err == nil {
		return cookie
	}
	return ""
}

func MustPrincipal(c *gin.Context) (auth.Principal, bool) {
	value, ok := c.Get(principalKey)
	if !ok {
		return auth.Principal{}, false
	}
	principal, ok := value.(auth.Principal)
	return principal, ok
}

func RoleOf(c *gin.Context) model.Role {
	value, ok := c.Get(roleKey)
	if !ok {
		return model.RoleGuest
	}
	role, ok := value.(model.Role)
	if !ok {
		return model.RoleGuest
	}
	return role
}
