package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/monaco/tienda/internal/domain/shared"
	"github.com/monaco/tienda/internal/interfaces/http/dto"
)

// AdminLoginPath is the only /admin path served without a session
const AdminLoginPath = "/admin/login"

// SessionChecker validates the admin cookie value
type SessionChecker interface {
	IsAuthenticated(cookieValue string) bool
}

// AdminGate guards every path under /admin, routed or not, so it is
// installed on the engine. Page loads without a session are redirected to
// the login page; other methods get 401.
func AdminGate(gate SessionChecker, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !isAdminPath(c.Request.URL.Path) || c.Request.URL.Path == AdminLoginPath || hasSession(c, gate, cookieName) {
			c.Next()
			return
		}

		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead {
			c.Redirect(http.StatusFound, AdminLoginPath)
			c.Abort()
			return
		}
		abortUnauthorized(c)
	}
}

// RequireAdmin guards API routes with a 401 envelope
func RequireAdmin(gate SessionChecker, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !hasSession(c, gate, cookieName) {
			abortUnauthorized(c)
			return
		}
		c.Next()
	}
}

func isAdminPath(p string) bool {
	return p == "/admin" || strings.HasPrefix(p, "/admin/")
}

func hasSession(c *gin.Context, gate SessionChecker, cookieName string) bool {
	value, err := c.Cookie(cookieName)
	return err == nil && gate.IsAuthenticated(value)
}

func abortUnauthorized(c *gin.Context) {
	err := shared.ErrUnauthorized
	c.AbortWithStatusJSON(dto.GetHTTPStatus(err.Code), dto.NewErrorResponseWithRequestID(
		err.Code,
		err.Message,
		GetRequestID(c),
	))
}
