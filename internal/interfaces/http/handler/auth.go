package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/monaco/tienda/internal/application/auth"
	"github.com/monaco/tienda/internal/infrastructure/config"
	"go.uber.org/zap"
)

// AuthHandler serves the admin login and logout endpoints
type AuthHandler struct {
	BaseHandler
	gate   *auth.GateService
	cookie config.CookieConfig
	maxAge time.Duration
	logger *zap.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(gate *auth.GateService, cookie config.CookieConfig, maxAge time.Duration, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		gate:   gate,
		cookie: cookie,
		maxAge: maxAge,
		logger: logger,
	}
}

// SessionResponse reports the admin session state
type SessionResponse struct {
	Authenticated bool `json:"autenticado"`
}

// LoginPage handles GET /admin/login
func (h *AuthHandler) LoginPage(c *gin.Context) {
	value, err := c.Cookie(auth.CookieName)
	h.Success(c, SessionResponse{Authenticated: err == nil && h.gate.IsAuthenticated(value)})
}

// Login handles POST /admin/login
func (h *AuthHandler) Login(c *gin.Context) {
	password := body(c).RawString("password")
	if err := h.gate.Login(password); err != nil {
		h.logger.Warn("Admin login rejected", zap.String("client_ip", c.ClientIP()))
		h.HandleError(c, err)
		return
	}

	setCookie(c, h.cookie, auth.CookieName, auth.SessionValue, int(h.maxAge.Seconds()))
	h.Success(c, SessionResponse{Authenticated: true})
}

// Logout handles POST /admin/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	setCookie(c, h.cookie, auth.CookieName, "", -1)
	h.Success(c, SessionResponse{Authenticated: false})
}

// setCookie writes an HTTP-only cookie. gin's SetCookie only takes the
// SameSite mode from the context, so the header is built directly.
func setCookie(c *gin.Context, cfg config.CookieConfig, name, value string, maxAge int) {
	path := cfg.Path
	if path == "" {
		path = "/"
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Domain:   cfg.Domain,
		MaxAge:   maxAge,
		Secure:   cfg.Secure,
		HttpOnly: true,
		SameSite: sameSite(cfg.SameSite),
	})
}

func sameSite(mode string) http.SameSite {
	switch strings.ToLower(mode) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
