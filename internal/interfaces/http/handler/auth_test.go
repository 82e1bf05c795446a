package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/monaco/tienda/internal/application/auth"
	"github.com/monaco/tienda/internal/domain/shared"
	"github.com/monaco/tienda/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupAuthRouter(secret string, cookie config.CookieConfig) *gin.Engine {
	h := NewAuthHandler(auth.NewGateService(secret), cookie, 8*time.Hour, zap.NewNop())
	r := gin.New()
	r.GET("/admin/login", h.LoginPage)
	r.POST("/admin/login", h.Login)
	r.POST("/admin/logout", h.Logout)
	return r
}

func findCookie(w interface{ Result() *http.Response }, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestAuthHandler_Login(t *testing.T) {
	cookieCfg := config.CookieConfig{Path: "/", SameSite: "lax", Secure: true}

	t.Run("correct password sets the session cookie", func(t *testing.T) {
		w, resp := perform(t, setupAuthRouter("clave-123", cookieCfg), http.MethodPost, "/admin/login", `{"password":"clave-123"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, resp.OK)

		c := findCookie(w, auth.CookieName)
		require.NotNil(t, c)
		assert.Equal(t, auth.SessionValue, c.Value)
		assert.True(t, c.HttpOnly)
		assert.True(t, c.Secure)
		assert.Equal(t, "/", c.Path)
		assert.Equal(t, 8*60*60, c.MaxAge)
		assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	})

	tests := []struct {
		name   string
		secret string
		body   string
	}{
		{"wrong password", "clave-123", `{"password":"clave-124"}`},
		{"padded password", "clave-123", `{"password":" clave-123 "}`},
		{"missing password", "clave-123", `{}`},
		{"malformed json", "clave-123", `{"password":`},
		{"empty secret never matches", "", `{"password":""}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := perform(t, setupAuthRouter(tt.secret, cookieCfg), http.MethodPost, "/admin/login", tt.body)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.False(t, resp.OK)
			assert.Equal(t, auth.MsgWrongPassword, resp.Error)
			assert.Equal(t, shared.CodeAuth, resp.Code)
			assert.Nil(t, findCookie(w, auth.CookieName))
		})
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	w, resp := perform(t, setupAuthRouter("x", config.CookieConfig{SameSite: "strict"}), http.MethodPost, "/admin/logout", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.OK)
	c := findCookie(w, auth.CookieName)
	require.NotNil(t, c)
	assert.Empty(t, c.Value)
	assert.Equal(t, -1, c.MaxAge)
	assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
}

func TestAuthHandler_LoginPage(t *testing.T) {
	r := setupAuthRouter("x", config.CookieConfig{})

	_, resp := perform(t, r, http.MethodGet, "/admin/login", "")
	assert.Equal(t, false, dataMap(t, resp)["autenticado"])

	_, resp = perform(t, r, http.MethodGet, "/admin/login", "", &http.Cookie{Name: auth.CookieName, Value: "ok"})
	assert.Equal(t, true, dataMap(t, resp)["autenticado"])

	_, resp = perform(t, r, http.MethodGet, "/admin/login", "", &http.Cookie{Name: auth.CookieName, Value: "OK"})
	assert.Equal(t, false, dataMap(t, resp)["autenticado"])
}
