package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthHandler_Check(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		r := gin.New()
		r.GET("/health", NewHealthHandler(pingFunc(func(context.Context) error { return nil })).Check)

		w, resp := perform(t, r, http.MethodGet, "/health", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, resp.OK)
		assert.Equal(t, "ok", dataMap(t, resp)["database"])
	})

	t.Run("database down", func(t *testing.T) {
		r := gin.New()
		r.GET("/health", NewHealthHandler(pingFunc(func(context.Context) error { return errors.New("connection refused") })).Check)

		w, resp := perform(t, r, http.MethodGet, "/health", "")

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.False(t, resp.OK)
		assert.Equal(t, "database unavailable", resp.Error)
		assert.Equal(t, "degraded", dataMap(t, resp)["status"])
	})
}
