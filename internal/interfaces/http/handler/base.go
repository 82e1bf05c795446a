package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/monaco/tienda/internal/domain/shared"
	"github.com/monaco/tienda/internal/interfaces/http/dto"
	"github.com/monaco/tienda/internal/interfaces/http/middleware"
)

// MsgInvalidID is returned for a path id that is not a UUID
const MsgInvalidID = "invalid id"

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a success response with listing tallies
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, count int, total float64) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, dto.Meta{Count: count, Total: total}))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// Error sends an error response with the appropriate status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, middleware.GetRequestID(c)))
}

// HandleError converts domain errors to HTTP responses. Anything else is
// reported as an internal error without leaking its text.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		h.Error(c, dto.GetHTTPStatus(domainErr.Code), domainErr.Code, domainErr.Message)
		return
	}

	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, "internal server error")
}

// parseID reads the :id path parameter, answering 400 when it is not a UUID
func (h *BaseHandler) parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.HandleError(c, shared.NewValidationError(MsgInvalidID))
		return uuid.Nil, false
	}
	return id, true
}

// body parses the request body leniently
func body(c *gin.Context) dto.Body {
	return dto.ParseBody(c.Request.Body)
}
