package dto

// Response is the JSON envelope every endpoint answers with
type Response struct {
	OK        bool   `json:"ok"`
	Data      any    `json:"data,omitempty"`
	Error     string `json:"error,omitempty"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
	Meta      *Meta  `json:"meta,omitempty"`
}

// Meta carries tallies for a filtered listing
type Meta struct {
	Count int     `json:"cantidad"`
	Total float64 `json:"total"`
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(data any) Response {
	return Response{
		OK:   true,
		Data: data,
	}
}

// NewSuccessResponseWithMeta creates a success response with listing tallies
func NewSuccessResponseWithMeta(data any, meta Meta) Response {
	return Response{
		OK:   true,
		Data: data,
		Meta: &meta,
	}
}

// NewErrorResponse creates an error response
func NewErrorResponse(code, message string) Response {
	return Response{
		OK:    false,
		Error: message,
		Code:  code,
	}
}

// NewErrorResponseWithRequestID creates an error response tagged with the request id
func NewErrorResponseWithRequestID(code, message, requestID string) Response {
	resp := NewErrorResponse(code, message)
	resp.RequestID = requestID
	return resp
}
