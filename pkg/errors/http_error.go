package custom_error

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

type CustomError interface {
	Error() string
	StatusCode() int
	Body() []byte
}

type responseError struct {
	status int
	body   []byte
}

func (e *responseError) StatusCode() int {
	return e.status
}

func (e *responseError) Body() []byte {
	return e.body
}

// Message returns the server "error" or "detail" field when the body carries one.
func (e *responseError) Message() string {
	var payload map[string]interface{}
	if err := json.Unmarshal(e.body, &payload); err != nil {
		return ""
	}
	for _, key := range []string{"error", "detail", "message"} {
		if v, ok := payload[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

// dump renders the body the way the pages print server errors: compact JSON.
func (e *responseError) dump() string {
	trimmed := bytes.TrimSpace(e.body)
	if len(trimmed) == 0 {
		return http.StatusText(e.status)
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, trimmed); err != nil {
		return string(trimmed)
	}
	return compact.String()
}

// ValidationError is a 400 with a field error map.
type ValidationError struct{ responseError }

// UnauthorizedError covers 401 and 403.
type UnauthorizedError struct{ responseError }

type NotFoundError struct{ responseError }

// ResponseError is any other non-2xx status.
type ResponseError struct{ responseError }

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed (status: %d): %s", e.status, e.dump())
}

// Fields decodes {"field": ["msg", ...]} style bodies.
func (e *ValidationError) Fields() map[string][]string {
	fields := map[string][]string{}
	var payload map[string]interface{}
	if err := json.Unmarshal(e.body, &payload); err != nil {
		return fields
	}
	for key, value := range payload {
		switch v := value.(type) {
		case string:
			fields[key] = append(fields[key], v)
		case []interface{}:
			for _, item := range v {
				fields[key] = append(fields[key], fmt.Sprintf("%v", item))
			}
		}
	}
	return fields
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("not authorized (status: %d): %s", e.status, e.dump())
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("resource not found (status: %d): %s", e.status, e.dump())
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("request failed (status: %d): %s", e.status, e.dump())
}

// WrapHTTPError maps a non-2xx backend response onto a typed error.
func WrapHTTPError(status int, body []byte) CustomError {
	base := responseError{status: status, body: body}
	switch status {
	case http.StatusBadRequest:
		return &ValidationError{base}
	case http.StatusUnauthorized, http.StatusForbidden:
		return &UnauthorizedError{base}
	case http.StatusNotFound:
		return &NotFoundError{base}
	default:
		return &ResponseError{base}
	}
}

// ServerMessage extracts the human readable message of a wrapped response error.
func ServerMessage(err error) string {
	var m interface{ Message() string }
	if errors.As(err, &m) {
		return m.Message()
	}
	return ""
}
