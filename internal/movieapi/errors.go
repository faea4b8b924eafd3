package movieapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNotAuthenticated is returned by authenticated operations called without a token.
// No request is sent in that case.
var ErrNotAuthenticated = errors.New("please log in first")

// connectivityMessage is shown when no response was received.
const connectivityMessage = "could not reach the movie service"

// HTTPError is a non-2xx response from the API.
type HTTPError struct {
	Op      string
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NetworkError means the request failed before a response was received.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return connectivityMessage
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ErrorKind classifies an error returned by the client.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindUnauthenticated
	KindNetwork
	KindHTTP
	KindUnknown
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindNetwork:
		return "network"
	case KindHTTP:
		return "http"
	default:
		return "unknown"
	}
}

// Kind reports which class err belongs to.
func Kind(err error) ErrorKind {
	if err == nil {
		return KindNone
	}
	if errors.Is(err, ErrNotAuthenticated) {
		return KindUnauthenticated
	}
	var he *HTTPError
	if errors.As(err, &he) {
		return KindHTTP
	}
	var ne *NetworkError
	if errors.As(err, &ne) {
		return KindNetwork
	}
	return KindUnknown
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var he *HTTPError
	if errors.As(err, &he) {
		return he.Status
	}
	return 0
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	return StatusCode(err) == 404
}

// errorBody covers the error envelopes the API produces.
// detail is either a string or a list of validation items.
type errorBody struct {
	Detail  json.RawMessage `json:"detail"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

type validationItem struct {
	Msg string `json:"msg"`
}

// parseErrorMessage extracts a human-readable message from an error body.
// It returns "" when the body carries none.
func parseErrorMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return ""
	}

	if len(eb.Detail) > 0 {
		var s string
		if err := json.Unmarshal(eb.Detail, &s); err == nil && s != "" {
			return s
		}
		var items []validationItem
		if err := json.Unmarshal(eb.Detail, &items); err == nil {
			msgs := make([]string, 0, len(items))
			for _, it := range items {
				if it.Msg != "" {
					msgs = append(msgs, it.Msg)
				}
			}
			if len(msgs) > 0 {
				return strings.Join(msgs, "; ")
			}
		}
	}
	if eb.Error != "" {
		return eb.Error
	}
	return eb.Message
}

func newHTTPError(op string, status int, body []byte) *HTTPError {
	msg := parseErrorMessage(body)
	if msg == "" {
		msg = fmt.Sprintf("failed to %s", op)
	}
	return &HTTPError{Op: op, Status: status, Message: msg}
}
