package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// ErrorKind classifies a failed request.
type ErrorKind int

const (
	// KindTransport covers network failures and undecodable responses.
	KindTransport ErrorKind = iota
	// KindAuthExpired means the access token was rejected and the one-shot
	// refresh did not recover the session.
	KindAuthExpired
	// KindForbidden is a 403; never retried.
	KindForbidden
	// KindNotFound is a 404.
	KindNotFound
	// KindValidation is a 4xx carrying a field-keyed error payload.
	KindValidation
	// KindServer is any 5xx.
	KindServer
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindAuthExpired:
		return "auth_expired"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindServer:
		return "server"
	}
	return "unknown"
}

// Error is the typed failure result of an API call. Services pass it through
// untouched; stores turn it into a user-facing message.
type Error struct {
	Kind       ErrorKind
	StatusCode int
	// Detail is the backend's top-level error message, when present.
	Detail string
	// Fields holds field-keyed validation messages for KindValidation.
	Fields map[string][]string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api: %s (%s)", e.Detail, e.Kind)
	}
	if len(e.Fields) > 0 {
		parts := make([]string, 0, len(e.Fields))
		for field, msgs := range e.Fields {
			parts = append(parts, field+": "+strings.Join(msgs, ", "))
		}
		return fmt.Sprintf("api: %s (%s)", strings.Join(parts, "; "), e.Kind)
	}
	return fmt.Sprintf("api: request failed with status %d (%s)", e.StatusCode, e.Kind)
}

// Field returns the first message recorded for a field, or "".
func (e *Error) Field(name string) string {
	msgs := e.Fields[name]
	if len(msgs) == 0 {
		return ""
	}
	return msgs[0]
}

// parseError builds a typed Error from a non-2xx response body. Validation
// payloads keyed by field name ({"name": ["required"], ...}) are preserved;
// everything else keeps the top-level detail string.
func parseError(status int, body []byte) *Error {
	apiErr := &Error{StatusCode: status}

	switch {
	case status == http.StatusUnauthorized:
		apiErr.Kind = KindAuthExpired
	case status == http.StatusForbidden:
		apiErr.Kind = KindForbidden
	case status == http.StatusNotFound:
		apiErr.Kind = KindNotFound
	case status >= 500:
		apiErr.Kind = KindServer
	default:
		apiErr.Kind = KindValidation
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		apiErr.Detail = strings.TrimSpace(string(body))
		return apiErr
	}

	for key, raw := range payload {
		if key == "detail" || key == "message" || key == "error" {
			var s string
			if json.Unmarshal(raw, &s) == nil && apiErr.Detail == "" {
				apiErr.Detail = s
			}
			continue
		}

		var msgs []string
		if json.Unmarshal(raw, &msgs) == nil {
			if apiErr.Fields == nil {
				apiErr.Fields = make(map[string][]string)
			}
			apiErr.Fields[key] = msgs
			continue
		}
		var msg string
		if json.Unmarshal(raw, &msg) == nil {
			if apiErr.Fields == nil {
				apiErr.Fields = make(map[string][]string)
			}
			apiErr.Fields[key] = []string{msg}
		}
	}

	return apiErr
}
