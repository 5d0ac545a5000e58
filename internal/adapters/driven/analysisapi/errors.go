package analysisapi

import (
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/buger/jsonparser"

	"github.com/custodia-labs/bizlens-cli/internal/core/domain"
)

// maxDetailLength bounds error text taken from a non-JSON response body.
const maxDetailLength = 200

// APIError is a non-2xx response, or a 2xx response reporting success=false.
// It unwraps to domain.ErrNotFound, domain.ErrSchemaValidation or
// domain.ErrRequestFailed.
type APIError struct {
	// Op names the client operation ("analyze", "get analysis", ...).
	Op string

	// StatusCode is the HTTP status.
	StatusCode int

	// Detail is the service's explanation, if it sent one.
	Detail string

	// RequestID is the X-Request-ID sent with the request.
	RequestID string

	kind error
}

// Error implements error.
func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %v (status %d)", e.Op, e.kind, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v (status %d): %s", e.Op, e.kind, e.StatusCode, e.Detail)
}

// Unwrap returns the domain error the status maps to.
func (e *APIError) Unwrap() error {
	return e.kind
}

// UserMessage returns the service's explanation for display.
func (e *APIError) UserMessage() string {
	return e.Detail
}

// statusKind maps an HTTP status to a domain error. Only a 404 on a lookup
// is "not found"; a 5xx never is.
func statusKind(status int, lookup bool) error {
	switch {
	case status == http.StatusNotFound && lookup:
		return domain.ErrNotFound
	case status == http.StatusUnprocessableEntity:
		return domain.ErrSchemaValidation
	default:
		return domain.ErrRequestFailed
	}
}

// extractDetail pulls a message out of an error body. FastAPI sends either
// {"detail": "text"} or {"detail": [{"loc": [...], "msg": "..."}]}.
// Non-JSON bodies are returned trimmed and truncated.
func extractDetail(body []byte) string {
	value, dataType, _, err := jsonparser.Get(body, "detail")
	if err == nil {
		switch dataType {
		case jsonparser.String:
			s, _ := jsonparser.ParseString(value)
			return s
		case jsonparser.Array:
			return validationDetail(value)
		}
	}
	if msg := getString(body, "message"); msg != "" {
		return msg
	}
	if msg := getString(body, "error"); msg != "" {
		return msg
	}

	text := strings.TrimSpace(string(body))
	if strings.HasPrefix(text, "{") || strings.HasPrefix(text, "[") {
		return ""
	}
	return truncateRunes(text, maxDetailLength)
}

// truncateRunes cuts s to at most n runes, marking the cut with "...".
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos] + "..."
		}
		i++
	}
	return s
}

// validationDetail flattens a FastAPI validation error list into
// "business_name: field required; business_count: ...".
func validationDetail(list []byte) string {
	var parts []string
	_, _ = jsonparser.ArrayEach(list, func(item []byte, dataType jsonparser.ValueType, _ int, _ error) {
		if dataType != jsonparser.Object {
			return
		}
		var loc []string
		_, _ = jsonparser.ArrayEach(item, func(seg []byte, segType jsonparser.ValueType, _ int, _ error) {
			switch segType {
			case jsonparser.String:
				s, _ := jsonparser.ParseString(seg)
				if s != "body" {
					loc = append(loc, s)
				}
			case jsonparser.Number:
				loc = append(loc, string(seg))
			}
		}, "loc")

		msg := getString(item, "msg")
		if len(loc) > 0 {
			msg = strings.Join(loc, ".") + ": " + msg
		}
		parts = append(parts, msg)
	})
	return strings.Join(parts, "; ")
}
