package nwswx

import (
	"encoding/json"
	"fmt"
	"mime"
	"strings"
)

// InvalidFormatError reports a format token that is not in the registry.
type InvalidFormatError struct {
	Value string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid format provided: %q", e.Value)
}

// FormatNotAllowedError reports a registered format that the operation does
// not permit. It is returned before any network I/O takes place.
type FormatNotAllowedError struct {
	Format    Format
	Operation Operation
	Allowed   []Format
}

func (e *FormatNotAllowedError) Error() string {
	names := make([]string, len(e.Allowed))
	for i, f := range e.Allowed {
		names[i] = string(f)
	}
	return fmt.Sprintf("%q format not allowed for %s, expected one of: %s",
		e.Format, e.Operation, strings.Join(names, ", "))
}

// APIError is a structured problem document returned by the upstream API on
// a failed request. Error returns the server-supplied detail text verbatim;
// Unwrap yields the underlying transport failure.
type APIError struct {
	Status int
	Type   string
	Title  string
	Detail string
	cause  error
}

func (e *APIError) Error() string { return e.Detail }

func (e *APIError) Unwrap() error { return e.cause }

// TransportError is a failed HTTP exchange without a structured problem
// body: a non-2xx status with an unrecognized content type, or a request
// that never completed. Status is zero when no response was received.
type TransportError struct {
	Status int
	Body   []byte
	cause  error
}

func (e *TransportError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("request failed: %v", e.cause)
	}
	return fmt.Sprintf("unexpected response: status %d: %s", e.Status, e.Body)
}

func (e *TransportError) Unwrap() error { return e.cause }

// MalformedResponseError reports a structured response that could not be
// decoded: the body was not valid JSON, or an expected sub-field was
// missing. Field names the missing sub-field when that is the cause.
type MalformedResponseError struct {
	Field string
	cause error
}

func (e *MalformedResponseError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("response missing expected field %q", e.Field)
	}
	return fmt.Sprintf("malformed response body: %v", e.cause)
}

func (e *MalformedResponseError) Unwrap() error { return e.cause }

// problemContentType marks the RFC 7807 error documents the API serves on
// failed requests.
const problemContentType = "application/problem+json"

// problemDocument is the wire shape of an RFC 7807 problem response.
type problemDocument struct {
	Type     string `json:"type,omitempty"`
	Title    string `json:"title,omitempty"`
	Status   int    `json:"status,omitempty"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
}

// classifyResponse maps a completed HTTP exchange to an error. 2xx passes
// through as nil. A problem document becomes an APIError with the transport
// failure preserved as its cause; any other failure surfaces as the bare
// TransportError. Media-type parameters (charset and friends) on the
// Content-Type are ignored for the comparison.
func classifyResponse(status int, contentType string, body []byte) error {
	if status >= 200 && status <= 299 {
		return nil
	}

	transportErr := &TransportError{Status: status, Body: body}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || mediaType != problemContentType {
		return transportErr
	}

	var doc problemDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return transportErr
	}

	return &APIError{
		Status: status,
		Type:   doc.Type,
		Title:  doc.Title,
		Detail: doc.Detail,
		cause:  transportErr,
	}
}
