package nwswx

import (
	"encoding/json"
	"fmt"
)

// Result is the decoded outcome of one API call.
type Result struct {
	// Format is the canonical requested format, empty when the call relied
	// on the server default.
	Format Format
	// ContentType is the Content-Type header of the response.
	ContentType string
	// Body is the raw response body exactly as received.
	Body []byte
	// JSON holds the structured payload for JSON-LD calls, after any
	// operation-specific unwrapping. Nil for every other format: DWML,
	// CAP, ATOM, and GeoJSON responses stay opaque text for the caller to
	// interpret.
	JSON json.RawMessage
}

// Text returns the raw body as a string.
func (r *Result) Text() string { return string(r.Body) }

// Structured reports whether the call produced a parsed JSON payload.
func (r *Result) Structured() bool { return r.JSON != nil }

// Decode unmarshals the structured payload into v. It fails when the call
// was not made in the JSON-LD format.
func (r *Result) Decode(v any) error {
	if r.JSON == nil {
		return fmt.Errorf("no structured payload to decode (format %q)", r.Format)
	}
	return json.Unmarshal(r.JSON, v)
}

// decodeResponse applies the format-driven decode rules for one operation.
// Only the JSON-LD format is parsed; when the operation's contract names an
// unwrap field, the Result carries that field's value instead of the
// top-level object.
func decodeResponse(op Operation, format Format, contentType string, body []byte) (*Result, error) {
	res := &Result{Format: format, ContentType: contentType, Body: body}
	if format != JSONLD {
		return res, nil
	}

	if unwrap := endpoints[op].unwrap; unwrap != "" {
		var wrapper map[string]json.RawMessage
		if err := json.Unmarshal(body, &wrapper); err != nil {
			return nil, &MalformedResponseError{cause: err}
		}
		field, ok := wrapper[unwrap]
		if !ok {
			return nil, &MalformedResponseError{Field: unwrap}
		}
		res.JSON = field
		return res, nil
	}

	var payload json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &MalformedResponseError{cause: err}
	}
	res.JSON = payload
	return res, nil
}
