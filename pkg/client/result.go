package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime"
	"strings"
)

// Kind tags how a response body was interpreted.
type Kind int

const (
	KindText Kind = iota
	KindJSON
)

func (k Kind) String() string {
	if k == KindJSON {
		return "json"
	}
	return "text"
}

// Result is a response body: structured JSON or plain text, decided by
// the response Content-Type.
type Result struct {
	kind Kind
	raw  []byte
}

// JSONResult wraps raw JSON bytes.
func JSONResult(raw []byte) Result { return Result{kind: KindJSON, raw: raw} }

// TextResult wraps a plain-text body.
func TextResult(text string) Result { return Result{kind: KindText, raw: []byte(text)} }

func (r Result) Kind() Kind   { return r.kind }
func (r Result) IsJSON() bool { return r.kind == KindJSON }

// Empty reports whether the body had no content.
func (r Result) Empty() bool { return len(bytes.TrimSpace(r.raw)) == 0 }

// Text returns the body as received.
func (r Result) Text() string { return string(r.raw) }

// JSON returns the raw JSON, or nil for text results.
func (r Result) JSON() json.RawMessage {
	if r.kind != KindJSON {
		return nil
	}
	return json.RawMessage(r.raw)
}

// Decode unmarshals a JSON result into v.
func (r Result) Decode(v any) error {
	if r.kind != KindJSON {
		return fmt.Errorf("%w: response is %s, not json", ErrDecode, r.kind)
	}
	if err := json.Unmarshal(r.raw, v); err != nil {
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return nil
}

// Value returns the decoded body: a generic JSON value or the text.
func (r Result) Value() (any, error) {
	if r.kind != KindJSON {
		return r.Text(), nil
	}
	if r.Empty() {
		return nil, nil
	}
	var v any
	if err := r.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// MarshalJSON emits JSON results verbatim and text results as a string.
func (r Result) MarshalJSON() ([]byte, error) {
	if r.kind == KindJSON && !r.Empty() {
		return r.raw, nil
	}
	if r.kind == KindJSON {
		return []byte("null"), nil
	}
	return json.Marshal(r.Text())
}

// isJSONContentType matches application/json and any +json subtype.
func isJSONContentType(contentType string) bool {
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.Contains(strings.ToLower(contentType), "application/json")
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

// errorMessage picks the best human-readable message from an error body:
// a "message" field, then the body itself, then the status line.
func errorMessage(body Result, code int, statusText string) string {
	fallback := statusLine(code, statusText)
	if body.Empty() {
		return fallback
	}
	if body.kind == KindText {
		return strings.TrimSpace(body.Text())
	}

	var v any
	if err := json.Unmarshal(body.raw, &v); err != nil {
		return fallback
	}
	switch t := v.(type) {
	case string:
		if t != "" {
			return t
		}
	case map[string]any:
		if msg, ok := t["message"]; ok && msg != nil {
			if s, ok := msg.(string); ok {
				if s != "" {
					return s
				}
			} else if b, err := json.Marshal(msg); err == nil {
				return string(b)
			}
		}
		if len(t) > 0 {
			return strings.TrimSpace(body.Text())
		}
	case nil:
	default:
		return strings.TrimSpace(body.Text())
	}
	return fallback
}
