package httpclient

import (
	"encoding/json"
	"net/textproto"
)

// Request describes an outbound HTTP request.
type Request struct {
	// Method is the HTTP method (GET, POST, PUT, PATCH, DELETE, etc).
	Method string
	// Path is resolved against the client's BaseURL. An absolute URL is
	// used as-is.
	Path string
	// Headers are request-specific headers. They override client defaults
	// on conflict.
	Headers map[string]string
	// Query are URL query parameters.
	Query map[string]string
	// Body is the request body. io.Reader, []byte, and string are sent
	// verbatim; anything else is JSON-encoded.
	Body any
	// Auth overrides the client-level auth for this request.
	Auth *AuthConfig
}

// Response is the result of an HTTP request. The body is fully read before
// the response is returned, so Response carries no open connection.
type Response struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Headers are the response headers, flattened to single values.
	Headers map[string]string
	// Body is the raw response body.
	Body []byte
}

// IsSuccess returns true if the status code is 2xx.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// IsError returns true if the status code is 4xx or 5xx.
func (r *Response) IsError() bool {
	return r.StatusCode >= 400
}

// Header returns the named response header, matching case-insensitively.
func (r *Response) Header(name string) string {
	if v, ok := r.Headers[name]; ok {
		return v
	}
	canonical := textproto.CanonicalMIMEHeaderKey(name)
	return r.Headers[canonical]
}

// DecodeJSON unmarshals the response body into v. An empty body is a no-op.
func (r *Response) DecodeJSON(v any) error {
	if len(r.Body) == 0 {
		return nil
	}
	return json.Unmarshal(r.Body, v)
}
