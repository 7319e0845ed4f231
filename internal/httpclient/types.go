package httpclient

import (
	"context"
	"net/url"
)

// HTTPRequest describes one outgoing request
type HTTPRequest struct {
	URL     string
	Method  string
	Query   url.Values
	Headers map[string]string
	// Body is kept as bytes so retries can resend it.
	Body    []byte
	Context context.Context
}

// HTTPResponse is a fully read response
type HTTPResponse struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte
}

// IsSuccess reports whether the status code is 2xx
func (r *HTTPResponse) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}
