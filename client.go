package anyhttp

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
)

// Client executes HTTP requests. Implementations include the nethttp and
// hostclient adapters and mock.MockClient.
type Client interface {
	// Execute sends req and returns the response. A non-nil error means no
	// response is available; HTTP error statuses are not errors.
	Execute(ctx context.Context, req *Request) (*Response, error)
}

// Request represents an HTTP request to be executed by a Client.
type Request struct {
	// Method is the HTTP method (e.g., GET, POST).
	Method string
	// URL is the request URL.
	URL *url.URL
	// Header holds request headers. Nil is treated as empty.
	Header http.Header
	// Body is the full request payload. Nil means no body.
	Body []byte
}

// NewRequest creates a Request after validating the method and URL.
//
// The URL only has to parse; relative URLs are accepted and left for the
// executing Client to reject or resolve.
func NewRequest(method, rawURL string, body []byte) (*Request, error) {
	// Validate the HTTP method first
	if !isValidMethod(method) {
		return nil, ErrInvalidMethod
	}

	// Validate the URL
	u, err := url.Parse(rawURL)
	if err != nil || u == nil || rawURL == "" {
		return nil, ErrInvalidURL
	}

	return &Request{
		Method: method,
		URL:    u,
		Header: make(http.Header),
		Body:   body,
	}, nil
}

// Clone returns a deep copy of r, including its URL, headers, and body.
func (r *Request) Clone() *Request {
	if r == nil {
		return nil
	}

	out := &Request{
		Method: r.Method,
		Header: r.Header.Clone(),
	}
	if r.URL != nil {
		// Userinfo is immutable, so a shallow copy is enough.
		u := *r.URL
		out.URL = &u
	}
	if out.Header == nil {
		out.Header = make(http.Header)
	}
	if r.Body != nil {
		out.Body = bytes.Clone(r.Body)
	}
	return out
}

// Get issues a GET to rawURL through c.
func Get(ctx context.Context, c Client, rawURL string) (*Response, error) {
	req, err := NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	return c.Execute(ctx, req)
}

// Post issues a POST to rawURL through c with the given content type and body.
func Post(ctx context.Context, c Client, rawURL, contentType string, body []byte) (*Response, error) {
	return withBody(ctx, c, http.MethodPost, rawURL, contentType, body)
}

// Put issues a PUT to rawURL through c with the given content type and body.
func Put(ctx context.Context, c Client, rawURL, contentType string, body []byte) (*Response, error) {
	return withBody(ctx, c, http.MethodPut, rawURL, contentType, body)
}

// Delete issues a DELETE to rawURL through c.
func Delete(ctx context.Context, c Client, rawURL string) (*Response, error) {
	req, err := NewRequest(http.MethodDelete, rawURL, nil)
	if err != nil {
		return nil, err
	}
	return c.Execute(ctx, req)
}

func withBody(ctx context.Context, c Client, method, rawURL, contentType string, body []byte) (*Response, error) {
	req, err := NewRequest(method, rawURL, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return c.Execute(ctx, req)
}

func isValidMethod(method string) bool {
	switch method {
	case http.MethodGet,
		http.MethodHead,
		http.MethodPost,
		http.MethodPut,
		http.MethodPatch,
		http.MethodDelete,
		http.MethodConnect,
		http.MethodOptions,
		http.MethodTrace:
		return true
	default:
		return false
	}
}
