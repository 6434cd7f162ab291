package mock

import (
	"bytes"
	"net/http"
	"net/url"
)

// Response describes a synthetic HTTP response queued on a MockClient.
type Response struct {
	// status is the HTTP status code to return.
	status int
	// body is the raw payload returned to callers.
	body []byte
	// header holds headers to include in the response.
	header http.Header
	// url is the explicit response URL; nil means echo the request URL.
	url *url.URL
}

// NewResponse creates a response with the given status code, an empty body,
// and no explicit URL.
func NewResponse(status int) *Response {
	return &Response{
		status: status,
		header: make(http.Header),
	}
}

// WithBody sets the response body.
func (r *Response) WithBody(body []byte) *Response {
	r.body = bytes.Clone(body)
	return r
}

// WithBodyString sets the response body from a string.
func (r *Response) WithBodyString(body string) *Response {
	r.body = []byte(body)
	return r
}

// WithURL sets the response URL. A URL that does not parse as an absolute
// URL is ignored, so the request URL is echoed instead.
func (r *Response) WithURL(rawURL string) *Response {
	u, err := url.Parse(rawURL)
	if err != nil || !u.IsAbs() {
		r.url = nil
		return r
	}
	r.url = u
	return r
}

// WithHeader adds a header value to the response.
func (r *Response) WithHeader(key, value string) *Response {
	r.header.Add(key, value)
	return r
}

// clone copies r so later builder calls do not affect a queued entry.
func (r *Response) clone() *Response {
	c := &Response{
		status: r.status,
		body:   bytes.Clone(r.body),
		header: r.header.Clone(),
	}
	if c.header == nil {
		c.header = make(http.Header)
	}
	if r.url != nil {
		u := *r.url
		c.url = &u
	}
	return c
}
