package anyhttp

import (
	"context"
	"io"
	"iter"
	"net/http"
	"net/url"
	"sync/atomic"
)

// Body is the payload of a Response.
type Body interface {
	// Bytes returns the full body, waiting for the transport if needed.
	Bytes(ctx context.Context) ([]byte, error)
}

// Streamer is implemented by bodies that can deliver their payload in chunks.
// Each chunk may fail independently of the chunks before it.
type Streamer interface {
	Stream(ctx context.Context) iter.Seq2[[]byte, error]
}

// BufferedBody is a body held entirely in memory. It streams as one chunk.
type BufferedBody []byte

// Bytes returns the buffered payload. It never fails.
func (b BufferedBody) Bytes(context.Context) ([]byte, error) {
	if b == nil {
		return []byte{}, nil
	}
	return []byte(b), nil
}

// Stream yields the buffered payload as a single chunk.
func (b BufferedBody) Stream(ctx context.Context) iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		p, _ := b.Bytes(ctx)
		yield(p, nil)
	}
}

// Response represents an HTTP response returned by a Client.
type Response struct {
	// status is the numeric HTTP status code.
	status int
	// url is the resolved URL the response came from.
	url *url.URL
	// header holds response headers; never nil.
	header http.Header
	// body is read at most once.
	body Body
	// consumed flips on the first body read.
	consumed atomic.Bool
}

// Ensure BufferedBody supports streaming at compile time.
var _ Streamer = BufferedBody(nil)

// NewResponse builds a Response. A nil header is replaced with an empty one
// and a nil body with an empty BufferedBody.
func NewResponse(status int, u *url.URL, header http.Header, body Body) *Response {
	if header == nil {
		header = make(http.Header)
	}
	if body == nil {
		body = BufferedBody(nil)
	}
	return &Response{
		status: status,
		url:    u,
		header: header,
		body:   body,
	}
}

// Status returns the HTTP status code.
func (r *Response) Status() int { return r.status }

// Header returns the response headers.
func (r *Response) Header() http.Header { return r.header }

// URL returns a copy of the resolved response URL.
//
// It panics with ErrURLUnresolved if the response was built without a URL.
// Clients in this module always resolve one.
func (r *Response) URL() *url.URL {
	if r.url == nil {
		panic(ErrURLUnresolved)
	}
	u := *r.url
	return &u
}

// Bytes consumes the response and returns the full body.
func (r *Response) Bytes(ctx context.Context) ([]byte, error) {
	if !r.consumed.CompareAndSwap(false, true) {
		return nil, ErrBodyConsumed
	}
	return r.body.Bytes(ctx)
}

// BytesStream consumes the response and returns a lazy sequence of body
// chunks. Bodies that do not implement Streamer are yielded as one chunk.
// The sequence cannot be restarted.
func (r *Response) BytesStream(ctx context.Context) iter.Seq2[[]byte, error] {
	if !r.consumed.CompareAndSwap(false, true) {
		return func(yield func([]byte, error) bool) {
			yield(nil, ErrBodyConsumed)
		}
	}

	if s, ok := r.body.(Streamer); ok {
		return s.Stream(ctx)
	}

	body := r.body
	return func(yield func([]byte, error) bool) {
		p, err := body.Bytes(ctx)
		yield(p, err)
	}
}

// Close releases an unread body. It is safe to call after the body was read.
func (r *Response) Close() error {
	r.consumed.Store(true)
	if c, ok := r.body.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
