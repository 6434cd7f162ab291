package nethttp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"net/http"

	"github.com/anyhttp/anyhttp"
	"go.uber.org/zap"
	"golang.org/x/net/http/httpguts"
)

// DefaultChunkSize is the streaming chunk size used when Config.ChunkSize is zero.
const DefaultChunkSize = 32 * 1024

var (
	// ErrConvertRequest indicates the request could not be translated into a
	// net/http request. No network activity happened.
	ErrConvertRequest = errors.New("failed to convert request")
)

// Doer is the subset of *http.Client used by the adapter.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config configures the adapter.
type Config struct {
	// Doer performs the requests. Nil means http.DefaultClient.
	Doer Doer

	// Buffered reads the whole body before Execute returns and closes the
	// connection body. By default bodies are read lazily.
	Buffered bool

	// ChunkSize bounds the size of chunks yielded by BytesStream.
	// Zero means DefaultChunkSize.
	ChunkSize int

	// Logger receives debug and failure logs. Nil disables logging.
	Logger *zap.SugaredLogger
}

// Client implements anyhttp.Client on top of net/http.
type Client struct {
	doer      Doer
	buffered  bool
	chunkSize int
	logger    *zap.SugaredLogger
}

// Ensure Client always satisfies the anyhttp.Client interface at compile time.
var _ anyhttp.Client = (*Client)(nil)

// New creates an adapter with the provided configuration.
func New(cfg Config) (*Client, error) {
	if cfg.ChunkSize < 0 {
		return nil, fmt.Errorf("chunk size must not be negative, got %d", cfg.ChunkSize)
	}

	c := &Client{
		doer:      cfg.Doer,
		buffered:  cfg.Buffered,
		chunkSize: cfg.ChunkSize,
		logger:    cfg.Logger,
	}
	if c.doer == nil {
		c.doer = http.DefaultClient
	}
	if c.chunkSize == 0 {
		c.chunkSize = DefaultChunkSize
	}
	if c.logger == nil {
		c.logger = zap.NewNop().Sugar()
	}
	return c, nil
}

// Execute converts req, sends it through the Doer, and wraps the result.
// Transport errors are returned unchanged.
func (c *Client) Execute(ctx context.Context, req *anyhttp.Request) (*anyhttp.Response, error) {
	hreq, err := convertRequest(ctx, req)
	if err != nil {
		c.logger.Warnw("Rejected request", "err", err)
		return nil, err
	}

	c.logger.Debugw("Executing request", "method", hreq.Method, "url", hreq.URL.String())

	hresp, err := c.doer.Do(hreq)
	if err != nil {
		c.logger.Errorw("Request failed", "method", hreq.Method, "url", hreq.URL.String(), "err", err)
		return nil, err
	}

	c.logger.Debugw("Received response", "method", hreq.Method, "url", hreq.URL.String(), "status", hresp.StatusCode)

	return c.convertResponse(ctx, hreq, hresp)
}

// convertRequest builds a net/http request from req. Header names and values
// are validated here so bad input never reaches the transport.
func convertRequest(ctx context.Context, req *anyhttp.Request) (*http.Request, error) {
	if req == nil {
		return nil, anyhttp.ErrNilRequest
	}
	if req.URL == nil || !req.URL.IsAbs() || req.URL.Host == "" {
		return nil, errors.Join(ErrConvertRequest, anyhttp.ErrInvalidURL)
	}
	if req.Method != "" && !httpguts.ValidHeaderFieldName(req.Method) {
		return nil, errors.Join(ErrConvertRequest, anyhttp.ErrInvalidMethod)
	}

	for name, values := range req.Header {
		if !httpguts.ValidHeaderFieldName(name) {
			return nil, fmt.Errorf("%w: invalid header name %q", ErrConvertRequest, name)
		}
		for _, v := range values {
			if !httpguts.ValidHeaderFieldValue(v) {
				return nil, fmt.Errorf("%w: invalid value for header %q", ErrConvertRequest, name)
			}
		}
	}

	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	hreq, err := http.NewRequestWithContext(ctx, req.Method, req.URL.String(), body)
	if err != nil {
		return nil, errors.Join(ErrConvertRequest, err)
	}
	hreq.Header = req.Header.Clone()
	if hreq.Header == nil {
		hreq.Header = make(http.Header)
	}
	return hreq, nil
}

// convertResponse wraps hresp, reading the body eagerly in buffered mode.
func (c *Client) convertResponse(ctx context.Context, hreq *http.Request, hresp *http.Response) (*anyhttp.Response, error) {
	// The final URL after redirects lives on the response's request.
	u := hreq.URL
	if hresp.Request != nil && hresp.Request.URL != nil {
		u = hresp.Request.URL
	}

	body := &streamBody{rc: hresp.Body, chunkSize: c.chunkSize}
	if hresp.Body == nil {
		body.rc = http.NoBody
	}

	if !c.buffered {
		return anyhttp.NewResponse(hresp.StatusCode, u, hresp.Header, body), nil
	}

	b, err := body.Bytes(ctx)
	if err != nil {
		c.logger.Errorw("Failed to buffer response body", "url", u.String(), "err", err)
		return nil, err
	}
	return anyhttp.NewResponse(hresp.StatusCode, u, hresp.Header, anyhttp.BufferedBody(b)), nil
}

// streamBody reads a net/http response body on demand.
type streamBody struct {
	rc        io.ReadCloser
	chunkSize int
}

// Bytes reads the remaining body and closes it.
func (b *streamBody) Bytes(ctx context.Context) ([]byte, error) {
	defer func() { _ = b.rc.Close() }()

	if err := ctx.Err(); err != nil {
		return nil, errors.Join(anyhttp.ErrReadBody, err)
	}

	p, err := io.ReadAll(b.rc)
	if err != nil {
		return nil, errors.Join(anyhttp.ErrReadBody, err)
	}
	return p, nil
}

// Stream yields the body in chunks of at most chunkSize bytes. The body is
// closed when the sequence ends or the caller stops early.
func (b *streamBody) Stream(ctx context.Context) iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		defer func() { _ = b.rc.Close() }()

		buf := make([]byte, b.chunkSize)
		for {
			if err := ctx.Err(); err != nil {
				yield(nil, errors.Join(anyhttp.ErrReadBody, err))
				return
			}

			n, err := b.rc.Read(buf)
			if n > 0 {
				if !yield(bytes.Clone(buf[:n]), nil) {
					return
				}
			}
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(nil, errors.Join(anyhttp.ErrReadBody, err))
				return
			}
		}
	}
}

// Close releases the connection without reading the body.
func (b *streamBody) Close() error {
	return b.rc.Close()
}
