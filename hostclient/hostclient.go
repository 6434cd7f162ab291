package hostclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/anyhttp/anyhttp"
	proto "github.com/tarmac-project/protobuf-go/sdk/http"
	wapc "github.com/wapc/wapc-guest-tinygo"
	"go.uber.org/zap"
)

// DefaultNamespace is used when no explicit namespace is provided.
const DefaultNamespace = "tarmac"

const (
	capabilityName = "httpclient"
	functionName   = "call"
)

const (
	hostStatusOK       = int32(200)
	hostStatusPartial  = int32(206)
	hostStatusBadInput = int32(400)
	hostStatusMissing  = int32(404)
	hostStatusError    = int32(500)
)

var (
	// ErrHostCall indicates that a waPC host invocation failed.
	ErrHostCall = errors.New("host call failed")

	// ErrHostResponseInvalid signals that the host returned an invalid or unexpected payload.
	ErrHostResponseInvalid = errors.New("host response is invalid or unexpected")

	// ErrHostError means the host completed the call but reported a failure status.
	ErrHostError = errors.New("host returned an error status")

	// ErrMarshalRequest wraps failures while encoding the request payload.
	ErrMarshalRequest = errors.New("failed to create request")

	// ErrUnmarshalResponse wraps failures while decoding the host response.
	ErrUnmarshalResponse = errors.New("failed to unmarshal response")
)

// Config configures the host-backed client.
//
// Namespace scopes the waPC host calls and defaults to DefaultNamespace.
// InsecureSkipVerify asks the host to skip TLS verification when supported.
// HostCall lets tests inject a host function; when nil, wapc.HostCall is used.
type Config struct {
	// Namespace is the function namespace used for host calls.
	Namespace string
	// InsecureSkipVerify disables TLS verification when supported.
	InsecureSkipVerify bool
	// HostCall overrides the waPC host function used for requests.
	HostCall func(string, string, string, []byte) ([]byte, error)
	// Logger receives debug and failure logs. Nil disables logging.
	Logger *zap.SugaredLogger
}

// Client implements anyhttp.Client using waPC host calls.
type Client struct {
	// cfg holds client configuration with defaults applied.
	cfg Config
	// hostCall performs the waPC invocation; tests may override it.
	hostCall func(string, string, string, []byte) ([]byte, error)
	logger   *zap.SugaredLogger
}

// Ensure Client always satisfies the anyhttp.Client interface at compile time.
var _ anyhttp.Client = (*Client)(nil)

// New creates a host-backed client with the provided configuration.
func New(config Config) (*Client, error) {
	c := &Client{cfg: config, logger: config.Logger}

	// Set default namespace if not provided
	if c.cfg.Namespace == "" {
		c.cfg.Namespace = DefaultNamespace
	}

	// Set HostCall function if provided
	c.hostCall = wapc.HostCall
	if config.HostCall != nil {
		c.hostCall = config.HostCall
	}

	if c.logger == nil {
		c.logger = zap.NewNop().Sugar()
	}

	return c, nil
}

// Execute encodes req, hands it to the host, and returns a buffered response
// whose URL is the request URL. The host performs the transfer, so the
// context is only checked before the call.
func (c *Client) Execute(ctx context.Context, req *anyhttp.Request) (*anyhttp.Response, error) {
	if req == nil {
		return nil, anyhttp.ErrNilRequest
	}

	// Validate the URL before building the payload.
	if req.URL == nil || req.URL.Host == "" {
		return nil, anyhttp.ErrInvalidURL
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pbReq := &proto.HTTPClient{
		Method:   req.Method,
		Url:      req.URL.String(),
		Insecure: c.cfg.InsecureSkipVerify,
		Body:     req.Body,
		Headers:  make(map[string]*proto.Header),
	}

	// Convert headers
	for key, values := range req.Header {
		pbReq.Headers[key] = &proto.Header{
			Values: values,
		}
	}

	c.logger.Debugw("Executing host request", "namespace", c.cfg.Namespace, "method", req.Method, "url", pbReq.Url)

	resp, err := c.doHTTPCall(pbReq)
	if err != nil {
		c.logger.Errorw("Host request failed", "method", req.Method, "url", pbReq.Url, "err", err)
		return nil, err
	}

	u := *req.URL
	return anyhttp.NewResponse(resp.status, &u, resp.header, anyhttp.BufferedBody(resp.body)), nil
}

// hostResponse is the decoded payload of a successful host call.
type hostResponse struct {
	status int
	header http.Header
	body   []byte
}

// doHTTPCall marshals the protobuf request, performs the host call, and
// unmarshals the response using proto getters.
func (c *Client) doHTTPCall(req *proto.HTTPClient) (*hostResponse, error) {
	b, err := req.MarshalVT()
	if err != nil {
		return nil, errors.Join(ErrMarshalRequest, err)
	}

	resp, err := c.hostCall(c.cfg.Namespace, capabilityName, functionName, b)
	if err != nil {
		return nil, errors.Join(ErrHostCall, err)
	}

	var r proto.HTTPClientResponse
	if unmarshalErr := r.UnmarshalVT(resp); unmarshalErr != nil {
		return nil, errors.Join(ErrUnmarshalResponse, unmarshalErr)
	}

	status := r.GetStatus()
	if status == nil {
		return nil, ErrHostResponseInvalid
	}

	statusCode := status.GetCode()
	switch statusCode {
	case hostStatusOK, hostStatusPartial:
		// success path continues
	case hostStatusBadInput, hostStatusMissing, hostStatusError:
		detail := fmt.Sprintf("host status %d", statusCode)
		if msg := status.GetStatus(); msg != "" {
			detail = fmt.Sprintf("%s: %s", detail, msg)
		}
		return nil, errors.Join(ErrHostError, errors.New(detail))
	default:
		return nil, errors.Join(
			ErrHostResponseInvalid,
			fmt.Errorf("unexpected host status code %d", statusCode),
		)
	}

	out := &hostResponse{
		status: int(r.GetCode()),
		header: make(http.Header),
		body:   r.GetBody(),
	}

	for name, header := range r.GetHeaders() {
		out.header[name] = header.GetValues()
	}

	return out, nil
}
