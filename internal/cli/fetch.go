package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/anyhttp/anyhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ErrStatus is returned when the response status is 400 or above.
var ErrStatus = errors.New("request returned an error status")

type fetchOptions struct {
	method  string
	headers []string
	data    string
	stream  bool
	timeout time.Duration
	verbose bool
}

func newFetchCmd(newClient ClientFactory) *cobra.Command {
	opts := &fetchOptions{}

	cmd := &cobra.Command{
		Use:   "fetch <url>",
		Short: "Execute a request and print the response body",
		Long: `Execute a single request and write the response body to stdout.

With --stream the body is copied chunk by chunk as it arrives; otherwise it is
read fully first. A status of 400 or above prints the body and exits non-zero.

Examples:
  anyhttp fetch https://dummyjson.com/products
  anyhttp fetch -X POST -H 'Content-Type: application/json' -d '{"title":"x"}' https://dummyjson.com/products/add
  anyhttp fetch --stream --timeout 30s https://example.com/large`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd, newClient, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.method, "method", "X", http.MethodGet, "HTTP method")
	cmd.Flags().StringArrayVarP(&opts.headers, "header", "H", nil, "Request header as 'Key: Value' (repeatable)")
	cmd.Flags().StringVarP(&opts.data, "data", "d", "", "Request body")
	cmd.Flags().BoolVar(&opts.stream, "stream", false, "Stream the body instead of buffering it")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "Overall timeout (0 disables)")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log requests to stderr")

	return cmd
}

func runFetch(cmd *cobra.Command, newClient ClientFactory, opts *fetchOptions, rawURL string) error {
	logger := newLogger(cmd.ErrOrStderr(), opts.verbose)
	defer func() { _ = logger.Sync() }()

	client, err := newClient(!opts.stream, logger)
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}

	var body []byte
	if opts.data != "" {
		body = []byte(opts.data)
	}

	req, err := anyhttp.NewRequest(strings.ToUpper(opts.method), rawURL, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	for _, h := range opts.headers {
		k, v, ok := strings.Cut(h, ":")
		if !ok || strings.TrimSpace(k) == "" {
			return fmt.Errorf("invalid header %q, expected 'Key: Value'", h)
		}
		req.Header.Add(strings.TrimSpace(k), strings.TrimSpace(v))
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	resp, err := client.Execute(ctx, req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Close() }()

	logger.Infow("Response received", "status", resp.Status(), "url", resp.URL().String())

	if err := writeBody(ctx, cmd.OutOrStdout(), resp, opts.stream); err != nil {
		return err
	}

	if resp.Status() >= http.StatusBadRequest {
		return fmt.Errorf("%w: %d %s", ErrStatus, resp.Status(), http.StatusText(resp.Status()))
	}
	return nil
}

func writeBody(ctx context.Context, w io.Writer, resp *anyhttp.Response, stream bool) error {
	if !stream {
		b, err := resp.Bytes(ctx)
		if err != nil {
			return fmt.Errorf("read response: %w", err)
		}
		_, err = w.Write(b)
		return err
	}

	for chunk, err := range resp.BytesStream(ctx) {
		if err != nil {
			return fmt.Errorf("read response: %w", err)
		}
		if _, err := w.Write(chunk); err != nil {
			return err
		}
	}
	return nil
}

// newLogger writes human-readable logs to w when verbose is set.
func newLogger(w io.Writer, verbose bool) *zap.SugaredLogger {
	if !verbose {
		return zap.NewNop().Sugar()
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), zapcore.DebugLevel)
	return zap.New(core).Sugar()
}
