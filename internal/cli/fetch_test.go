package cli

import (
	"bytes"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/anyhttp/anyhttp"
	"github.com/anyhttp/anyhttp/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// run executes the root command against client and returns stdout and stderr.
func run(t *testing.T, client anyhttp.Client, args ...string) (string, string, error) {
	t.Helper()

	factory := func(bool, *zap.SugaredLogger) (anyhttp.Client, error) {
		return client, nil
	}

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd(factory)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootCmd(t *testing.T) {
	cmd := NewRootCmd(NetHTTPFactory)
	assert.Equal(t, "anyhttp", cmd.Use)

	fetch, _, err := cmd.Find([]string{"fetch"})
	require.NoError(t, err)
	assert.Equal(t, "fetch <url>", fetch.Use)

	for name, def := range map[string]string{
		"method":  "GET",
		"stream":  "false",
		"timeout": "0s",
		"verbose": "false",
	} {
		f := fetch.Flags().Lookup(name)
		require.NotNil(t, f, "--%s flag not found", name)
		assert.Equal(t, def, f.DefValue, "--%s default", name)
	}

	out, _, err := run(t, mock.New(), "version")
	require.NoError(t, err)
	assert.Equal(t, "anyhttp version dev\n", out)
}

func TestFetch(t *testing.T) {
	t.Run("Prints body", func(t *testing.T) {
		client := mock.New().WithResponse(mock.NewResponse(http.StatusOK).WithBodyString(`{"products": []}`))

		out, _, err := run(t, client, "fetch", "https://dummyjson.com/products")
		require.NoError(t, err)
		assert.Equal(t, `{"products": []}`, out)

		last, ok := client.LastRequest()
		require.True(t, ok)
		assert.Equal(t, http.MethodGet, last.Method)
		assert.Equal(t, "https://dummyjson.com/products", last.URL.String())
	})

	t.Run("Sends method, headers and body", func(t *testing.T) {
		client := mock.New()

		_, _, err := run(t, client, "fetch",
			"-X", "post",
			"-H", "Content-Type: application/json",
			"-H", "X-Trace: a:b",
			"-d", `{"title":"x"}`,
			"https://dummyjson.com/products/add",
		)
		require.NoError(t, err)

		last, ok := client.LastRequest()
		require.True(t, ok)
		assert.Equal(t, http.MethodPost, last.Method)
		assert.Equal(t, "application/json", last.Header.Get("Content-Type"))
		assert.Equal(t, "a:b", last.Header.Get("X-Trace"))
		assert.Equal(t, `{"title":"x"}`, string(last.Body))
	})

	t.Run("Stream", func(t *testing.T) {
		client := mock.New().WithResponse(mock.NewResponse(http.StatusOK).WithBodyString("streamed"))

		out, _, err := run(t, client, "fetch", "--stream", "https://example.com")
		require.NoError(t, err)
		assert.Equal(t, "streamed", out)
	})

	t.Run("Error status", func(t *testing.T) {
		client := mock.New().WithResponse(mock.NewResponse(http.StatusNotFound).WithBodyString("missing"))

		out, _, err := run(t, client, "fetch", "https://example.com/missing")
		require.ErrorIs(t, err, ErrStatus)
		assert.Contains(t, err.Error(), "404")
		assert.Equal(t, "missing", out)
	})

	t.Run("Client error", func(t *testing.T) {
		client := mock.New().WithError("connection refused")

		_, _, err := run(t, client, "fetch", "https://example.com")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection refused")
	})

	t.Run("Verbose logs to stderr", func(t *testing.T) {
		_, stderr, err := run(t, mock.New(), "fetch", "-v", "https://example.com/logged")
		require.NoError(t, err)
		assert.Contains(t, stderr, "Response received")
		assert.Contains(t, stderr, "https://example.com/logged")
	})

	tt := []struct {
		name string
		args []string
		want string
	}{
		{"Missing URL", []string{"fetch"}, "accepts 1 arg"},
		{"Invalid method", []string{"fetch", "-X", "FETCH", "https://example.com"}, "invalid HTTP method"},
		{"Invalid header", []string{"fetch", "-H", "no-colon", "https://example.com"}, "invalid header"},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			client := mock.New()
			_, _, err := run(t, client, tc.args...)
			require.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), tc.want), "error %q should contain %q", err, tc.want)
			assert.Zero(t, client.RequestCount())
		})
	}

	t.Run("Factory failure", func(t *testing.T) {
		boom := errors.New("boom")
		cmd := NewRootCmd(func(bool, *zap.SugaredLogger) (anyhttp.Client, error) { return nil, boom })
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetArgs([]string{"fetch", "https://example.com"})
		require.ErrorIs(t, cmd.Execute(), boom)
	})
}
