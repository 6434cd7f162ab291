package anyhttp

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clientFunc adapts a function to the Client interface.
type clientFunc func(ctx context.Context, req *Request) (*Response, error)

func (f clientFunc) Execute(ctx context.Context, req *Request) (*Response, error) { return f(ctx, req) }

func TestNewRequest(t *testing.T) {
	tt := []struct {
		name    string
		method  string
		url     string
		wantErr error
	}{
		{"GET", http.MethodGet, "https://example.com/api", nil},
		{"PATCH", http.MethodPatch, "https://example.com/api/1", nil},
		{"Relative URL", http.MethodGet, "/relative", nil},
		{"Invalid Method", "FETCH", "https://example.com", ErrInvalidMethod},
		{"Lowercase Method", "get", "https://example.com", ErrInvalidMethod},
		{"Empty URL", http.MethodGet, "", ErrInvalidURL},
		{"Malformed URL", http.MethodGet, "http://[::1", ErrInvalidURL},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			req, err := NewRequest(tc.method, tc.url, []byte("payload"))
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, req)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.method, req.Method)
			assert.Equal(t, tc.url, req.URL.String())
			assert.NotNil(t, req.Header)
			assert.Equal(t, []byte("payload"), req.Body)
		})
	}
}

func TestRequestClone(t *testing.T) {
	req, err := NewRequest(http.MethodPost, "https://user:pw@example.com/a?b=c", []byte("body"))
	require.NoError(t, err)
	req.Header.Set("X-Test", "1")

	clone := req.Clone()
	require.Equal(t, req, clone)

	// Mutating the clone must not leak back into the original.
	clone.Body[0] = 'B'
	clone.Header.Set("X-Test", "2")
	clone.URL.Path = "/changed"

	assert.Equal(t, "body", string(req.Body))
	assert.Equal(t, "1", req.Header.Get("X-Test"))
	assert.Equal(t, "/a", req.URL.Path)

	t.Run("Nil", func(t *testing.T) {
		var r *Request
		assert.Nil(t, r.Clone())
	})

	t.Run("Nil Fields", func(t *testing.T) {
		c := (&Request{Method: http.MethodGet}).Clone()
		assert.Nil(t, c.URL)
		assert.Nil(t, c.Body)
		assert.NotNil(t, c.Header)
	})
}

func TestHelpers(t *testing.T) {
	var got *Request
	c := clientFunc(func(_ context.Context, req *Request) (*Response, error) {
		got = req
		return NewResponse(http.StatusOK, req.URL, nil, nil), nil
	})
	ctx := context.Background()

	tt := []struct {
		name        string
		call        func() (*Response, error)
		method      string
		contentType string
		body        string
	}{
		{"Get", func() (*Response, error) { return Get(ctx, c, "https://example.com/1") }, http.MethodGet, "", ""},
		{
			"Post",
			func() (*Response, error) { return Post(ctx, c, "https://example.com/1", "application/json", []byte(`{}`)) },
			http.MethodPost, "application/json", `{}`,
		},
		{
			"Put",
			func() (*Response, error) { return Put(ctx, c, "https://example.com/1", "text/plain", []byte("x")) },
			http.MethodPut, "text/plain", "x",
		},
		{"Delete", func() (*Response, error) { return Delete(ctx, c, "https://example.com/1") }, http.MethodDelete, "", ""},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			got = nil
			resp, err := tc.call()
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, resp.Status())
			require.NotNil(t, got)
			assert.Equal(t, tc.method, got.Method)
			assert.Equal(t, "https://example.com/1", got.URL.String())
			assert.Equal(t, tc.contentType, got.Header.Get("Content-Type"))
			assert.Equal(t, tc.body, string(got.Body))
		})
	}

	t.Run("Invalid URL never reaches the client", func(t *testing.T) {
		got = nil
		_, err := Get(ctx, c, "")
		require.ErrorIs(t, err, ErrInvalidURL)
		assert.Nil(t, got)
	})

	t.Run("Client error is returned unchanged", func(t *testing.T) {
		boom := errors.New("boom")
		failing := clientFunc(func(context.Context, *Request) (*Response, error) { return nil, boom })
		_, err := Get(ctx, failing, "https://example.com")
		assert.Same(t, boom, err)
	})
}
