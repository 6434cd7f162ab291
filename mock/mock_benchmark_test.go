package mock

import (
	"context"
	"net/http"
	"testing"

	"github.com/anyhttp/anyhttp"
)

func BenchmarkMockExecute(b *testing.B) {
	ctx := context.Background()
	req, err := anyhttp.NewRequest(http.MethodPost, "https://example.com/api", []byte(`{"name":"test"}`))
	if err != nil {
		b.Fatalf("request: %v", err)
	}

	b.Run("Queued", func(b *testing.B) {
		client := New()
		resp := NewResponse(http.StatusOK).WithBodyString(`{"message":"success"}`)
		b.ReportAllocs()
		for range b.N {
			client.QueueResponse(resp)
			if _, err := client.Execute(ctx, req); err != nil {
				b.Fatalf("execute: %v", err)
			}
		}
	})

	b.Run("Default", func(b *testing.B) {
		client := New()
		b.ReportAllocs()
		for range b.N {
			if _, err := client.Execute(ctx, req); err != nil {
				b.Fatalf("execute: %v", err)
			}
		}
	})
}
