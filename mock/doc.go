/*
Package mock provides a deterministic implementation of anyhttp.Client for
tests.

A MockClient returns queued responses and errors in FIFO order and records
every request it executes. When the queue is empty it answers with a 200
response and an empty body, so tests only need to queue what they assert on.

# Basic Usage

	client := mock.New().
		WithResponse(mock.NewResponse(http.StatusOK).WithBodyString(`{"products":[]}`)).
		WithError("connection refused")

	resp, err := client.Execute(ctx, req) // 200 with the JSON body
	_, err = client.Execute(ctx, req)     // err.Error() == "connection refused"

Entries can also be queued mid-test with QueueResponse and QueueError, or
loaded from a YAML file with LoadFixtureFile.

# Response URLs

A queued response without an explicit URL reports the request URL. If the
request URL is not absolute, PlaceholderURL is used.

# Inspecting Requests

	client.RequestCount()
	last, ok := client.LastRequest()
	for _, r := range client.Requests() {
		// r.Method, r.URL, r.Header, r.Body
	}

Handles returned by Clone share the queue and the request log.
*/
package mock
