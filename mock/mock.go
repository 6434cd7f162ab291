package mock

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"sync"

	"github.com/anyhttp/anyhttp"
)

// PlaceholderURL is the response URL used when neither the queued response
// nor the request carries an absolute URL.
const PlaceholderURL = "http://mock.test/"

// MockClient implements anyhttp.Client with a FIFO queue of canned responses
// and errors. Every request it receives is recorded. It never performs
// network I/O.
//
// A MockClient is a handle: copies made with Clone share the same queue and
// request log.
//
// revive:disable:exported // Name mirrors package for discoverability; stutter is acceptable here.
type MockClient struct {
	// responses holds pending entries, consumed front first.
	responses *responseQueue

	// requests records each request observed by the client.
	requests *requestLog
}

// revive:enable:exported

// Compile-time check: ensure MockClient implements the anyhttp.Client interface.
var _ anyhttp.Client = (*MockClient)(nil)

// New creates a mock client with an empty queue and request log.
func New() *MockClient {
	return &MockClient{
		responses: &responseQueue{},
		requests:  &requestLog{},
	}
}

// Clone returns a new handle sharing m's queue and request log.
func (m *MockClient) Clone() *MockClient {
	return &MockClient{responses: m.responses, requests: m.requests}
}

// WithResponse appends response to the queue and returns m for chaining.
func (m *MockClient) WithResponse(response *Response) *MockClient {
	m.QueueResponse(response)
	return m
}

// WithError appends an error entry to the queue and returns m for chaining.
// The matching Execute call fails with an error whose text is exactly message.
func (m *MockClient) WithError(message string) *MockClient {
	m.QueueError(message)
	return m
}

// QueueResponse appends response to the queue.
func (m *MockClient) QueueResponse(response *Response) {
	if response == nil {
		response = NewResponse(http.StatusOK)
	}
	m.responses.push(entry{response: response.clone()})
}

// QueueError appends an error entry to the queue.
func (m *MockClient) QueueError(message string) {
	m.responses.push(entry{message: message, isError: true})
}

// Pending returns the number of queued entries not yet consumed.
func (m *MockClient) Pending() int {
	return m.responses.len()
}

// Execute records req and returns the next queued entry. An empty queue
// yields a 200 response with an empty body.
//
// The request is logged before the queue is popped, each under its own lock.
// Concurrent callers therefore always see matching counts, but the position
// of a request in the log does not identify which entry it received.
func (m *MockClient) Execute(_ context.Context, req *anyhttp.Request) (*anyhttp.Response, error) {
	if req == nil {
		return nil, anyhttp.ErrNilRequest
	}

	m.requests.append(req.Clone())

	e, ok := m.responses.pop()
	if !ok {
		e = entry{response: NewResponse(http.StatusOK)}
	}

	if e.isError {
		return nil, errors.New(e.message)
	}

	r := e.response
	u := r.url
	if u == nil {
		u = echoURL(req.URL)
	}

	return anyhttp.NewResponse(r.status, u, r.header.Clone(), anyhttp.BufferedBody(r.body)), nil
}

// Requests returns a copy of every recorded request in execution order.
func (m *MockClient) Requests() []*anyhttp.Request {
	return m.requests.snapshot()
}

// RequestCount returns the number of recorded requests.
func (m *MockClient) RequestCount() int {
	return m.requests.len()
}

// LastRequest returns a copy of the most recent request, if any.
func (m *MockClient) LastRequest() (*anyhttp.Request, bool) {
	return m.requests.last()
}

// ClearRequests empties the request log. Queued responses are untouched.
func (m *MockClient) ClearRequests() {
	m.requests.clear()
}

// echoURL returns a copy of u when it is absolute, or the placeholder URL.
func echoURL(u *url.URL) *url.URL {
	if u != nil && u.IsAbs() && u.Host != "" {
		c := *u
		return &c
	}
	p, _ := url.Parse(PlaceholderURL)
	return p
}

// entry is a queued response or a queued error message.
type entry struct {
	response *Response
	message  string
	isError  bool
}

// responseQueue is a mutex-guarded FIFO of entries.
type responseQueue struct {
	mu      sync.Mutex
	entries []entry
}

func (q *responseQueue) push(e entry) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.entries = append(q.entries, e)
}

func (q *responseQueue) pop() (entry, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.entries) == 0 {
		return entry{}, false
	}
	e := q.entries[0]
	q.entries[0] = entry{}
	q.entries = q.entries[1:]
	return e, true
}

func (q *responseQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

// requestLog is a mutex-guarded, append-only record of requests.
type requestLog struct {
	mu       sync.Mutex
	requests []*anyhttp.Request
}

func (l *requestLog) append(req *anyhttp.Request) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.requests = append(l.requests, req)
}

func (l *requestLog) snapshot() []*anyhttp.Request {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]*anyhttp.Request, len(l.requests))
	for i, r := range l.requests {
		out[i] = r.Clone()
	}
	return out
}

func (l *requestLog) last() (*anyhttp.Request, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.requests) == 0 {
		return nil, false
	}
	return l.requests[len(l.requests)-1].Clone(), true
}

func (l *requestLog) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.requests)
}

func (l *requestLog) clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.requests = nil
}
