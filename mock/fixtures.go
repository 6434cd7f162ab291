package mock

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	// ErrInvalidFixture indicates a fixture document that cannot be queued.
	ErrInvalidFixture = errors.New("invalid fixture")

	// ErrReadFixture wraps failures while opening or reading a fixture file.
	ErrReadFixture = errors.New("failed to read fixture")
)

// Fixture is one queued entry as written in a YAML fixture file.
//
//	- status: 200
//	  body: '{"products": []}'
//	  headers:
//	    Content-Type: application/json
//	- error: connection refused
type Fixture struct {
	// Status is the HTTP status code. Required unless Error is set.
	Status int `yaml:"status"`
	// Body is the response payload.
	Body string `yaml:"body"`
	// URL is the explicit response URL. Empty means echo the request URL.
	URL string `yaml:"url"`
	// Headers are added to the response.
	Headers map[string]string `yaml:"headers"`
	// Error, when set, queues an error with this message instead of a response.
	Error string `yaml:"error"`
}

// LoadFixtures decodes a YAML list of fixtures from r and queues them in
// document order. Nothing is queued if any fixture is invalid. It returns the
// number of queued entries.
func (m *MockClient) LoadFixtures(r io.Reader) (int, error) {
	var fixtures []Fixture

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&fixtures); err != nil {
		if errors.Is(err, io.EOF) {
			return 0, nil
		}
		return 0, errors.Join(ErrInvalidFixture, err)
	}

	entries := make([]entry, 0, len(fixtures))
	for i, f := range fixtures {
		e, err := f.entry()
		if err != nil {
			return 0, fmt.Errorf("%w: fixture %d: %w", ErrInvalidFixture, i, err)
		}
		entries = append(entries, e)
	}

	for _, e := range entries {
		m.responses.push(e)
	}
	return len(entries), nil
}

// LoadFixtureFile queues the fixtures stored in the YAML file at path.
func (m *MockClient) LoadFixtureFile(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, errors.Join(ErrReadFixture, err)
	}
	defer func() { _ = f.Close() }()

	return m.LoadFixtures(f)
}

func (f Fixture) entry() (entry, error) {
	if f.Error != "" {
		return entry{message: f.Error, isError: true}, nil
	}

	if f.Status < 100 || f.Status > 599 {
		return entry{}, fmt.Errorf("status %d out of range", f.Status)
	}

	r := NewResponse(f.Status).WithBodyString(f.Body)
	if f.URL != "" {
		r.WithURL(f.URL)
		if r.url == nil {
			return entry{}, fmt.Errorf("url %q is not absolute", f.URL)
		}
	}
	for k, v := range f.Headers {
		r.WithHeader(k, v)
	}
	return entry{response: r}, nil
}
