/*
Package anyhttp defines a small capability contract over HTTP clients.

Code that needs to issue HTTP requests depends on the Client interface instead
of a concrete transport. Adapters bind the interface to real transports (see
the nethttp and hostclient packages) and the mock package provides a
deterministic test double.

A Response exposes its status, resolved URL, headers, and a body that can be
read either fully with Bytes or incrementally with BytesStream. Bodies are
single-use: once read, further reads fail with ErrBodyConsumed. Errors use
sentinel values combined with the underlying cause and can be checked with
errors.Is.
*/
package anyhttp
