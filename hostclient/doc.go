/*
Package hostclient adapts the Tarmac host HTTP capability to anyhttp.Client.

Requests are serialized as protobuf and sent to the host using waPC. The host
performs the transfer and returns the whole response, so bodies are always
buffered. Errors use sentinel values combined with the underlying cause and
can be checked with errors.Is.
*/
package hostclient
