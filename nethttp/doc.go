/*
Package nethttp adapts net/http to anyhttp.Client.

The adapter translates an anyhttp.Request into an *http.Request, sends it
through any Doer (usually an *http.Client), and wraps the result. Header names
and values are validated before sending, so malformed requests fail with
ErrConvertRequest without touching the network. Transport errors are returned
as the Doer reported them.

Bodies are read lazily by default and can be consumed whole with Bytes or in
chunks with BytesStream. Set Config.Buffered to read the body before Execute
returns.
*/
package nethttp
