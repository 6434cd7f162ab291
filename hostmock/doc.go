/*
Package hostmock provides a pretend waPC host for tests of the hostclient
package.

HostCall has the same signature as wapc.HostCall, so a Mock can be injected
through hostclient.Config.HostCall. It checks routing (namespace, capability,
function), hands the payload to an optional validator, and answers with
scripted bytes or a failure. Every invocation is recorded and available from
Calls.

	m, _ := hostmock.New(hostmock.Config{
		ExpectedNamespace:  "tarmac",
		ExpectedCapability: "httpclient",
		ExpectedFunction:   "call",
		Response:           func(payload []byte) []byte { return encodedResponse },
	})
	client, _ := hostclient.New(hostclient.Config{HostCall: m.HostCall})

Behavior

  - If Fail is true, HostCall returns Error, or ErrOperationFailed when Error is nil.
  - Empty Expected* fields act as wildcards.
  - When Response is nil a validated call returns nil bytes.
*/
package hostmock
