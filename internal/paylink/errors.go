package paylink

import "errors"

// Error kinds for the payment flow. Callers classify failures with
// errors.Is against these sentinels; call sites wrap them with %w and the
// operation detail.
var (
	// ErrConfig signals missing or invalid merchant credentials.
	ErrConfig = errors.New("paylink: missing or invalid merchant credentials")
	// ErrValidation signals a missing required request field.
	ErrValidation = errors.New("paylink: missing required field")
	// ErrNotFound signals an order lookup miss.
	ErrNotFound = errors.New("paylink: not found")
	// ErrNetwork signals a connection, DNS or TLS failure before the remote
	// host produced a response.
	ErrNetwork = errors.New("paylink: network failure")
	// ErrTransport signals that the remote host responded but the transport
	// layer failed while delivering the response.
	ErrTransport = errors.New("paylink: transport failure")
	// ErrAPI signals a non-2xx response or a malformed remote body.
	ErrAPI = errors.New("paylink: api error")
	// ErrAuth signals that a bearer token could not be obtained.
	ErrAuth = errors.New("paylink: authentication failed")
)
