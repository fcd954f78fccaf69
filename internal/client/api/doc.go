// Package api is the client side of the lost and found REST backend.
//
// # Overview
//
// Client is the transport-agnostic contract used by the services; HTTPClient
// implements it with JSON over HTTP. Every call:
//
//   - runs under the configured request timeout,
//   - carries a fresh X-Request-ID header for log correlation,
//   - carries "Authorization: Bearer <token>" when a TokenSource yields one.
//
// # Error Handling
//
// Failures are classified so callers can match them with errors.Is/As:
//
//   - ErrUnavailable: the backend could not be reached or timed out.
//   - *Error (wrapping ErrRejected): the backend answered with a non-2xx
//     status; Message carries its {"error": "..."} payload when present.
//   - ErrBadResponse: a 2xx body that could not be decoded.
package api
