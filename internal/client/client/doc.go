// Package client is the HTTP gateway to the interview-prep backend.
//
// # Overview
//
// Every backend call goes through Gateway.Do, which applies two stages:
//  1. Outbound: the bearer token, if the token store holds one, is attached
//     as "Authorization: Bearer <token>"; a request id is set on every call.
//  2. Inbound: a 401 response clears the token store and asks the injected
//     Resetter to discard in-memory session state and navigate to /login.
//     The error is still returned to the caller.
//
// Login, Signup and Refresh use the same base URL but never attach a bearer
// header.
//
// # Error Handling
//
// Non-2xx responses become *APIError, carrying the backend's "detail" text.
// Callers match conditions with errors.Is: ErrUnauthorized, ErrForbidden,
// ErrNotFound, ErrUnavailable (transport failure, not retried).
//
// Concurrency & Contexts
//
// A Gateway is safe for concurrent use. The 401 side effects run once per
// failing response, however many other calls are in flight.
package client
