// Package common contains shared constants and sentinel errors used across
// prepadmin components.
package common

// AuthorizationHeaderName carries the bearer credential on outbound requests.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix is prepended to the credential in AuthorizationHeaderName.
const BearerPrefix = "Bearer "

// RequestIDHeaderName correlates a request with gateway log lines.
const RequestIDHeaderName = "X-Request-ID"

// AccessTokenKey names the persisted slot holding the bearer credential.
const AccessTokenKey = "access_token"
