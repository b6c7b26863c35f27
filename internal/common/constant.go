package common

// AuthorizationHeaderName is the gRPC metadata key carrying the session
// credential as "Bearer <token>".
const AuthorizationHeaderName = "authorization"

// AccessTokenHeaderName is the legacy metadata key carrying the bare token.
const AccessTokenHeaderName = "access_token"

// BearerPrefix precedes the token in the authorization header.
const BearerPrefix = "Bearer "

// MinPasswordLength is the shortest login password accepted at signup.
const MinPasswordLength = 8
