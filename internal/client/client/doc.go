// Package client talks to the zkvault server.
//
// # Overview
//
// Client is the transport-agnostic contract used by the client services;
// GRPCClient implements it over gRPC with the JSON codec from package api.
// After Login the client remembers the session token and attaches it to
// every call as "authorization: Bearer <token>".
//
// # Error Handling
//
// gRPC statuses are mapped back to the sentinel errors in package common
// (ErrAlreadyExists, ErrInvalidCredentials, ErrNotFound, ...), so callers
// match them with errors.Is exactly as on the server. A server that cannot
// be reached yields ErrUnavailable.
//
// Only envelopes cross this boundary. Nothing in this package sees a key
// or plaintext.
package client
