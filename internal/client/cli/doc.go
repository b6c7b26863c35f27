// Package cli provides the interactive zkvault command-line client.
//
// It wires configuration, the gRPC client and the auth and vault services
// into a REPL. Typical flow: log in, which also unlocks the vault with the
// same secret, then list, add, edit or delete credentials. Records are
// encrypted before they leave the process and decrypted after they arrive.
//
// Key features:
//   - Register / Login / Logout
//   - Unlock / Lock the vault key without ending the session
//   - List / Show / Add / Edit / Delete credentials
//   - Generate random passwords
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
