package cli

import (
	"context"
	"fmt"
	"log"
	"strings"
)

// getStatus renders the prompt prefix, e.g. "(alice@example.com online unlocked)".
func (a *App) getStatus() string {
	var parts []string
	if a.userName != "" {
		parts = append(parts, a.userName)
	}
	if m := a.Mode(); m != "" {
		parts = append(parts, string(m))
	}
	if a.isLoggedIn() {
		if a.isUnlocked() {
			parts = append(parts, "unlocked")
		} else {
			parts = append(parts, "locked")
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, " "))
}

// Root runs the connectivity watcher and the REPL until the user exits or
// ctx is cancelled.
func (a *App) Root(ctx context.Context) {
	log.Println("Welcome to zkvault CLI (type 'help' for commands)")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go a.StartOnlineStatusWatcher(ctx, onlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}
