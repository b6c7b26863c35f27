package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
)

// Clipboard seams; tests swap them out since CI has no display.
var (
	writeClipboard = clipboard.WriteAll
	readClipboard  = clipboard.ReadAll
	clipboardTTL   = 30 * time.Second
)

// Copy puts a record's password on the system clipboard and clears it
// after clipboardTTL, unless something else was copied in between.
func (a *App) Copy(ctx context.Context) error {
	if err := a.requireKey(); err != nil {
		return err
	}
	id, err := getSimpleText(a.reader, "Enter record id to copy", a.out)
	if err != nil {
		return err
	}

	item, err := a.vaultService.Get(ctx, a.key, id)
	if err != nil {
		return err
	}

	if err := writeClipboard(item.Password); err != nil {
		return fmt.Errorf("clipboard error: %w", err)
	}
	fmt.Fprintf(a.out, "Password copied to clipboard. Clearing in %s...\n", clipboardTTL)

	secret := item.Password
	time.AfterFunc(clipboardTTL, func() {
		if cur, err := readClipboard(); err == nil && cur == secret {
			_ = writeClipboard("")
		}
	})
	return nil
}
