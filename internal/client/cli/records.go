package cli

import (
	"context"
	"fmt"
	"log"
	"text/tabwriter"

	"github.com/dmitrijs2005/zkvault/internal/client/client"
	"github.com/dmitrijs2005/zkvault/internal/common"
	"github.com/dmitrijs2005/zkvault/internal/cryptox"
)

// requireKey reports ErrVaultLocked when there is nothing to encrypt with.
func (a *App) requireKey() error {
	if !a.isUnlocked() {
		return common.ErrVaultLocked
	}
	return nil
}

// List prints every credential with its site and username. Passwords are
// only printed by Show.
func (a *App) List(ctx context.Context) error {
	if err := a.requireKey(); err != nil {
		return err
	}
	items, err := a.vaultService.List(ctx, a.key)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	if len(items) == 0 {
		fmt.Fprintln(a.out, "Vault is empty")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSITE\tUSERNAME")
	for _, it := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", it.ID, it.Site, it.Username)
	}
	return tw.Flush()
}

// Show prompts for an ID and prints the full credential.
func (a *App) Show(ctx context.Context) error {
	if err := a.requireKey(); err != nil {
		return err
	}
	id, err := getSimpleText(a.reader, "Enter record id to show", a.out)
	if err != nil {
		return err
	}

	item, err := a.vaultService.Get(ctx, a.key, id)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Site:     %s\n", item.Site)
	fmt.Fprintf(a.out, "Username: %s\n", item.Username)
	fmt.Fprintf(a.out, "Password: %s\n", item.Password)
	if !item.UpdatedAt.IsZero() {
		fmt.Fprintf(a.out, "Updated:  %s\n", item.UpdatedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}

// Add collects site, username and password and stores them encrypted.
// An empty password is replaced by a generated one.
func (a *App) Add(ctx context.Context) error {
	if err := a.requireKey(); err != nil {
		return err
	}

	site, err := getSimpleText(a.reader, "Enter site", a.out)
	if err != nil {
		return err
	}
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	password, err := a.readRecordPassword()
	if err != nil {
		return err
	}

	item, err := a.vaultService.Add(ctx, a.key, cryptox.Record{Site: site, Username: username, Password: password})
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	fmt.Fprintf(a.out, "Added %s\n", item.ID)
	return nil
}

// Edit prompts for an ID and then for each field, keeping the current
// value on an empty answer. An empty password keeps the old one too.
func (a *App) Edit(ctx context.Context) error {
	if err := a.requireKey(); err != nil {
		return err
	}
	id, err := getSimpleText(a.reader, "Enter record id to edit", a.out)
	if err != nil {
		return err
	}

	item, err := a.vaultService.Get(ctx, a.key, id)
	if err != nil {
		return err
	}

	rec := item.Record
	if rec.Site, err = GetDefaultText(a.reader, "Enter site", rec.Site, a.out); err != nil {
		return err
	}
	if rec.Username, err = GetDefaultText(a.reader, "Enter username", rec.Username, a.out); err != nil {
		return err
	}

	pw, err := getPassword(a.out, "Enter new password (empty keeps current)")
	if err != nil {
		return err
	}
	if len(pw) > 0 {
		rec.Password = string(pw)
	}
	common.WipeByteArray(pw)

	if _, err := a.vaultService.Update(ctx, a.key, id, rec); err != nil {
		log.Printf("error: %v", err)
		return err
	}

	fmt.Fprintf(a.out, "Updated %s\n", id)
	return nil
}

// Delete prompts for an ID and removes the record. It does not need the
// key: the server only checks ownership.
func (a *App) Delete(ctx context.Context) error {
	if !a.isLoggedIn() {
		return client.ErrNotLoggedIn
	}
	id, err := getSimpleText(a.reader, "Enter record id to delete", a.out)
	if err != nil {
		return err
	}

	if err := a.vaultService.Delete(ctx, id); err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	fmt.Fprintf(a.out, "Deleted %s\n", id)
	return nil
}

// Generate prints a random password of the configured length.
func (a *App) Generate(ctx context.Context) error {
	pw, err := cryptox.GeneratePassword(a.passwordLength())
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, pw)
	return nil
}

func (a *App) passwordLength() int {
	if a.config == nil || a.config.PasswordLength <= 0 {
		return cryptox.DefaultPasswordLength
	}
	return a.config.PasswordLength
}

// readRecordPassword reads the password for a new record without echo and
// falls back to a generated one when the answer is empty.
func (a *App) readRecordPassword() (string, error) {
	pw, err := getPassword(a.out, "Enter password (empty to generate)")
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(pw)

	if len(pw) > 0 {
		return string(pw), nil
	}

	generated, err := cryptox.GeneratePassword(a.passwordLength())
	if err != nil {
		return "", err
	}
	fmt.Fprintf(a.out, "Generated password: %s\n", generated)
	return generated, nil
}
