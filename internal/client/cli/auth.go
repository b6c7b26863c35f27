package cli

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/dmitrijs2005/zkvault/internal/client/client"
	"github.com/dmitrijs2005/zkvault/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

var (
	errPasswordMismatch    = errors.New("passwords do not match")
	errWrongMasterPassword = errors.New("wrong master password")
)

// Register prompts for an email and a password (twice) and creates the
// account. The password doubles as the master secret, so it is never
// stored by the CLI and both copies are wiped before returning.
func (a *App) Register(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	repeat, err := getPassword(a.out, "Repeat password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(repeat)

	if string(password) != string(repeat) {
		return errPasswordMismatch
	}

	if err := a.authService.Signup(ctx, userName, string(password)); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Success! You can now log in.")
	return nil
}

// Login authenticates and then unlocks the vault with the same secret.
//
// A successful login whose unlock fails leaves the session open with the
// vault locked; "unlock" can be retried without logging in again.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	salt, err := a.authService.Login(ctx, userName, string(password))
	if err != nil {
		if errors.Is(err, client.ErrUnavailable) {
			a.setMode(ModeOffline)
		}
		log.Printf("Login unsuccessful: %s", err.Error())
		return err
	}
	a.setMode(ModeOnline)
	a.lock()
	a.userName = common.NormalizeEmail(userName)
	log.Printf("Login successful")

	key, err := a.authService.Unlock(string(password), salt)
	if err != nil {
		return fmt.Errorf("unlock failed: %w", err)
	}
	a.key = key
	return nil
}

// Unlock asks for the master secret again and re-derives the key.
func (a *App) Unlock(ctx context.Context) error {
	if !a.isLoggedIn() {
		return client.ErrNotLoggedIn
	}

	secret, err := getPassword(a.out, "Enter master password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(secret)

	salt, err := a.authService.Salt(ctx, a.userName)
	if err != nil {
		return err
	}

	key, err := a.authService.Unlock(string(secret), salt)
	if err != nil {
		return err
	}
	// Any derivation succeeds; a wrong secret only shows when a record
	// fails to open.
	if _, err := a.vaultService.List(ctx, key); err != nil {
		key.Destroy()
		if errors.Is(err, common.ErrAuthenticationFailed) {
			return errWrongMasterPassword
		}
		return err
	}
	a.lock()
	a.key = key
	fmt.Fprintln(a.out, "Vault unlocked")
	return nil
}

// Lock destroys the key. The session stays open.
func (a *App) Lock(ctx context.Context) error {
	a.lock()
	fmt.Fprintln(a.out, "Vault locked")
	return nil
}

// Logout ends the session and destroys the key. The key is destroyed even
// when the server call fails.
func (a *App) Logout(ctx context.Context) error {
	a.lock()
	a.userName = ""
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
