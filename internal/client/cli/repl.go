package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	isUnlocked() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Unlock(ctx context.Context) error
	Lock(ctx context.Context) error
	List(ctx context.Context) error
	Show(ctx context.Context) error
	Copy(ctx context.Context) error
	Add(ctx context.Context) error
	Edit(ctx context.Context) error
	Delete(ctx context.Context) error
	Generate(ctx context.Context) error
	Logout(ctx context.Context) error
}

// helpText returns the commands that make sense in the current state.
func helpText(a execIface) string {
	switch {
	case !a.isLoggedIn():
		return "Available commands: register, login, generate, exit"
	case !a.isUnlocked():
		return "Available commands: unlock, generate, logout, exit"
	default:
		return "Available commands: (l)ist, show, copy, add, edit, delete, generate, lock, logout, exit"
	}
}

// runREPL starts a simple read–eval–print loop for the zkvault CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. The loop exits on EOF, when ctx is done, or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - register       — create an account
//	  - login          — authenticate and unlock the vault
//
//	Logged in, vault locked:
//	  - unlock         — derive the vault key from the master secret
//	  - logout         — end the session
//
//	Logged in, vault unlocked:
//	  - list | l       — list credentials
//	  - show           — show a single credential (interactive ID prompt)
//	  - copy           — copy a password to the clipboard
//	  - add            — add a credential
//	  - edit           — change a credential
//	  - delete         — delete a credential
//	  - lock           — forget the vault key, keep the session
//	  - logout         — end the session and forget the key
//
//	Always:
//	  - generate       — print a random password
//	  - help           — show available commands
//	  - exit | quit    — leave the program
//
// Errors returned by command handlers are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("zk> %s > ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		var cmdErr error
		switch cmd {
		case "help":
			printlnFn(helpText(a))

		case "register":
			cmdErr = a.Register(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "unlock":
			cmdErr = a.Unlock(ctx)

		case "lock":
			cmdErr = a.Lock(ctx)

		case "l", "list":
			cmdErr = a.List(ctx)

		case "show":
			cmdErr = a.Show(ctx)

		case "copy":
			cmdErr = a.Copy(ctx)

		case "add":
			cmdErr = a.Add(ctx)

		case "edit":
			cmdErr = a.Edit(ctx)

		case "delete":
			cmdErr = a.Delete(ctx)

		case "generate":
			cmdErr = a.Generate(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr)
		}
	}
}
