package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	unlocked bool

	calls  []string
	errFor map[string]error
}

func (f *fakeExec) record(name string) error {
	f.calls = append(f.calls, name)
	return f.errFor[name]
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) isUnlocked() bool { return f.unlocked }
func (f *fakeExec) Register(context.Context) error {
	return f.record("register")
}
func (f *fakeExec) Login(context.Context) error {
	f.loggedIn, f.unlocked = true, true
	return f.record("login")
}
func (f *fakeExec) Unlock(context.Context) error {
	f.unlocked = true
	return f.record("unlock")
}
func (f *fakeExec) Lock(context.Context) error {
	f.unlocked = false
	return f.record("lock")
}
func (f *fakeExec) List(context.Context) error     { return f.record("list") }
func (f *fakeExec) Show(context.Context) error     { return f.record("show") }
func (f *fakeExec) Copy(context.Context) error     { return f.record("copy") }
func (f *fakeExec) Add(context.Context) error      { return f.record("add") }
func (f *fakeExec) Edit(context.Context) error     { return f.record("edit") }
func (f *fakeExec) Delete(context.Context) error   { return f.record("delete") }
func (f *fakeExec) Generate(context.Context) error { return f.record("generate") }
func (f *fakeExec) Logout(context.Context) error {
	f.loggedIn, f.unlocked = false, false
	return f.record("logout")
}

// capturePrintln records everything the REPL prints.
func capturePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, fmt.Sprint(a...))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func reader(lines ...string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(strings.Join(lines, "\n")))
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	capturePrintln(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, reader(
		"register",
		"login",
		"list",
		"l",
		"show",
		"copy",
		"add",
		"edit",
		"delete",
		"generate",
		"lock",
		"unlock",
		"logout",
		"exit",
		"list",
	))

	assert.Equal(t, []string{
		"register", "login", "list", "list", "show", "copy", "add", "edit",
		"delete", "generate", "lock", "unlock", "logout",
	}, exec.calls)
}

func TestRunREPL_HelpDependsOnState(t *testing.T) {
	lines := capturePrintln(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, reader("help", "login", "help", "lock", "help", "quit"))

	var helps []string
	for _, l := range *lines {
		if strings.HasPrefix(l, "Available commands") {
			helps = append(helps, l)
		}
	}
	if assert.Len(t, helps, 3) {
		assert.Contains(t, helps[0], "register")
		assert.Contains(t, helps[1], "list")
		assert.Contains(t, helps[2], "unlock")
		assert.NotContains(t, helps[2], "list")
	}
}

func TestRunREPL_ErrorsAreReportedAndLoopContinues(t *testing.T) {
	lines := capturePrintln(t)

	exec := &fakeExec{errFor: map[string]error{"login": errors.New("bad creds")}}
	runREPL(context.Background(), exec, func() string { return "" }, reader("login", "foobar", "generate"))

	assert.Equal(t, []string{"login", "generate"}, exec.calls)
	assert.Contains(t, *lines, "Error:bad creds")
	assert.Contains(t, *lines, "Unknown command:foobar")
}

func TestRunREPL_StopsOnCancelledContext(t *testing.T) {
	capturePrintln(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exec := &fakeExec{}
	runREPL(ctx, exec, func() string { return "" }, reader("register"))
	assert.Empty(t, exec.calls)
}
