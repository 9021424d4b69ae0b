package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	project  bool

	calls []string
	arg   string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) hasProject() bool { return f.project }
func (f *fakeExec) Register(ctx context.Context) error {
	f.calls = append(f.calls, "register")
	return nil
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.calls = append(f.calls, "login")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}
func (f *fakeExec) List(ctx context.Context) error { f.calls = append(f.calls, "list"); return nil }
func (f *fakeExec) NewProject(ctx context.Context) error {
	f.calls = append(f.calls, "new")
	f.project = true
	return nil
}
func (f *fakeExec) Open(ctx context.Context, id string) error {
	f.calls = append(f.calls, "open")
	f.arg = id
	f.project = true
	return nil
}
func (f *fakeExec) CloseProject() {
	f.calls = append(f.calls, "close")
	f.project = false
}
func (f *fakeExec) Generate(ctx context.Context, prompt string) error {
	f.calls = append(f.calls, "gen")
	f.arg = prompt
	return nil
}
func (f *fakeExec) Save(ctx context.Context) error { f.calls = append(f.calls, "save"); return nil }
func (f *fakeExec) Delete(ctx context.Context, id string) error {
	f.calls = append(f.calls, "delete")
	f.arg = id
	return nil
}
func (f *fakeExec) Publish(ctx context.Context) error {
	f.calls = append(f.calls, "publish")
	return nil
}
func (f *fakeExec) Profile(ctx context.Context) error {
	f.calls = append(f.calls, "profile")
	return nil
}
func (f *fakeExec) Rename(ctx context.Context) error {
	f.calls = append(f.calls, "rename")
	return nil
}
func (f *fakeExec) Upgrade(ctx context.Context) error {
	f.calls = append(f.calls, "upgrade")
	return nil
}
func (f *fakeExec) Admin(ctx context.Context, args []string) error {
	f.calls = append(f.calls, "admin")
	f.arg = strings.Join(args, " ")
	return nil
}

func silencePrintln(t *testing.T) {
	t.Helper()
	orig := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = orig })
}

func runScript(t *testing.T, f *fakeExec, lines ...string) {
	t.Helper()
	silencePrintln(t)
	scanner := bufio.NewScanner(strings.NewReader(strings.Join(lines, "\n") + "\n"))
	runREPL(context.Background(), f, func() string { return "" }, scanner)
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	f := &fakeExec{}
	runScript(t, f,
		"help",
		"login",
		"list",
		"new",
		"gen make it blue",
		"save",
		"publish",
		"close",
		"logout",
		"exit",
	)

	assert.Equal(t, []string{"login", "list", "new", "gen", "save", "publish", "close", "logout"}, f.calls)
	assert.False(t, f.loggedIn)
}

func TestRunREPL_ArgumentsArePassedThrough(t *testing.T) {
	f := &fakeExec{loggedIn: true}
	runScript(t, f, "open p42", "exit")
	assert.Equal(t, "p42", f.arg)

	f = &fakeExec{loggedIn: true}
	runScript(t, f, "gen add a dark mode toggle", "exit")
	assert.Equal(t, "add a dark mode toggle", f.arg)

	f = &fakeExec{loggedIn: true}
	runScript(t, f, "delete p7", "exit")
	assert.Equal(t, "p7", f.arg)

	f = &fakeExec{loggedIn: true}
	runScript(t, f, "admin grant u1 10", "exit")
	assert.Equal(t, "grant u1 10", f.arg)
}

func TestRunREPL_UsageWithoutArguments(t *testing.T) {
	f := &fakeExec{loggedIn: true}
	runScript(t, f, "open", "gen", "delete", "exit")
	// none of the handlers run without their required argument
	assert.Empty(t, f.calls)
}

func TestRunREPL_UnknownAndBlankLinesAreIgnored(t *testing.T) {
	f := &fakeExec{}
	runScript(t, f, "", "   ", "frobnicate", "quit")
	assert.Empty(t, f.calls)
}

func TestRunREPL_ExitsOnEOF(t *testing.T) {
	silencePrintln(t)
	f := &fakeExec{}
	scanner := bufio.NewScanner(strings.NewReader("list\n"))
	runREPL(context.Background(), f, func() string { return "" }, scanner)
	assert.Equal(t, []string{"list"}, f.calls)
}
