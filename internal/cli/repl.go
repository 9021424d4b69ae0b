package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	hasProject() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	List(ctx context.Context) error
	NewProject(ctx context.Context) error
	Open(ctx context.Context, id string) error
	CloseProject()
	Generate(ctx context.Context, prompt string) error
	Save(ctx context.Context) error
	Delete(ctx context.Context, id string) error
	Publish(ctx context.Context) error
	Profile(ctx context.Context) error
	Rename(ctx context.Context) error
	Upgrade(ctx context.Context) error
	Admin(ctx context.Context, args []string) error
}

// runREPL starts the studio's read-eval-print loop.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help           — show available commands
//	  - register       — create an account (invite key required)
//	  - login          — authenticate
//	  - exit | quit    — leave the program
//
//	Logged in:
//	  - help           — show available commands
//	  - list           — list your projects
//	  - new            — create a project and open it
//	  - open <id>      — open a project
//	  - close          — close the open project
//	  - gen <request>  — run a generation against the open project
//	  - save           — overwrite the open project's code interactively
//	  - publish        — upload the open project and print its link
//	  - delete <id>    — delete a project
//	  - profile        — show the account and credit balance
//	  - rename         — change the display username
//	  - upgrade        — enter the admin access code
//	  - admin ...      — privileged subcommands (admins only)
//	  - logout         — log out
//	  - exit | quit    — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("cd> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: (l)ist, new, open <id>, close, gen <request>, save, publish, delete <id>, profile, rename, upgrade, admin, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "new":
			_ = a.NewProject(ctx)

		case "open":
			if len(args) == 0 {
				printlnFn("Usage: open <id>")
				continue
			}
			_ = a.Open(ctx, args[0])

		case "close":
			a.CloseProject()

		case "gen":
			if len(args) == 0 {
				printlnFn("Usage: gen <request>")
				continue
			}
			_ = a.Generate(ctx, strings.Join(args, " "))

		case "save":
			_ = a.Save(ctx)

		case "publish":
			_ = a.Publish(ctx)

		case "delete":
			if len(args) == 0 {
				printlnFn("Usage: delete <id>")
				continue
			}
			_ = a.Delete(ctx, args[0])

		case "profile":
			_ = a.Profile(ctx)

		case "rename":
			_ = a.Rename(ctx)

		case "upgrade":
			_ = a.Upgrade(ctx)

		case "admin":
			_ = a.Admin(ctx, args)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
