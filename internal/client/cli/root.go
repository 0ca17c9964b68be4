package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Chat(ctx context.Context) error
	History(ctx context.Context) error
	ClearHistory(ctx context.Context) error
	Memory(ctx context.Context) error
	Forget(ctx context.Context) error
	ClearMemory(ctx context.Context) error
	Explain(ctx context.Context) error
}

func (a *App) getStatus() string {
	if u := a.api.User(); u != nil {
		return fmt.Sprintf("(%s)", u.Name)
	}
	return ""
}

func (a *App) Root(ctx context.Context) {
	fmt.Println("Welcome to FinCoach (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

// runREPL reads a command per line and dispatches to methods on a. Unknown
// commands are reported back. The loop exits on EOF or "exit"/"quit".
// Errors from command handlers are ignored here; handlers print their own.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("fincoach %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: chat, history, clearchat, memory, forget, clearmem, explain, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "chat":
			_ = a.Chat(ctx)

		case "history":
			_ = a.History(ctx)

		case "clearchat":
			_ = a.ClearHistory(ctx)

		case "memory":
			_ = a.Memory(ctx)

		case "forget":
			_ = a.Forget(ctx)

		case "clearmem":
			_ = a.ClearMemory(ctx)

		case "explain":
			_ = a.Explain(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command (type 'help' for commands)")
		}
	}
}
