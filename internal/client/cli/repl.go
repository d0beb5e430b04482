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
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Feed(ctx context.Context) error
	Refresh(ctx context.Context) error
	Comments(ctx context.Context, arg string) error
	Comment(ctx context.Context, arg string) error
	Post(ctx context.Context) error
	Mine(ctx context.Context) error
	Image(ctx context.Context, arg string) error
	Tap(ctx context.Context) error
	Notifications(ctx context.Context, arg string) error
}

// runREPL starts a simple read–eval–print loop for the BeReal CLI.
//
// beforePrompt runs on this goroutine ahead of every prompt; the App uses it
// to drain the UI queue. The loop exits on EOF, when ctx is cancelled, or
// when the user types "exit" or "quit".
//
// Prompt & Commands
//
//	Not logged in:
//	  - help            show available commands
//	  - register        create an account
//	  - login           authenticate
//	  - exit | quit     leave the program
//
//	Logged in:
//	  - (f)eed, refresh           show the feed
//	  - comments <n>, comment <n> read or add comments on row n
//	  - post                      share a BeReal
//	  - mine                      your own posts
//	  - image <n>                 save the photo of row n
//	  - tap                       open the latest reminder
//	  - notifications [on|off]    reminder settings
//	  - logout
//
// Errors returned by command handlers are ignored here; handlers report
// their own errors.
func runREPL(ctx context.Context, a execIface, statusFn func() string, beforePrompt func(), reader *bufio.Reader) {
	for {
		if beforePrompt != nil {
			beforePrompt()
		}
		if ctx.Err() != nil {
			return
		}

		printlnFn(fmt.Sprintf("bereal> %s > ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		arg := ""
		if len(parts) > 1 {
			arg = parts[1]
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: (f)eed, refresh, comments <n>, comment <n>, post, mine, image <n>, tap, notifications [on|off], logout, exit")
			} else {
				printlnFn("Available commands: register, login, notifications [on|off], exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "f", "feed":
			_ = a.Feed(ctx)

		case "refresh":
			_ = a.Refresh(ctx)

		case "comments":
			_ = a.Comments(ctx, arg)

		case "comment":
			_ = a.Comment(ctx, arg)

		case "post":
			_ = a.Post(ctx)

		case "mine":
			_ = a.Mine(ctx)

		case "image":
			_ = a.Image(ctx, arg)

		case "tap":
			_ = a.Tap(ctx)

		case "notifications":
			_ = a.Notifications(ctx, arg)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
