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
	isTeacher() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Tests(ctx context.Context) error
	NewTest(ctx context.Context) error
	SelectTest(ctx context.Context, args []string) error
	Questions(ctx context.Context) error
	AddQuestion(ctx context.Context) error
	Grade(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the papergrader CLI.
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
//	  - register       — create an account (teacher or student)
//	  - login          — authenticate
//	  - exit | quit    — leave the program
//
//	Logged in:
//	  - help           — show available commands
//	  - whoami         — show the current session
//	  - tests          — list tests
//	  - use <id>       — select a test to work on
//	  - questions      — list questions of the selected test
//	  - grade          — score a student answer against a question
//	  - logout         — log out
//	  - exit | quit    — leave the program
//
//	Logged in as a teacher, additionally:
//	  - newtest        — create a test
//	  - addq           — add a question with its model answer
//
// Any errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("pg> %s > ", statusFn()))
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
			switch {
			case a.isTeacher():
				printlnFn("Available commands: whoami, tests, newtest, use <id>, questions, addq, grade, logout, exit")
			case a.isLoggedIn():
				printlnFn("Available commands: whoami, tests, use <id>, questions, grade, logout, exit")
			default:
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "tests":
			_ = a.Tests(ctx)

		case "newtest":
			_ = a.NewTest(ctx)

		case "use":
			if len(args) == 0 {
				printlnFn("Usage: use <test-id>")
				continue
			}
			_ = a.SelectTest(ctx, args)

		case "q", "questions":
			_ = a.Questions(ctx)

		case "addq":
			_ = a.AddQuestion(ctx)

		case "grade":
			_ = a.Grade(ctx)

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
