package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/prepadmin/internal/client/client"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Go(ctx context.Context, path string) error
	Back(ctx context.Context) error

	Templates(ctx context.Context, args []string) error
	Template(ctx context.Context, id string) error
	TemplateNew(ctx context.Context) error
	TemplateEdit(ctx context.Context, id string) error
	TemplateDelete(ctx context.Context, id string) error

	Lessons(ctx context.Context, args []string) error
	Lesson(ctx context.Context, id string) error
	LessonNew(ctx context.Context) error
	LessonEdit(ctx context.Context, id string) error
	LessonDelete(ctx context.Context, id string) error

	Interviews(ctx context.Context, args []string) error
	Interview(ctx context.Context, id string) error
	Users(ctx context.Context, args []string) error

	Upload(ctx context.Context, path string) error
	Metrics(ctx context.Context) error
}

const (
	helpGuest = "Available commands: login, go <path>, back, whoami, help, exit"
	helpAdmin = `Available commands:
  templates [key=value...]   template <id>   template-new   template-edit <id>   template-delete <id>
  lessons [skip=N limit=N]   lesson <id>     lesson-new     lesson-edit <id>     lesson-delete <id>
  interviews [key=value...]  interview <id>  users [skip=N limit=N]
  upload <file>  go <path>  back  whoami  metrics  logout  help  exit`
)

// runREPL starts a simple read–eval–print loop for the prepadmin console.
//
// It reads a line from reader, parses the first token as the command and
// dispatches to methods on 'a'. The loop exits on EOF or when the operator
// types "exit" or "quit".
//
// Errors returned by handlers are printed inline and never end the loop: a
// local validation message or the backend's detail when there is one, the
// handler's own text otherwise.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("prepadmin %s > ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}
		if err := dispatch(ctx, a, cmd, args); err != nil {
			printlnFn("Error:", client.ErrorDetail(err, err.Error()))
		}
	}
}

type usageError string

func (u usageError) Error() string { return "usage: " + string(u) }

func dispatch(ctx context.Context, a execIface, cmd string, args []string) error {
	withID := func(usage string, fn func(context.Context, string) error) error {
		if len(args) != 1 {
			return usageError(usage)
		}
		return fn(ctx, args[0])
	}

	switch cmd {
	case "help":
		if a.isLoggedIn() {
			printlnFn(helpAdmin)
		} else {
			printlnFn(helpGuest)
		}
		return nil

	case "login":
		return a.Login(ctx)
	case "logout":
		return a.Logout(ctx)
	case "whoami":
		return a.WhoAmI(ctx)
	case "go":
		return withID("go <path>", a.Go)
	case "back":
		return a.Back(ctx)

	case "templates", "t":
		return a.Templates(ctx, args)
	case "template":
		return withID("template <id>", a.Template)
	case "template-new":
		return a.TemplateNew(ctx)
	case "template-edit":
		return withID("template-edit <id>", a.TemplateEdit)
	case "template-delete":
		return withID("template-delete <id>", a.TemplateDelete)

	case "lessons":
		return a.Lessons(ctx, args)
	case "lesson":
		return withID("lesson <id>", a.Lesson)
	case "lesson-new":
		return a.LessonNew(ctx)
	case "lesson-edit":
		return withID("lesson-edit <id>", a.LessonEdit)
	case "lesson-delete":
		return withID("lesson-delete <id>", a.LessonDelete)

	case "interviews":
		return a.Interviews(ctx, args)
	case "interview":
		return withID("interview <id>", a.Interview)
	case "users":
		return a.Users(ctx, args)

	case "upload":
		return withID("upload <file>", a.Upload)
	case "metrics":
		return a.Metrics(ctx)
	}

	printlnFn("Unknown command:", cmd)
	return nil
}
