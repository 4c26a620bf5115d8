package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mmynk/inventory/internal/service"
)

const loginMenu = `
--- Login ---
1. Log in
2. Exit
`

// App is the interactive front end. It owns no state beyond the current
// login; every action goes straight to the services.
type App struct {
	auth      *service.AuthService
	inventory *service.InventoryService
	logger    *slog.Logger
	prompt    *prompter
	out       io.Writer
}

// New creates an App reading answers from in and writing to out. When in
// is a terminal, passwords are read without echo.
func New(authSvc *service.AuthService, inventory *service.InventoryService, logger *slog.Logger, in io.Reader, out io.Writer) *App {
	return &App{
		auth:      authSvc,
		inventory: inventory,
		logger:    logger,
		prompt:    newPrompter(in, out),
		out:       out,
	}
}

// Run shows the login menu until the user exits or input ends. Closing
// the input stream is a normal way to leave and returns nil.
func (a *App) Run(ctx context.Context) error {
	fmt.Fprintln(a.out, "Welcome to the inventory system.")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(a.out, loginMenu)
		choice, err := a.prompt.text("Select an option: ")
		if err != nil {
			return endOfInput(err)
		}

		switch choice {
		case "1":
			s, err := a.login(ctx)
			if err != nil {
				if errors.Is(err, io.EOF) {
					return nil
				}
				fmt.Fprintln(a.out, userMessage(err))
				continue
			}
			fmt.Fprintln(a.out, "Login successful.")
			if err := s.run(ctx); err != nil {
				return endOfInput(err)
			}
		case "2":
			fmt.Fprintln(a.out, "Goodbye.")
			return nil
		default:
			fmt.Fprintln(a.out, "Invalid option.")
		}
	}
}

// login asks for credentials and opens a session on success.
func (a *App) login(ctx context.Context) (*session, error) {
	username, err := a.prompt.text("Username: ")
	if err != nil {
		return nil, err
	}
	password, err := a.prompt.password("Password: ")
	if err != nil {
		return nil, err
	}

	user, err := a.auth.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	return &session{
		username:  user.Username,
		auth:      a.auth.With("session", id, "user", user.Username),
		inventory: a.inventory.With("session", id, "user", user.Username),
		logger:    a.logger.With("session", id, "user", user.Username),
		prompt:    a.prompt,
		out:       a.out,
	}, nil
}

// endOfInput maps io.EOF to a clean exit.
func endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
