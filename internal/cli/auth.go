package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/cyberdoom/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for an email, a password and an invite key and creates
// a new account. On success the user is logged in immediately.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout, "Enter password")
	if err != nil {
		return err
	}

	key, err := getSimpleText(a.reader, "Enter invite key", os.Stdout)
	if err != nil {
		return err
	}

	user, err := a.sessions.Signup(ctx, email, password, key)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrInvalidSecretKey):
			fmt.Println("That invite key is not recognized.")
		case errors.Is(err, common.ErrEmailTaken):
			fmt.Println("An account with that email already exists.")
		default:
			a.log.Error(ctx, "registration failed", "error", err)
		}
		return err
	}

	a.user = user
	fmt.Printf("Welcome, %s! You have %d credits.\n", user.Username, user.Credits)
	return nil
}

// Login prompts for credentials and authenticates. The daily free credits
// are granted on the first login of each calendar date.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout, "Enter password")
	if err != nil {
		return err
	}

	user, err := a.sessions.Login(ctx, email, password)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			fmt.Println("Invalid email or password.")
		} else {
			a.log.Error(ctx, "login failed", "error", err)
		}
		return err
	}

	a.user = user
	fmt.Printf("Welcome back, %s! You have %d credits.\n", user.Username, user.Credits)
	return nil
}

// Logout clears the persisted session and forgets the open project.
func (a *App) Logout(ctx context.Context) error {
	if err := a.sessions.Logout(ctx); err != nil {
		return err
	}
	a.user = nil
	a.project = nil
	return nil
}
