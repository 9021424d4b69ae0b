package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/cyberdoom/internal/common"
)

// Profile prints the logged-in account.
func (a *App) Profile(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Println("Please log in first.")
		return nil
	}
	role := "user"
	if a.user.IsAdmin {
		role = "admin"
	}
	fmt.Printf("Username: %s\nEmail:    %s\nRole:     %s\nCredits:  %d\n",
		a.user.Username, a.user.Email, role, a.user.Credits)
	return nil
}

// Rename changes the display username.
func (a *App) Rename(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Println("Please log in first.")
		return nil
	}
	username, err := getSimpleText(a.reader, "New username", os.Stdout)
	if err != nil {
		return err
	}
	if username == "" {
		fmt.Println("Username unchanged.")
		return nil
	}
	user, err := a.sessions.UpdateProfile(ctx, a.user.ID, username)
	if err != nil {
		a.log.Error(ctx, "renaming failed", "error", err)
		return err
	}
	a.user = user
	fmt.Println("Done.")
	return nil
}

// Upgrade prompts for the admin access code and elevates the account when
// it matches.
func (a *App) Upgrade(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Println("Please log in first.")
		return nil
	}
	if a.user.IsAdmin {
		fmt.Println("You already hold the admin role.")
		return nil
	}
	code, err := getPassword(os.Stdout, "Enter access code")
	if err != nil {
		return err
	}
	user, err := a.sessions.ElevateToAdmin(ctx, a.user.ID, code)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			fmt.Println("Access denied.")
		} else {
			a.log.Error(ctx, "elevation failed", "error", err)
		}
		return err
	}
	a.user = user
	fmt.Println("Admin access granted.")
	return nil
}
