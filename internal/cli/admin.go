package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/dmitrijs2005/cyberdoom/internal/common"
	"github.com/dmitrijs2005/cyberdoom/internal/services"
)

const adminUsage = "Usage: admin users | admin grant <userID> <amount> | admin daily <n> | admin firebase | admin addkey [key] | admin delkey <key> | admin wipe"

// Admin dispatches the privileged subcommands. Every subcommand is gated on
// the admin role by the underlying service.
func (a *App) Admin(ctx context.Context, args []string) error {
	if !a.isLoggedIn() {
		fmt.Println("Please log in first.")
		return nil
	}
	if len(args) == 0 {
		fmt.Println(adminUsage)
		return nil
	}

	var err error
	switch args[0] {
	case "users":
		err = a.adminUsers(ctx)
	case "grant":
		if len(args) != 3 {
			fmt.Println("Usage: admin grant <userID> <amount>")
			return nil
		}
		err = a.adminGrant(ctx, args[1], args[2])
	case "daily":
		if len(args) != 2 {
			fmt.Println("Usage: admin daily <n>")
			return nil
		}
		err = a.adminDaily(ctx, args[1])
	case "firebase":
		err = a.adminFirebase(ctx)
	case "addkey":
		switch len(args) {
		case 1:
			// no key given: mint one
			var key string
			if key, err = a.admin.GenerateSecretKey(ctx, a.user); err == nil {
				fmt.Println("New invite key:", key)
			}
		case 2:
			_, err = a.admin.AddSecretKey(ctx, a.user, args[1])
		default:
			fmt.Println("Usage: admin addkey [key]")
			return nil
		}
	case "delkey":
		if len(args) != 2 {
			fmt.Println("Usage: admin delkey <key>")
			return nil
		}
		_, err = a.admin.RemoveSecretKey(ctx, a.user, args[1])
	case "wipe":
		err = a.adminWipe(ctx)
	default:
		fmt.Println(adminUsage)
		return nil
	}

	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			fmt.Println("Admin access required.")
		} else {
			a.log.Error(ctx, "admin command failed", "error", err)
		}
		return err
	}
	fmt.Println("OK.")
	return nil
}

func (a *App) adminUsers(ctx context.Context) error {
	users, err := a.admin.ListUsers(ctx, a.user)
	if err != nil {
		return err
	}
	for _, u := range users {
		role := ""
		if u.IsAdmin {
			role = " admin"
		}
		fmt.Printf("%s  %-20s  %-30s  %3d credits%s\n", u.ID, u.Username, u.Email, u.Credits, role)
	}
	return nil
}

func (a *App) adminGrant(ctx context.Context, userID, amountArg string) error {
	amount, err := strconv.Atoi(amountArg)
	if err != nil {
		fmt.Println("Amount must be a number.")
		return nil
	}
	_, err = a.admin.GrantCredits(ctx, a.user, userID, amount)
	return err
}

func (a *App) adminDaily(ctx context.Context, arg string) error {
	n, err := strconv.Atoi(arg)
	if err != nil {
		fmt.Println("The daily credit amount must be a number.")
		return nil
	}
	_, err = a.admin.UpdateConfig(ctx, a.user, services.ConfigUpdate{DailyFreeCredits: &n})
	return err
}

// adminWipe factory-resets the entity store after an explicit confirmation.
// Every account and project is destroyed, so the session is gone too; the
// app drops back to the logged-out state.
func (a *App) adminWipe(ctx context.Context) error {
	answer, err := getSimpleText(a.reader, "This destroys ALL accounts and projects. Type WIPE to confirm", os.Stdout)
	if err != nil {
		return err
	}
	if answer != "WIPE" {
		fmt.Println("Aborted.")
		return nil
	}
	if err := a.admin.ResetStore(ctx, a.user); err != nil {
		return err
	}
	a.user = nil
	a.project = nil
	return nil
}

func (a *App) adminFirebase(ctx context.Context) error {
	raw, err := GetMultiline(a.reader, "Paste the Firebase configuration", os.Stdout)
	if err != nil {
		return err
	}
	_, err = a.admin.UpdateConfig(ctx, a.user, services.ConfigUpdate{FirebaseConfigRaw: &raw})
	return err
}
