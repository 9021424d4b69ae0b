package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/cyberdoom/internal/common"
)

func (a *App) getStatus() string {
	s := ""
	if a.user != nil {
		s = a.user.Username
		if a.user.IsAdmin {
			s += "*"
		} else {
			s += fmt.Sprintf(" %dcr", a.user.Credits)
		}
	}
	if a.project != nil {
		s = s + " [" + a.project.Name + "]"
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

func (a *App) Root(ctx context.Context) {
	fmt.Println("Welcome to CyberDoom Studio (type 'help' for commands)")

	user, err := a.sessions.Restore(ctx)
	if err != nil {
		if errors.Is(err, common.ErrSessionExpired) {
			fmt.Println("Session expired, please log in again.")
		} else {
			a.log.Error(ctx, "session restore failed", "error", err)
		}
	} else if user != nil {
		a.user = user
		fmt.Printf("Welcome back, %s!\n", user.Username)
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
