package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/cyberdoom/internal/common"
	"github.com/dmitrijs2005/cyberdoom/internal/genai"
)

// Generate runs one generation turn against the open project, streaming the
// model's explanation to the console as it arrives. One credit is charged
// up front and is not returned if the call fails.
func (a *App) Generate(ctx context.Context, prompt string) error {
	if !a.hasProject() {
		fmt.Println("Open a project first.")
		return nil
	}

	project, emitted, err := a.generations.Generate(ctx, a.user, a.project.ID, prompt, func(s string) {
		fmt.Print(s)
	})
	fmt.Println()
	if err != nil {
		switch {
		case errors.Is(err, common.ErrInsufficientCredits):
			fmt.Println("You are out of credits. They refresh daily, or an admin can grant more.")
		case errors.Is(err, genai.ErrQuotaExceeded):
			fmt.Println("The generation service is rate limited right now, try again later.")
		case errors.Is(err, genai.ErrUnauthorized):
			fmt.Println("The generation service rejected the API key.")
		case errors.Is(err, genai.ErrUnavailable):
			fmt.Println("The generation service is unreachable.")
		default:
			a.log.Error(ctx, "generation failed", "error", err)
		}
		return err
	}

	a.project = project
	if emitted {
		fmt.Printf("Project updated (%d bytes of code). %d credits left.\n", len(project.HTML), a.user.Credits)
	} else {
		fmt.Println("The response contained no code; the project is unchanged.")
	}
	return nil
}
