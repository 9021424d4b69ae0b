package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/cyberdoom/internal/common"
)

// List prints the logged-in user's projects, oldest first.
func (a *App) List(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Println("Please log in first.")
		return nil
	}
	projects, err := a.projects.List(ctx, a.user.ID)
	if err != nil {
		a.log.Error(ctx, "listing projects failed", "error", err)
		return err
	}
	if len(projects) == 0 {
		fmt.Println("No projects yet. Type 'new' to create one.")
		return nil
	}
	for _, p := range projects {
		updated := time.UnixMilli(p.UpdatedAt).Format("2006-01-02 15:04")
		fmt.Printf("%s  %-20s  updated %s\n", p.ID, p.Name, updated)
	}
	return nil
}

// NewProject prompts for a name, creates a boilerplate project and opens it.
func (a *App) NewProject(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Println("Please log in first.")
		return nil
	}
	name, err := getSimpleText(a.reader, "Project name", os.Stdout)
	if err != nil {
		return err
	}
	if name == "" {
		name = "Untitled Project"
	}
	project, err := a.projects.Create(ctx, a.user, name)
	if err != nil {
		a.log.Error(ctx, "creating project failed", "error", err)
		return err
	}
	a.project = project
	fmt.Printf("Created and opened %q (%s).\n", project.Name, project.ID)
	return nil
}

// Open loads a project into the editor slot.
func (a *App) Open(ctx context.Context, id string) error {
	if !a.isLoggedIn() {
		fmt.Println("Please log in first.")
		return nil
	}
	project, err := a.projects.Get(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			fmt.Println("No such project:", id)
		} else {
			a.log.Error(ctx, "opening project failed", "error", err)
		}
		return err
	}
	if project.OwnerID != a.user.ID && !a.user.IsAdmin {
		fmt.Println("That project belongs to someone else.")
		return common.ErrorUnauthorized
	}
	a.project = project
	fmt.Printf("Opened %q (%d bytes of code).\n", project.Name, len(project.HTML))
	return nil
}

// CloseProject drops the open project without touching the store.
func (a *App) CloseProject() {
	a.project = nil
}

// Save replaces the open project's code with pasted input.
func (a *App) Save(ctx context.Context) error {
	if !a.hasProject() {
		fmt.Println("Open a project first.")
		return nil
	}
	html, err := GetMultiline(a.reader, "Paste the new document", os.Stdout)
	if err != nil {
		return err
	}
	project, err := a.projects.Save(ctx, a.user, a.project.ID, html)
	if err != nil {
		a.log.Error(ctx, "saving project failed", "error", err)
		return err
	}
	a.project = project
	fmt.Println("Saved.")
	return nil
}

// Delete removes a project by id. The open project is closed if it was the
// one deleted.
func (a *App) Delete(ctx context.Context, id string) error {
	if !a.isLoggedIn() {
		fmt.Println("Please log in first.")
		return nil
	}
	if err := a.projects.Delete(ctx, a.user, id); err != nil {
		switch {
		case errors.Is(err, common.ErrorNotFound):
			fmt.Println("No such project:", id)
		case errors.Is(err, common.ErrorUnauthorized):
			fmt.Println("That project belongs to someone else.")
		default:
			a.log.Error(ctx, "deleting project failed", "error", err)
		}
		return err
	}
	if a.project != nil && a.project.ID == id {
		a.project = nil
	}
	fmt.Println("Deleted.")
	return nil
}

// Publish uploads the open project and prints the shareable link.
func (a *App) Publish(ctx context.Context) error {
	if !a.hasProject() {
		fmt.Println("Open a project first.")
		return nil
	}
	url, err := a.publisher.Publish(ctx, a.project)
	if err != nil {
		a.log.Error(ctx, "publishing failed", "error", err)
		return err
	}
	fmt.Println("Published:", url)
	return nil
}
