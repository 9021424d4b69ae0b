package services

import (
	"context"

	"github.com/dmitrijs2005/cyberdoom/internal/common"
	"github.com/dmitrijs2005/cyberdoom/internal/logging"
	"github.com/dmitrijs2005/cyberdoom/internal/models"
	"github.com/dmitrijs2005/cyberdoom/internal/store"
	"github.com/google/uuid"
)

// boilerplateHTML seeds a freshly created project with a minimal valid
// document so the preview renders before the first generation.
const boilerplateHTML = "<!DOCTYPE html>\n<html>\n<head>\n<title>New Project</title>\n</head>\n<body>\n<h1>Hello World</h1>\n</body>\n</html>"

const defaultBranch = "main"

// ProjectService owns project CRUD. Every mutation takes the acting
// principal and checks ownership (or the admin role) before applying.
type ProjectService struct {
	store *store.Store
	log   logging.Logger
}

// NewProjectService constructs a ProjectService over the entity store.
func NewProjectService(st *store.Store, log logging.Logger) *ProjectService {
	return &ProjectService{store: st, log: log}
}

// Create allocates a new project seeded with the boilerplate artifact and
// persists it for immediate navigation into the editor.
func (s *ProjectService) Create(ctx context.Context, owner *models.User, name string) (*models.Project, error) {
	now := nowFn().UnixMilli()
	project := models.Project{
		ID:        uuid.NewString(),
		Name:      name,
		OwnerID:   owner.ID,
		HTML:      boilerplateHTML,
		CreatedAt: now,
		UpdatedAt: now,
		Branch:    defaultBranch,
	}
	if err := s.store.SaveProject(ctx, project); err != nil {
		return nil, err
	}
	s.log.Info(ctx, "project created", "project", project.ID, "owner", owner.ID)
	return &project, nil
}

// Save overwrites the artifact and bumps UpdatedAt. Last write wins; there
// is no diffing and no version history.
func (s *ProjectService) Save(ctx context.Context, acting *models.User, projectID, html string) (*models.Project, error) {
	project, err := s.authorize(ctx, acting, projectID)
	if err != nil {
		return nil, err
	}
	project.HTML = html
	project.UpdatedAt = nowFn().UnixMilli()
	if err := s.store.SaveProject(ctx, *project); err != nil {
		return nil, err
	}
	return project, nil
}

// List returns all projects owned by ownerID, insertion order preserved.
func (s *ProjectService) List(ctx context.Context, ownerID string) ([]models.Project, error) {
	return s.store.ProjectsByOwner(ctx, ownerID)
}

// Get returns a single project by id.
func (s *ProjectService) Get(ctx context.Context, id string) (*models.Project, error) {
	return s.store.FindProjectByID(ctx, id)
}

// Delete removes a project after an ownership check.
func (s *ProjectService) Delete(ctx context.Context, acting *models.User, id string) error {
	if _, err := s.authorize(ctx, acting, id); err != nil {
		return err
	}
	if err := s.store.DeleteProject(ctx, id); err != nil {
		return err
	}
	s.log.Info(ctx, "project deleted", "project", id, "by", acting.ID)
	return nil
}

// authorize loads the project and verifies the acting principal owns it or
// holds the admin role.
func (s *ProjectService) authorize(ctx context.Context, acting *models.User, projectID string) (*models.Project, error) {
	project, err := s.store.FindProjectByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.OwnerID != acting.ID && !acting.IsAdmin {
		return nil, common.ErrorUnauthorized
	}
	return project, nil
}
