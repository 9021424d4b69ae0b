// Package store implements the entity store: four independent collections
// (users, projects, config, session), each persisted as one JSON blob in the
// kv substrate. Reads return the whole collection; writes serialize the whole
// collection back inside a transaction so a read-modify-write is not torn.
// There is no cross-collection transaction and no version check: the design
// assumes a single active writer, last write wins.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/cyberdoom/internal/common"
	"github.com/dmitrijs2005/cyberdoom/internal/dbx"
	migrationspg "github.com/dmitrijs2005/cyberdoom/internal/migrations/postgres"
	migrationslite "github.com/dmitrijs2005/cyberdoom/internal/migrations/sqlite"
	"github.com/dmitrijs2005/cyberdoom/internal/models"
	"github.com/dmitrijs2005/cyberdoom/internal/repositories/kv"
	"github.com/pressly/goose/v3"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

// Fixed keys of the four persisted blobs.
const (
	keyUsers    = "users"
	keyProjects = "projects"
	keyConfig   = "config"
	keySession  = "session"
)

// DefaultConfig is the AppConfig materialized when the config blob is absent.
func DefaultConfig() models.AppConfig {
	return models.AppConfig{
		DailyFreeCredits:  5,
		FirebaseConfigRaw: "",
		SecretKeys:        []string{"key1p", "key2r", "key3l"},
		UsedKeys:          []string{},
	}
}

// Store owns serialization of the entity collections to the kv substrate.
type Store struct {
	db   *sql.DB
	repo func(dbx.DBTX) kv.Repository
}

// New builds a Store over an already-open database. The driver selects the
// kv backend dialect.
func New(db *sql.DB, driver string) (*Store, error) {
	switch driver {
	case DriverSQLite:
		return &Store{db: db, repo: func(tx dbx.DBTX) kv.Repository { return kv.NewSQLiteRepository(tx) }}, nil
	case DriverPostgres:
		return &Store{db: db, repo: func(tx dbx.DBTX) kv.Repository { return kv.NewPostgresRepository(tx) }}, nil
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}
}

// RunMigrations applies the embedded goose migrations for the given driver.
func RunMigrations(ctx context.Context, db *sql.DB, driver string) error {
	switch driver {
	case DriverSQLite:
		goose.SetBaseFS(migrationslite.Migrations)
		if err := goose.SetDialect("sqlite3"); err != nil {
			return fmt.Errorf("failed to set goose dialect: %w", err)
		}
	case DriverPostgres:
		goose.SetBaseFS(migrationspg.Migrations)
		if err := goose.SetDialect("postgres"); err != nil {
			return fmt.Errorf("failed to set goose dialect: %w", err)
		}
	default:
		return fmt.Errorf("unsupported driver: %s", driver)
	}
	return goose.UpContext(ctx, db, ".")
}

// Open opens the database by DSN, applies migrations, and returns a Store.
func Open(ctx context.Context, driver string, dsn string) (*Store, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	if err := RunMigrations(ctx, db, driver); err != nil {
		_ = db.Close()
		return nil, err
	}
	return New(db, driver)
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) getBlob(ctx context.Context, key string, v any) (bool, error) {
	data, err := s.repo(s.db).Get(ctx, key)
	if err != nil {
		return false, err
	}
	if data == nil {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("failed to decode blob[%s]: %w", key, err)
	}
	return true, nil
}

func setBlob(ctx context.Context, repo kv.Repository, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode blob[%s]: %w", key, err)
	}
	return repo.Set(ctx, key, data)
}

// Users returns the full user collection in insertion order.
func (s *Store) Users(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if _, err := s.getBlob(ctx, keyUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// FindUserByID returns the user with the given id or common.ErrorNotFound.
func (s *Store) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	users, err := s.Users(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, common.ErrorNotFound
}

// FindUserByEmail returns the user with the given email or common.ErrorNotFound.
// At most one user exists per email.
func (s *Store) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	users, err := s.Users(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == email {
			return &users[i], nil
		}
	}
	return nil, common.ErrorNotFound
}

// SaveUser upserts a user by id: replaced in place if found, appended
// otherwise, preserving insertion order.
func (s *Store) SaveUser(ctx context.Context, user models.User) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)

		var users []models.User
		data, err := repo.Get(ctx, keyUsers)
		if err != nil {
			return err
		}
		if data != nil {
			if err := json.Unmarshal(data, &users); err != nil {
				return fmt.Errorf("failed to decode blob[%s]: %w", keyUsers, err)
			}
		}

		found := false
		for i := range users {
			if users[i].ID == user.ID {
				users[i] = user
				found = true
				break
			}
		}
		if !found {
			users = append(users, user)
		}

		return setBlob(ctx, repo, keyUsers, users)
	})
}

// Projects returns the full project collection in insertion order.
func (s *Store) Projects(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	if _, err := s.getBlob(ctx, keyProjects, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// ProjectsByOwner returns all projects owned by ownerID, insertion order
// preserved.
func (s *Store) ProjectsByOwner(ctx context.Context, ownerID string) ([]models.Project, error) {
	projects, err := s.Projects(ctx)
	if err != nil {
		return nil, err
	}
	var result []models.Project
	for _, p := range projects {
		if p.OwnerID == ownerID {
			result = append(result, p)
		}
	}
	return result, nil
}

// FindProjectByID returns the project with the given id or common.ErrorNotFound.
func (s *Store) FindProjectByID(ctx context.Context, id string) (*models.Project, error) {
	projects, err := s.Projects(ctx)
	if err != nil {
		return nil, err
	}
	for i := range projects {
		if projects[i].ID == id {
			return &projects[i], nil
		}
	}
	return nil, common.ErrorNotFound
}

// SaveProject upserts a project by id, preserving insertion order.
func (s *Store) SaveProject(ctx context.Context, project models.Project) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)

		var projects []models.Project
		data, err := repo.Get(ctx, keyProjects)
		if err != nil {
			return err
		}
		if data != nil {
			if err := json.Unmarshal(data, &projects); err != nil {
				return fmt.Errorf("failed to decode blob[%s]: %w", keyProjects, err)
			}
		}

		found := false
		for i := range projects {
			if projects[i].ID == project.ID {
				projects[i] = project
				found = true
				break
			}
		}
		if !found {
			projects = append(projects, project)
		}

		return setBlob(ctx, repo, keyProjects, projects)
	})
}

// DeleteProject removes the project with the given id and rewrites the
// collection. Deleting an absent id is a no-op.
func (s *Store) DeleteProject(ctx context.Context, id string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)

		var projects []models.Project
		data, err := repo.Get(ctx, keyProjects)
		if err != nil {
			return err
		}
		if data != nil {
			if err := json.Unmarshal(data, &projects); err != nil {
				return fmt.Errorf("failed to decode blob[%s]: %w", keyProjects, err)
			}
		}

		kept := projects[:0]
		for _, p := range projects {
			if p.ID != id {
				kept = append(kept, p)
			}
		}

		return setBlob(ctx, repo, keyProjects, kept)
	})
}

// Config returns the AppConfig singleton, materializing defaults when the
// blob is absent.
func (s *Store) Config(ctx context.Context) (models.AppConfig, error) {
	cfg := DefaultConfig()
	if _, err := s.getBlob(ctx, keyConfig, &cfg); err != nil {
		return models.AppConfig{}, err
	}
	return cfg, nil
}

// SetConfig overwrites the AppConfig singleton.
func (s *Store) SetConfig(ctx context.Context, cfg models.AppConfig) error {
	return setBlob(ctx, s.repo(s.db), keyConfig, cfg)
}

// Session returns the persisted session snapshot, or nil if absent.
func (s *Store) Session(ctx context.Context) (*models.Session, error) {
	var session models.Session
	ok, err := s.getBlob(ctx, keySession, &session)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &session, nil
}

// SetSession persists the session snapshot.
func (s *Store) SetSession(ctx context.Context, session models.Session) error {
	return setBlob(ctx, s.repo(s.db), keySession, session)
}

// ClearSession destroys the session snapshot; user records are untouched.
func (s *Store) ClearSession(ctx context.Context) error {
	return s.repo(s.db).Delete(ctx, keySession)
}

// Reset destroys every persisted collection: users, projects, config, and
// session. The next reads materialize defaults again.
func (s *Store) Reset(ctx context.Context) error {
	return s.repo(s.db).Clear(ctx)
}
