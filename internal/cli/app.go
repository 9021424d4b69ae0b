package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/dmitrijs2005/cyberdoom/internal/config"
	"github.com/dmitrijs2005/cyberdoom/internal/genai"
	"github.com/dmitrijs2005/cyberdoom/internal/logging"
	"github.com/dmitrijs2005/cyberdoom/internal/models"
	"github.com/dmitrijs2005/cyberdoom/internal/publish"
	"github.com/dmitrijs2005/cyberdoom/internal/services"
	"github.com/dmitrijs2005/cyberdoom/internal/store"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// App wires the studio services behind the interactive command loop. It
// holds the logged-in user and the currently open project between commands.
type App struct {
	config      *config.Config
	store       *store.Store
	sessions    *services.SessionService
	projects    *services.ProjectService
	generations *services.GenerationService
	admin       *services.AdminService
	publisher   *publish.Publisher
	client      genai.Client
	log         logging.Logger

	user    *models.User
	project *models.Project
	reader  *bufio.Reader
}

// NewApp opens the entity store and constructs the service graph.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	st, err := store.Open(ctx, cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	client := genai.NewGeminiClient(cfg.GenAIEndpoint, cfg.GenAIAPIKey, cfg.GenAIModel)
	sessions := services.NewSessionService(st, cfg, log)

	return &App{
		config:      cfg,
		store:       st,
		sessions:    sessions,
		projects:    services.NewProjectService(st, log),
		generations: services.NewGenerationService(st, sessions, client, log),
		admin:       services.NewAdminService(st, log),
		publisher:   publish.NewPublisher(cfg),
		client:      client,
		log:         log,
		reader:      bufio.NewReader(os.Stdin),
	}, nil
}

// Run restores a persisted session, then hands control to the REPL until
// the user exits.
func (a *App) Run(ctx context.Context) {
	defer func() {
		_ = a.client.Close()
		_ = a.store.Close()
	}()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.user != nil
}

func (a *App) hasProject() bool {
	return a.project != nil
}
