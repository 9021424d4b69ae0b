package services

import (
	"context"

	"github.com/dmitrijs2005/cyberdoom/internal/common"
	"github.com/dmitrijs2005/cyberdoom/internal/genai"
	"github.com/dmitrijs2005/cyberdoom/internal/logging"
	"github.com/dmitrijs2005/cyberdoom/internal/models"
	"github.com/dmitrijs2005/cyberdoom/internal/splitter"
	"github.com/dmitrijs2005/cyberdoom/internal/store"
)

// Generation parameters sent with every builder call.
const (
	generationTemperature = 0.7
	generationMaxTokens   = 8192
)

// GenerationService orchestrates one chat-driven generation: authorize and
// debit, stream the response through the splitter, persist the artifact, and
// keep the acting user's balance fresh.
//
// Calls are sequential per editor instance; the caller must not start a new
// generation while one is in flight.
type GenerationService struct {
	store    *store.Store
	sessions *SessionService
	client   genai.Client
	log      logging.Logger
}

// NewGenerationService wires the orchestrator to its collaborators.
func NewGenerationService(st *store.Store, sessions *SessionService, client genai.Client, log logging.Logger) *GenerationService {
	return &GenerationService{store: st, sessions: sessions, client: client, log: log}
}

// Generate runs one generation turn against the given project. Prose deltas
// are forwarded to onProse as they arrive; when the response carries a
// complete fenced code block, the artifact is persisted as the project's new
// HTML and the updated project is returned with emitted=true.
//
// The credit is debited before the call and is NOT refunded if the call
// fails; transport failures surface once, unretried. A stream that ends
// without a detectable code block is a warning, not an error.
func (g *GenerationService) Generate(ctx context.Context, acting *models.User, projectID, prompt string, onProse func(string)) (project *models.Project, emitted bool, err error) {
	project, err = g.store.FindProjectByID(ctx, projectID)
	if err != nil {
		return nil, false, err
	}
	if project.OwnerID != acting.ID && !acting.IsAdmin {
		return nil, false, common.ErrorUnauthorized
	}

	user, err := g.sessions.DebitForGeneration(ctx, acting.ID)
	if err != nil {
		return nil, false, err
	}
	*acting = *user

	appCfg, err := g.store.Config(ctx)
	if err != nil {
		return nil, false, err
	}

	var artifact string
	split := splitter.New(onProse, func(code string) {
		artifact = code
		emitted = true
	})

	req := genai.StreamRequest{
		SystemInstruction: builderSystemInstruction(appCfg, prompt),
		Prompt:            builderPrompt(project, prompt),
		Temperature:       generationTemperature,
		MaxOutputTokens:   generationMaxTokens,
	}
	streamErr := g.client.Stream(ctx, req, split.Feed)
	split.Finish()

	if streamErr != nil {
		g.log.Error(ctx, "generation stream failed", "project", project.ID, "error", streamErr)
		return nil, false, streamErr
	}

	if !emitted {
		g.log.Warn(ctx, "stream ended without a code artifact", "project", project.ID)
		return project, false, nil
	}

	project.HTML = artifact
	project.UpdatedAt = nowFn().UnixMilli()
	if err := g.store.SaveProject(ctx, *project); err != nil {
		return nil, false, err
	}
	g.log.Info(ctx, "artifact persisted", "project", project.ID, "bytes", len(artifact))
	return project, true, nil
}
