package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/cyberdoom/internal/common"
	"github.com/dmitrijs2005/cyberdoom/internal/genai"
	"github.com/dmitrijs2005/cyberdoom/internal/models"
	"github.com/dmitrijs2005/cyberdoom/internal/splitter"
)

type fakeGenClient struct {
	fragments []string
	err       error
	called    bool
	lastReq   genai.StreamRequest
}

func (f *fakeGenClient) Stream(ctx context.Context, req genai.StreamRequest, onFragment func(string)) error {
	f.called = true
	f.lastReq = req
	for _, fr := range f.fragments {
		onFragment(fr)
	}
	return f.err
}

func (f *fakeGenClient) Close() error { return nil }

type genEnv struct {
	svc    *GenerationService
	client *fakeGenClient
	user   *models.User
	proj   *models.Project
}

func setupGeneration(t *testing.T, client *fakeGenClient) *genEnv {
	t.Helper()
	ctx := context.Background()
	st := setupStore(t)
	sessions := NewSessionService(st, testConfig(), testLogger())
	projects := NewProjectService(st, testLogger())

	user, err := sessions.Signup(ctx, "a@example.com", "pass123", "key1p")
	require.NoError(t, err)
	proj, err := projects.Create(ctx, user, "My App")
	require.NoError(t, err)

	return &genEnv{
		svc:    NewGenerationService(st, sessions, client, testLogger()),
		client: client,
		user:   user,
		proj:   proj,
	}
}

func TestGenerate_PersistsArtifactAndDebits(t *testing.T) {
	client := &fakeGenClient{fragments: []string{
		"Hello ", "world ```html", "<h1>hi</h1>", "``` done",
	}}
	env := setupGeneration(t, client)
	ctx := context.Background()
	before := env.user.Credits

	var prose []string
	project, emitted, err := env.svc.Generate(ctx, env.user, env.proj.ID, "make a greeting page", func(s string) {
		prose = append(prose, s)
	})
	require.NoError(t, err)
	assert.True(t, emitted)
	assert.Equal(t, "<h1>hi</h1>", project.HTML)
	assert.Contains(t, prose, splitter.Placeholder)
	assert.Equal(t, before-1, env.user.Credits)

	persisted, err := env.svc.store.FindProjectByID(ctx, env.proj.ID)
	require.NoError(t, err)
	assert.Equal(t, "<h1>hi</h1>", persisted.HTML)
	assert.GreaterOrEqual(t, persisted.UpdatedAt, persisted.CreatedAt)
}

func TestGenerate_PromptCarriesCurrentCode(t *testing.T) {
	client := &fakeGenClient{fragments: []string{"ok"}}
	env := setupGeneration(t, client)

	_, _, err := env.svc.Generate(context.Background(), env.user, env.proj.ID, "add a button", nil)
	require.NoError(t, err)

	assert.True(t, strings.Contains(client.lastReq.Prompt, env.proj.HTML))
	assert.True(t, strings.HasSuffix(client.lastReq.Prompt, "Request: add a button"))
	assert.Contains(t, client.lastReq.SystemInstruction, "CyberDoom application builder")
	// no backend keyword in the prompt, so no backend config injection
	assert.NotContains(t, client.lastReq.SystemInstruction, "Firebase configuration")
}

func TestGenerate_NoArtifactIsNotAnError(t *testing.T) {
	client := &fakeGenClient{fragments: []string{"I cannot help with that."}}
	env := setupGeneration(t, client)
	ctx := context.Background()

	project, emitted, err := env.svc.Generate(ctx, env.user, env.proj.ID, "hello", nil)
	require.NoError(t, err)
	assert.False(t, emitted)
	assert.Equal(t, env.proj.HTML, project.HTML)

	persisted, err := env.svc.store.FindProjectByID(ctx, env.proj.ID)
	require.NoError(t, err)
	assert.Equal(t, env.proj.HTML, persisted.HTML)
}

func TestGenerate_TransportErrorIsNotRefunded(t *testing.T) {
	client := &fakeGenClient{err: genai.ErrUnavailable}
	env := setupGeneration(t, client)
	ctx := context.Background()
	before := env.user.Credits

	_, _, err := env.svc.Generate(ctx, env.user, env.proj.ID, "hello", nil)
	assert.ErrorIs(t, err, genai.ErrUnavailable)

	persisted, err := env.svc.store.FindUserByID(ctx, env.user.ID)
	require.NoError(t, err)
	assert.Equal(t, before-1, persisted.Credits)
}

func TestGenerate_InsufficientCredits(t *testing.T) {
	client := &fakeGenClient{fragments: []string{"ok"}}
	env := setupGeneration(t, client)
	ctx := context.Background()

	env.user.Credits = 0
	require.NoError(t, env.svc.store.SaveUser(ctx, *env.user))

	_, _, err := env.svc.Generate(ctx, env.user, env.proj.ID, "hello", nil)
	assert.ErrorIs(t, err, common.ErrInsufficientCredits)
	assert.False(t, client.called)
}

func TestGenerate_RejectsNonOwner(t *testing.T) {
	client := &fakeGenClient{fragments: []string{"ok"}}
	env := setupGeneration(t, client)

	intruder := &models.User{ID: "someone-else", Credits: 5}
	_, _, err := env.svc.Generate(context.Background(), intruder, env.proj.ID, "hello", nil)
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
	assert.False(t, client.called)
}
