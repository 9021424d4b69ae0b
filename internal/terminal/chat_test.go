package terminal

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/cyberdoom/internal/genai"
	"github.com/dmitrijs2005/cyberdoom/internal/models"
)

type fakeClient struct {
	fragments []string
	err       error
	reqs      []genai.StreamRequest
}

func (f *fakeClient) Stream(ctx context.Context, req genai.StreamRequest, onFragment func(string)) error {
	f.reqs = append(f.reqs, req)
	for _, fr := range f.fragments {
		onFragment(fr)
	}
	return f.err
}

func (f *fakeClient) Close() error { return nil }

func TestNewChat_OpensWithBootBanner(t *testing.T) {
	c := NewChat(&fakeClient{})
	msgs := c.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, models.RoleSystem, msgs[0].Role)
	assert.Contains(t, msgs[0].Content, "NEURAL LINK ESTABLISHED")
}

func TestSend_StreamsReplyIntoTranscript(t *testing.T) {
	client := &fakeClient{fragments: []string{"ACK. ", "PROCESSING."}}
	c := NewChat(client)

	var chunks []string
	require.NoError(t, c.Send(context.Background(), "status report", func(s string) {
		chunks = append(chunks, s)
	}))

	assert.Equal(t, []string{"ACK. ", "PROCESSING."}, chunks)

	msgs := c.Messages()
	require.Len(t, msgs, 3) // banner, user, model
	assert.Equal(t, models.RoleUser, msgs[1].Role)
	assert.Equal(t, "status report", msgs[1].Content)
	assert.Equal(t, models.RoleModel, msgs[2].Role)
	assert.Equal(t, "ACK. PROCESSING.", msgs[2].Content)
	assert.False(t, msgs[2].Streaming)

	req := client.reqs[0]
	assert.Contains(t, req.SystemInstruction, "UNIT-CD1")
	assert.Equal(t, "status report", req.Prompt)
	assert.Empty(t, req.History) // banner is a system entry, not history
	assert.Equal(t, 0.7, req.Temperature)
	assert.Equal(t, 1000, req.MaxOutputTokens)
}

func TestSend_HistoryExcludesCurrentTurnAndSystemEntries(t *testing.T) {
	client := &fakeClient{fragments: []string{"REPLY"}}
	c := NewChat(client)

	require.NoError(t, c.Send(context.Background(), "first", nil))
	require.NoError(t, c.Send(context.Background(), "second", nil))

	require.Len(t, client.reqs, 2)
	second := client.reqs[1]
	require.Len(t, second.History, 2)
	assert.Equal(t, genai.Turn{Role: models.RoleUser, Text: "first"}, second.History[0])
	assert.Equal(t, genai.Turn{Role: models.RoleModel, Text: "REPLY"}, second.History[1])
}

func TestSend_TransportErrorBecomesSystemEntry(t *testing.T) {
	client := &fakeClient{err: errors.New("uplink severed")}
	c := NewChat(client)

	require.NoError(t, c.Send(context.Background(), "hello", nil))

	msgs := c.Messages()
	last := msgs[len(msgs)-1]
	assert.Equal(t, models.RoleSystem, last.Role)
	assert.Contains(t, last.Content, "ERROR: CONNECTION SEVERED.")
	assert.Contains(t, last.Content, "uplink severed")
	assert.False(t, c.Typing())
}

func TestSend_IgnoresBlankInput(t *testing.T) {
	client := &fakeClient{}
	c := NewChat(client)

	require.NoError(t, c.Send(context.Background(), "", nil))
	assert.Empty(t, client.reqs)
	assert.Len(t, c.Messages(), 1)
}

func TestAppRun_ScriptedSession(t *testing.T) {
	client := &fakeClient{fragments: []string{"DATA DUMP."}}
	var out bytes.Buffer
	app := NewApp(client, strings.NewReader("scan network\nexit\n"), &out)

	require.NoError(t, app.Run(context.Background()))

	assert.Contains(t, out.String(), "INITIALIZING CYBERDOOM")
	assert.Contains(t, out.String(), "DATA DUMP.")
	assert.Contains(t, out.String(), "UPLINK TERMINATED.")
}

func TestAppRun_PrintsTransportFailure(t *testing.T) {
	client := &fakeClient{err: errors.New("carrier lost")}
	var out bytes.Buffer
	app := NewApp(client, strings.NewReader("hello\n"), &out)

	require.NoError(t, app.Run(context.Background()))
	assert.Contains(t, out.String(), "ERROR: CONNECTION SEVERED.")
	assert.Contains(t, out.String(), "carrier lost")
}
