// Package terminal implements the CYBERDOOM terminal uplink: a persona-bound
// chat over the generation service with an in-memory transcript.
package terminal

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/cyberdoom/internal/genai"
	"github.com/dmitrijs2005/cyberdoom/internal/models"
)

// nowFn is a test seam for the clock.
var nowFn = time.Now

// Chat holds one terminal conversation. The transcript lives only in memory;
// closing the terminal discards it.
//
// Send must not be called again until the previous call returns.
type Chat struct {
	client   genai.Client
	messages []models.Message
	typing   bool
}

// NewChat opens a conversation seeded with the boot banner.
func NewChat(client genai.Client) *Chat {
	return &Chat{
		client: client,
		messages: []models.Message{{
			ID:        uuid.NewString(),
			Role:      models.RoleSystem,
			Content:   bootBanner,
			Timestamp: nowFn().UnixMilli(),
		}},
	}
}

// Messages returns the transcript, oldest first.
func (c *Chat) Messages() []models.Message {
	return c.messages
}

// Typing reports whether a model response is currently streaming in.
func (c *Chat) Typing() bool {
	return c.typing
}

// Send submits one operator input and streams the model's reply. The history
// replayed to the service is the transcript BEFORE this input, system
// entries excluded. Each received fragment is appended to the model message
// and forwarded to onChunk. A transport failure becomes a system entry in
// the transcript; Send itself returns nil so the uplink stays usable.
//
// Blank input and input sent while a reply is still streaming are ignored.
func (c *Chat) Send(ctx context.Context, input string, onChunk func(string)) error {
	if input == "" || c.typing {
		return nil
	}
	c.typing = true
	defer func() { c.typing = false }()

	history := c.history()

	c.append(models.RoleUser, input)
	replyIdx := c.append(models.RoleModel, "")
	c.messages[replyIdx].Streaming = true
	defer func() { c.messages[replyIdx].Streaming = false }()

	req := genai.StreamRequest{
		SystemInstruction: systemInstruction,
		History:           history,
		Prompt:            input,
		Temperature:       chatTemperature,
		MaxOutputTokens:   chatMaxTokens,
	}
	err := c.client.Stream(ctx, req, func(text string) {
		c.messages[replyIdx].Content += text
		if onChunk != nil {
			onChunk(text)
		}
	})
	if err != nil {
		c.append(models.RoleSystem, "ERROR: CONNECTION SEVERED. \n"+err.Error())
	}
	return nil
}

// history maps the transcript to service turns, dropping system entries.
func (c *Chat) history() []genai.Turn {
	var turns []genai.Turn
	for _, m := range c.messages {
		if m.Role == models.RoleSystem {
			continue
		}
		turns = append(turns, genai.Turn{Role: m.Role, Text: m.Content})
	}
	return turns
}

// append adds a transcript entry and returns its index.
func (c *Chat) append(role, content string) int {
	c.messages = append(c.messages, models.Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: nowFn().UnixMilli(),
	})
	return len(c.messages) - 1
}
