package genai

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const ssePrefix = "data: "

// GeminiClient talks to the Generative Language REST API, consuming the
// streaming endpoint as server-sent events.
type GeminiClient struct {
	endpoint string
	apiKey   string
	model    string
	httpc    *http.Client
}

// NewGeminiClient builds a client for the given endpoint, API key, and model.
func NewGeminiClient(endpoint, apiKey, model string) *GeminiClient {
	return &GeminiClient{
		endpoint: strings.TrimRight(endpoint, "/"),
		apiKey:   apiKey,
		model:    model,
		httpc:    &http.Client{Timeout: 5 * time.Minute},
	}
}

// request/response DTOs for the REST surface.

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type generateRequest struct {
	SystemInstruction *content         `json:"systemInstruction,omitempty"`
	Contents          []content        `json:"contents"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type streamChunk struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Stream issues the generation call and forwards each received text fragment
// to onFragment. Transport and HTTP-status failures are mapped onto the
// package sentinels so callers can match with errors.Is.
func (c *GeminiClient) Stream(ctx context.Context, req StreamRequest, onFragment func(text string)) error {
	body := generateRequest{
		Contents:         make([]content, 0, len(req.History)+1),
		GenerationConfig: generationConfig{Temperature: req.Temperature, MaxOutputTokens: req.MaxOutputTokens},
	}
	if req.SystemInstruction != "" {
		body.SystemInstruction = &content{Parts: []part{{Text: req.SystemInstruction}}}
	}
	for _, turn := range req.History {
		body.Contents = append(body.Contents, content{Role: turn.Role, Parts: []part{{Text: turn.Text}}})
	}
	body.Contents = append(body.Contents, content{Role: "user", Parts: []part{{Text: req.Prompt}}})

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:streamGenerateContent?alt=sse", c.endpoint, c.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.mapStatus(resp.StatusCode)
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, ssePrefix) {
			continue
		}
		data := strings.TrimPrefix(line, ssePrefix)
		if data == "" || data == "[DONE]" {
			continue
		}

		var chunk streamChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			return fmt.Errorf("failed to decode stream chunk: %w", err)
		}
		for _, cand := range chunk.Candidates {
			for _, p := range cand.Content.Parts {
				if p.Text != "" {
					onFragment(p.Text)
				}
			}
		}

		if err := ctx.Err(); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return nil
}

// Close releases client resources. The underlying http.Client keeps no
// per-call state, so this only drops idle connections.
func (c *GeminiClient) Close() error {
	c.httpc.CloseIdleConnections()
	return nil
}

func (c *GeminiClient) mapStatus(status int) error {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return ErrUnauthorized
	case status == http.StatusTooManyRequests:
		return ErrQuotaExceeded
	default:
		return fmt.Errorf("%w: http status %d", ErrUnavailable, status)
	}
}
