// Package suggest produces clue suggestions for filled entries with
// Gemini on Vertex AI.
package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const (
	defaultRegion = "us-central1"
	defaultModel  = "gemini-2.5-flash"

	maxSuggestions = 8
)

// Client wraps the Google GenAI client for VertexAI.
type Client struct {
	client    *genai.Client
	modelName string
}

// NewClient creates a client using Application Default Credentials.
// Set GOOGLE_APPLICATION_CREDENTIALS to the service account key file path.
func NewClient(ctx context.Context, projectID, region string) (*Client, error) {
	if region == "" {
		region = defaultRegion
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  projectID,
		Location: region,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &Client{
		client:    client,
		modelName: defaultModel,
	}, nil
}

// Close releases resources held by the client.
func (c *Client) Close() error {
	return nil
}

// Clues asks the model for clue candidates for a completed answer. The
// answer must be non-empty; multi-word answers are passed as written.
func (c *Client) Clues(ctx context.Context, answer string, count int) ([]string, error) {
	prompt, err := cluePrompt(answer, count)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.modelName,
		[]*genai.Content{{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		}},
		&genai.GenerateContentConfig{
			Temperature:      genai.Ptr(float32(0.8)),
			ResponseMIMEType: "application/json",
		},
	)
	if err != nil {
		return nil, fmt.Errorf("gemini generate: %w", err)
	}

	return parseClues(resp.Text())
}

// cluePrompt builds the suggestion prompt for an answer.
func cluePrompt(answer string, count int) (string, error) {
	answer = strings.ToUpper(strings.TrimSpace(answer))
	if answer == "" {
		return "", fmt.Errorf("empty answer")
	}
	if count < 1 || count > maxSuggestions {
		count = maxSuggestions
	}
	return fmt.Sprintf(`Write %d crossword clues for the answer %q.

Rules:
- Vary the difficulty from straightforward to tricky.
- Never include the answer, or any word sharing its root, in a clue.
- Keep each clue under 12 words.
- Respond ONLY with a JSON array of clue strings, no commentary or markdown.`,
		count, answer), nil
}

// parseClues decodes the model's JSON array response, dropping blank
// entries.
func parseClues(text string) ([]string, error) {
	if text == "" {
		return nil, fmt.Errorf("empty gemini response")
	}

	var raw []string
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("parse clues JSON: %w\nraw response: %s", err, text)
	}

	clues := make([]string, 0, len(raw))
	for _, c := range raw {
		c = strings.TrimSpace(c)
		if c != "" {
			clues = append(clues, c)
		}
	}
	if len(clues) == 0 {
		return nil, fmt.Errorf("no usable clues in response")
	}
	return clues, nil
}
