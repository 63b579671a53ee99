// Package generator adapts an external text-generation API into an ordered
// list of short task titles for a topic.
package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/taskforge/backend/domain"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel   = "gemini-1.5-flash"
	defaultTimeout = 15 * time.Second
)

const promptTemplate = `Generate a list of exactly 5 concise, actionable tasks to learn about %q.
Format the output strictly as:
1. First task
2. Second task
3. Third task
4. Fourth task
5. Fifth task
Do not include any introduction or explanation.`

// Client calls a Gemini-compatible generateContent endpoint.
type Client struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
	logger  *zap.Logger
}

type Option func(*Client)

// WithBaseURL overrides the API base URL, mainly for tests.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(url, "/") }
}

func WithModel(model string) Option {
	return func(c *Client) { c.model = model }
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) { c.client.Timeout = timeout }
}

func NewClient(apiKey string, logger *zap.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		model:   defaultModel,
		client:  &http.Client{Timeout: defaultTimeout},
		logger:  logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Generate asks the model for task titles on the topic and parses the reply.
// Failures of the external call surface as upstream errors; a reply that
// parses to nothing is a valid empty result.
func (c *Client) Generate(ctx context.Context, topic string) ([]string, error) {
	payload, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: fmt.Sprintf(promptTemplate, topic)}}}},
	})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeUpstream, "generation request failed", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("generation service unreachable", zap.Error(err))
		return nil, domain.WrapError(domain.ErrCodeUpstream, "generation service unreachable", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeUpstream, "generation response unreadable", err)
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Error("generation service error",
			zap.Int("status", resp.StatusCode),
			zap.String("model", c.model))
		return nil, domain.NewError(domain.ErrCodeUpstream, "generation service error")
	}

	var parsed generateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, domain.WrapError(domain.ErrCodeUpstream, "generation response malformed", err)
	}

	var text strings.Builder
	for _, candidate := range parsed.Candidates {
		for _, p := range candidate.Content.Parts {
			text.WriteString(p.Text)
			text.WriteString("\n")
		}
		break // only the first candidate is used
	}

	return ParseTitles(text.String()), nil
}
