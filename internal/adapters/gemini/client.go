package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"travel_planner/internal/adapters/remote"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel   = "gemini-2.0-flash"
)

var (
	ErrMissingKey    = errors.New("gemini: GOOGLE_API_KEY is required")
	ErrEmptyResponse = errors.New("gemini: response has no text")
)

type Client struct {
	rc    *remote.Client
	base  string
	key   string
	model string
}

func New(base, key, model string, rc *remote.Client) (*Client, error) {
	if key == "" {
		return nil, ErrMissingKey
	}
	if base == "" {
		base = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	return &Client{rc: rc, base: strings.TrimRight(base, "/"), key: key, model: model}, nil
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback,omitempty"`
}

// Generate sends a single-turn prompt and returns the first candidate's text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	var out generateResponse
	err := c.rc.Do(ctx, remote.Request{
		Endpoint: "generateContent",
		Method:   http.MethodPost,
		URL:      fmt.Sprintf("%s/models/%s:generateContent", c.base, c.model),
		Header:   http.Header{"X-Goog-Api-Key": {c.key}},
		Body:     generateRequest{Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}}},
	}, &out)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	if out.PromptFeedback != nil && out.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("gemini generate: prompt blocked (%s)", out.PromptFeedback.BlockReason)
	}
	if len(out.Candidates) == 0 {
		return "", ErrEmptyResponse
	}
	var b strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	if b.Len() == 0 {
		return "", ErrEmptyResponse
	}
	return b.String(), nil
}
