package summarizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
)

const defaultBaseURL = "https://api.cohere.ai"

// CohereClient talks to the Cohere summarize endpoint. The model is an
// opaque collaborator: text in, summary out, error otherwise.
type CohereClient struct {
	http   *resty.Client
	apiKey string
}

func New(apiKey string) *CohereClient {
	return &CohereClient{
		http:   resty.New().SetBaseURL(defaultBaseURL),
		apiKey: apiKey,
	}
}

func (c *CohereClient) Summarize(ctx context.Context, text string) (string, error) {
	var out struct {
		Summary string `json:"summary"`
		Message string `json:"message"`
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(c.apiKey).
		SetBody(map[string]string{
			"text":   text,
			"length": "long",
			"format": "paragraph",
		}).
		SetResult(&out).
		SetError(&out).
		Post("/v1/summarize")
	if err != nil {
		return "", fmt.Errorf("cohere summarize: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("cohere summarize: %s: %s", resp.Status(), out.Message)
	}

	return strings.TrimSpace(out.Summary), nil
}
