package llmclient

import (
	"context"
	"strings"

	genai "google.golang.org/genai"
)

// GeminiClient is a thin wrapper around the official genai client.
// It only focuses on the API call itself; retries, rate limiting and
// logging are applied via Middleware.
type GeminiClient struct {
	cli   *genai.Client
	model string
}

func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	// apiKey may be empty; the genai client then reads it from env.
	cfg := &genai.ClientConfig{Backend: genai.BackendGeminiAPI}
	if strings.TrimSpace(apiKey) != "" {
		cfg.APIKey = apiKey
	}
	cli, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &GeminiClient{cli: cli, model: model}, nil
}

func (g *GeminiClient) Name() string { return "Gemini:" + g.model }
func (g *GeminiClient) Close() error { return nil }

// GenerateContent sends the ordered blocks as one content turn and returns
// the concatenated text of the first candidate.
func (g *GeminiClient) GenerateContent(ctx context.Context, req Request) (string, error) {
	parts := make([]*genai.Part, 0, len(req.Blocks))
	for _, b := range req.Blocks {
		if len(b.ImageData) > 0 {
			parts = append(parts, &genai.Part{InlineData: &genai.Blob{
				MIMEType: b.MIMEType,
				Data:     b.ImageData,
			}})
			continue
		}
		if b.Text != "" {
			parts = append(parts, &genai.Part{Text: b.Text})
		}
	}
	if len(parts) == 0 {
		return "", &UpstreamError{Class: ClassMalformed, Err: ErrEmptyResponse}
	}

	cfg := &genai.GenerateContentConfig{}
	if req.MaxOutputTokens > 0 {
		cfg.MaxOutputTokens = req.MaxOutputTokens
	}
	if req.Temperature != nil {
		cfg.Temperature = req.Temperature
	}
	if req.JSONResponse {
		cfg.ResponseMIMEType = "application/json"
	}

	resp, err := g.cli.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Parts: parts}}, cfg)
	if err != nil {
		return "", classify(err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", &UpstreamError{Class: ClassTransient, Err: ErrEmptyResponse}
	}
	var sb strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if p != nil {
			sb.WriteString(p.Text)
		}
	}
	out := sb.String()
	if strings.TrimSpace(out) == "" {
		return "", &UpstreamError{Class: ClassTransient, Err: ErrEmptyResponse}
	}
	return out, nil
}

// classify maps a raw transport error to an UpstreamError class.
// The genai SDK does not expose a stable error type across backends, so the
// classification keys on well-known status markers in the message.
func classify(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "resource_exhausted"):
		return &UpstreamError{Class: ClassQuota, Err: err}
	case strings.Contains(msg, "401") || strings.Contains(msg, "403") || strings.Contains(msg, "api key") || strings.Contains(msg, "permission"):
		return &UpstreamError{Class: ClassAuth, Err: err}
	case strings.Contains(msg, "400") || strings.Contains(msg, "invalid_argument"):
		return &UpstreamError{Class: ClassMalformed, Err: err}
	default:
		return &UpstreamError{Class: ClassTransient, Err: err}
	}
}
