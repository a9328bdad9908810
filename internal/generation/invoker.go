package generation

import (
	"context"
	"strings"
	"time"

	"foliogen/internal/analysis"
	"foliogen/internal/llmclient"
	"foliogen/internal/types"
)

// Invoker assembles one generation request and issues exactly one upstream
// call. Retry and continuation policy live in the Controller, not here.
type Invoker struct {
	LLM             llmclient.Client
	MaxOutputTokens int32
	Temperature     float32
	Timeout         time.Duration
}

func (inv *Invoker) timeoutCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	t := inv.Timeout
	if t <= 0 {
		t = 2 * time.Minute
	}
	return context.WithTimeout(ctx, t)
}

func (inv *Invoker) request(prompt string, user *types.UserData) llmclient.Request {
	blocks := []llmclient.Block{{Text: prompt}}
	for _, ref := range user.ReferenceImages {
		mime := ref.MIMEType
		if mime == "" {
			mime = "image/png"
		}
		blocks = append(blocks, llmclient.Block{ImageData: ref.Data, MIMEType: mime})
	}
	temp := inv.Temperature
	return llmclient.Request{
		Blocks:          blocks,
		MaxOutputTokens: inv.MaxOutputTokens,
		Temperature:     &temp,
	}
}

// Generate issues the initial generation call and returns the cleaned text.
func (inv *Invoker) Generate(ctx context.Context, brief *analysis.DesignBrief, user *types.UserData) (string, error) {
	ctx, cancel := inv.timeoutCtx(ctx)
	defer cancel()
	ctx = llmclient.WithStage(ctx, "generate")
	raw, err := inv.LLM.GenerateContent(ctx, inv.request(BuildPrompt(brief, user), user))
	if err != nil {
		return "", wrapTimeout(ctx, err)
	}
	return StripArtifacts(raw), nil
}

// Continue issues a continuation-framed call carrying the partial verbatim.
func (inv *Invoker) Continue(ctx context.Context, brief *analysis.DesignBrief, user *types.UserData, partial string) (string, error) {
	ctx, cancel := inv.timeoutCtx(ctx)
	defer cancel()
	ctx = llmclient.WithStage(ctx, "continue")
	raw, err := inv.LLM.GenerateContent(ctx, inv.request(BuildContinuationPrompt(brief, user, partial), user))
	if err != nil {
		return "", wrapTimeout(ctx, err)
	}
	return StripArtifacts(raw), nil
}

// wrapTimeout normalizes a deadline expiry into a transient upstream error.
func wrapTimeout(ctx context.Context, err error) error {
	if ctx.Err() == context.DeadlineExceeded {
		return &llmclient.UpstreamError{Class: llmclient.ClassTransient, Err: ctx.Err()}
	}
	return err
}

// StripArtifacts removes known wrapper artifacts the model sometimes adds
// around the document: markdown code fences and a stray leading language tag.
func StripArtifacts(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```html")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSpace(s)
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "```"))
	}
	if strings.HasPrefix(strings.ToLower(s), "html\n") {
		s = s[len("html\n"):]
	}
	return s
}
