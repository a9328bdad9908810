package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"foliogen/internal/llmclient"
	"foliogen/internal/types"
)

// VisionAnalysis is the structured read of reference images returned by the
// vision-capable model. Best-effort: callers degrade to the pixel heuristics
// when this is unavailable.
type VisionAnalysis struct {
	Category   string   `json:"category"`
	Mood       string   `json:"mood"`
	Palette    []string `json:"palette"`
	Typography string   `json:"typography"`
	Grid       string   `json:"grid"`
	Whitespace string   `json:"whitespace"`
	Confidence float64  `json:"confidence"`
}

// VisionAnalyzer asks the vision model to describe the aesthetic of the
// caller's reference images as JSON.
type VisionAnalyzer struct {
	LLM     llmclient.Client
	Timeout time.Duration
}

const visionPrompt = `You are an art director. Study the attached reference images and describe
the shared aesthetic. Respond with JSON only, using exactly these fields:
{
  "category": "one of: minimal, dark, bold, vintage, elegant, playful, modern, eclectic",
  "mood": "two or three words",
  "palette": ["#rrggbb", "... up to 6 dominant colors"],
  "typography": "one of: serif, sans-serif, display, mono",
  "grid": "one of: single-column, asymmetric, masonry, modular",
  "whitespace": "one of: tight, comfortable, generous",
  "confidence": 0.0
}
Set confidence to how certain you are, between 0 and 1.`

// Analyze sends the reference images to the vision model. Errors and
// timeouts are returned to the caller, which treats them as a degraded
// signal rather than a failure.
func (v *VisionAnalyzer) Analyze(ctx context.Context, images []types.ReferenceImage) (*VisionAnalysis, error) {
	if v == nil || v.LLM == nil {
		return nil, fmt.Errorf("vision: no client")
	}
	if len(images) == 0 {
		return nil, fmt.Errorf("vision: no images")
	}
	timeout := v.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	ctx = llmclient.WithStage(ctx, "vision")

	blocks := []llmclient.Block{{Text: visionPrompt}}
	for _, img := range images {
		mime := img.MIMEType
		if mime == "" {
			mime = "image/png"
		}
		blocks = append(blocks, llmclient.Block{ImageData: img.Data, MIMEType: mime})
	}

	raw, err := v.LLM.GenerateContent(ctx, llmclient.Request{
		Blocks:       blocks,
		JSONResponse: true,
	})
	if err != nil {
		return nil, err
	}

	var out VisionAnalysis
	if err := json.Unmarshal([]byte(stripFences(raw)), &out); err != nil {
		return nil, fmt.Errorf("vision: unparseable response: %w", err)
	}
	out.Confidence = clamp01(out.Confidence)
	if len(out.Palette) > 6 {
		out.Palette = out.Palette[:6]
	}
	return &out, nil
}

// stripFences removes a wrapping markdown code fence if the model added one
// despite the JSON response type.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
