// Package analysis fuses imperfect aesthetic, content and industry signals
// into a single confidence-weighted design brief.
package analysis

import "foliogen/internal/config"

// SystemStatus is the discrete tier assigned to a brief, monotonic in
// OverallConfidence against fixed cutoffs.
type SystemStatus string

const (
	StatusFallback SystemStatus = "FALLBACK"
	StatusBasic    SystemStatus = "BASIC"
	StatusSmart    SystemStatus = "SMART"
	StatusEnhanced SystemStatus = "ENHANCED"
)

type VisualDNA struct {
	Category string `json:"category"`
	Mood     string `json:"mood"`
}

type Typography struct {
	Category string `json:"category"`
	Weight   string `json:"weight"`
	Spacing  string `json:"spacing"`
}

type Layout struct {
	Grid       string `json:"grid"`
	Whitespace string `json:"whitespace"`
	Flow       string `json:"flow"`
}

type ContentStrategy struct {
	Type       string  `json:"type"`
	Strategy   string  `json:"strategy"`
	Confidence float64 `json:"confidence"`
}

type Industry struct {
	Detected            string   `json:"detected"`
	Confidence          float64  `json:"confidence"`
	RecommendedSections []string `json:"recommended_sections"`
}

// DesignBrief is the immutable result of fusion. Created once per request;
// never mutated after creation.
type DesignBrief struct {
	VisualDNA         VisualDNA       `json:"visual_dna"`
	ColorPalette      []string        `json:"color_palette"` // non-empty, at most 8
	Typography        Typography      `json:"typography"`
	Layout            Layout          `json:"layout"`
	ContentStrategy   ContentStrategy `json:"content_strategy"`
	Industry          Industry        `json:"industry"`
	OverallConfidence float64         `json:"overall_confidence"`
	SystemStatus      SystemStatus    `json:"system_status"`
}

// StatusFor maps a confidence to its tier. Pure and monotonic: a higher
// confidence never yields a lower tier.
func StatusFor(confidence float64, cfg config.FusionConfig) SystemStatus {
	switch {
	case confidence > cfg.EnhancedCutoff:
		return StatusEnhanced
	case confidence > cfg.SmartCutoff:
		return StatusSmart
	case confidence > cfg.BasicCutoff:
		return StatusBasic
	default:
		return StatusFallback
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
