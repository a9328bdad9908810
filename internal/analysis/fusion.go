package analysis

import (
	"context"
	"log"

	"foliogen/internal/config"
	"foliogen/internal/types"
)

// Engine combines the pixel heuristics, the optional vision call, the
// content-richness scorer and the industry detector into one DesignBrief.
//
// Fuse never fails: when every sub-analysis degrades, the caller still gets
// a predefined low-confidence fallback brief.
type Engine struct {
	Pixel  *PixelAnalyzer
	Vision *VisionAnalyzer // nil disables the external vision call
	Cfg    config.FusionConfig
}

func NewEngine(px *PixelAnalyzer, vision *VisionAnalyzer, cfg config.FusionConfig) *Engine {
	if px == nil {
		px = NewPixelAnalyzer()
	}
	return &Engine{Pixel: px, Vision: vision, Cfg: cfg}
}

const maxPaletteColors = 8

// Fuse builds the brief for one request.
func (e *Engine) Fuse(ctx context.Context, user *types.UserData) *DesignBrief {
	if user == nil {
		return e.fallbackBrief()
	}

	visual, palette, visualConf := e.visualSignal(ctx, user)
	_, strategy := ScoreContent(user)
	industry := DetectIndustry(user, e.Cfg)

	overall := (visualConf + strategy.Confidence + industry.Confidence) / 3
	if user.HasDesignInput() && overall > e.Cfg.SmartCutoff {
		overall += e.Cfg.DesignInputBoost
		if overall > 0.95 {
			overall = 0.95
		}
	}
	overall = clamp01(overall)

	brief := &DesignBrief{
		VisualDNA:         visual,
		ColorPalette:      palette,
		Typography:        typographyFor(visual.Category),
		Layout:            layoutFor(user.Options.LayoutPreset, strategy.Strategy),
		ContentStrategy:   strategy,
		Industry:          industry,
		OverallConfidence: overall,
		SystemStatus:      StatusFor(overall, e.Cfg),
	}
	if len(brief.ColorPalette) == 0 {
		brief.ColorPalette = defaultPalette()
	}
	if len(brief.ColorPalette) > maxPaletteColors {
		brief.ColorPalette = brief.ColorPalette[:maxPaletteColors]
	}
	return brief
}

// visualSignal resolves the aesthetic read. The pixel analyzer always runs
// when images are present; the vision call is primary only when confident.
func (e *Engine) visualSignal(ctx context.Context, user *types.UserData) (VisualDNA, []string, float64) {
	if len(user.ReferenceImages) == 0 {
		return VisualDNA{Category: "modern", Mood: "clean confident"}, nil, 0.4
	}

	var px *PixelAnalysis
	for _, ref := range user.ReferenceImages {
		p, err := e.Pixel.Analyze(ref)
		if err != nil {
			log.Printf("fusion: pixel analysis degraded (%s): %v", ref.Filename, err)
			continue
		}
		if px == nil {
			px = p
		} else {
			px.Palette = mergePalette(px.Palette, p.Palette, maxPaletteColors)
		}
	}

	var vis *VisionAnalysis
	if e.Vision != nil {
		v, err := e.Vision.Analyze(ctx, user.ReferenceImages)
		if err != nil {
			log.Printf("fusion: vision analysis degraded: %v", err)
		} else {
			vis = v
		}
	}

	if vis != nil && vis.Confidence > e.Cfg.VisionPrimaryThreshold {
		palette := vis.Palette
		if px != nil {
			extra := px.Palette
			if len(extra) > 4 {
				extra = extra[:4]
			}
			palette = mergePalette(palette, extra, 6)
		}
		return VisualDNA{Category: vis.Category, Mood: vis.Mood}, palette, vis.Confidence
	}

	if px != nil {
		return VisualDNA{
			Category: px.StyleGuess,
			Mood:     px.Temperature + " " + px.Brightness,
		}, px.Palette, px.Confidence
	}
	if vis != nil {
		return VisualDNA{Category: vis.Category, Mood: vis.Mood}, vis.Palette, vis.Confidence
	}
	return VisualDNA{Category: "modern", Mood: "clean confident"}, nil, 0.35
}

// fallbackBrief is the predefined result when fusion has nothing to work with.
func (e *Engine) fallbackBrief() *DesignBrief {
	return &DesignBrief{
		VisualDNA:    VisualDNA{Category: "modern", Mood: "clean confident"},
		ColorPalette: defaultPalette(),
		Typography:   typographyFor("modern"),
		Layout:       layoutFor("", "design-focused"),
		ContentStrategy: ContentStrategy{
			Type: "sparse", Strategy: "design-focused", Confidence: 0.3,
		},
		Industry: Industry{
			Detected: "creative-generalist", Confidence: 0.2,
			RecommendedSections: []string{"hero", "work", "about", "contact"},
		},
		OverallConfidence: 0.35,
		SystemStatus:      StatusFallback,
	}
}

func defaultPalette() []string {
	return []string{"#1a1a1a", "#fafafa", "#4a6cf7", "#e8e8e8"}
}

func mergePalette(base, extra []string, limit int) []string {
	seen := make(map[string]struct{}, len(base))
	out := make([]string, 0, limit)
	for _, c := range base {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
		if len(out) == limit {
			return out
		}
	}
	for _, c := range extra {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
		if len(out) == limit {
			break
		}
	}
	return out
}

func typographyFor(category string) Typography {
	switch category {
	case "minimal":
		return Typography{Category: "sans-serif", Weight: "light", Spacing: "airy"}
	case "dark", "bold":
		return Typography{Category: "display", Weight: "heavy", Spacing: "tight"}
	case "vintage":
		return Typography{Category: "serif", Weight: "regular", Spacing: "classic"}
	case "elegant":
		return Typography{Category: "serif", Weight: "light", Spacing: "generous"}
	case "playful":
		return Typography{Category: "display", Weight: "medium", Spacing: "loose"}
	default:
		return Typography{Category: "sans-serif", Weight: "regular", Spacing: "comfortable"}
	}
}

func layoutFor(preset, strategy string) Layout {
	switch preset {
	case "grid":
		return Layout{Grid: "modular", Whitespace: "comfortable", Flow: "sectioned"}
	case "single":
		return Layout{Grid: "single-column", Whitespace: "generous", Flow: "linear"}
	case "masonry":
		return Layout{Grid: "masonry", Whitespace: "tight", Flow: "continuous"}
	}
	switch strategy {
	case "visual-first", "showcase-heavy":
		return Layout{Grid: "masonry", Whitespace: "comfortable", Flow: "continuous"}
	case "story-driven":
		return Layout{Grid: "single-column", Whitespace: "generous", Flow: "linear"}
	default:
		return Layout{Grid: "asymmetric", Whitespace: "generous", Flow: "sectioned"}
	}
}
