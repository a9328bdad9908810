package analysis

import (
	"context"
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foliogen/internal/config"
	"foliogen/internal/llmclient"
	"foliogen/internal/types"
)

func richUser() *types.UserData {
	overview := strings.Repeat("A long and careful write-up of the project, its constraints and outcome. ", 3)
	return &types.UserData{
		Personal: types.PersonalInfo{
			Name:        "Ava Chen",
			Title:       "Product Designer",
			Bio:         strings.Repeat("I design interfaces and prototype interactions for small studios. ", 2),
			Skills:      []string{"figma", "prototype", "wireframe", "usability", "interaction"},
			SocialLinks: []string{"https://example.com/ava", "https://example.com/ava2"},
		},
		Projects: []types.Project{
			{ID: "p1", Title: "Banking App", Overview: overview, FinalImages: imageSlots(3)},
			{ID: "p2", Title: "Ticketing UI", Overview: overview, FinalImages: imageSlots(3)},
		},
	}
}

func TestFuseNilUserFallsBack(t *testing.T) {
	engine := NewEngine(nil, nil, config.DefaultFusion())
	brief := engine.Fuse(context.Background(), nil)

	require.NotNil(t, brief)
	assert.Equal(t, StatusFallback, brief.SystemStatus)
	assert.InDelta(t, 0.35, brief.OverallConfidence, 1e-9)
	assert.NotEmpty(t, brief.ColorPalette)
}

func TestFuseAlwaysProducesUsableBrief(t *testing.T) {
	engine := NewEngine(nil, nil, config.DefaultFusion())
	brief := engine.Fuse(context.Background(), &types.UserData{})

	require.NotNil(t, brief)
	assert.NotEmpty(t, brief.ColorPalette)
	assert.LessOrEqual(t, len(brief.ColorPalette), 8)
	assert.GreaterOrEqual(t, brief.OverallConfidence, 0.0)
	assert.LessOrEqual(t, brief.OverallConfidence, 1.0)
	assert.Equal(t, StatusFor(brief.OverallConfidence, engine.Cfg), brief.SystemStatus)
}

func TestFuseDesignInputBoost(t *testing.T) {
	cfg := config.DefaultFusion()
	engine := NewEngine(nil, nil, cfg)

	plain := engine.Fuse(context.Background(), richUser())
	require.Greater(t, plain.OverallConfidence, cfg.SmartCutoff,
		"test fixture must clear the boost threshold on its own")

	boosted := richUser()
	boosted.Options.DesignRequest = "dark, editorial, lots of whitespace"
	withBoost := engine.Fuse(context.Background(), boosted)

	assert.Greater(t, withBoost.OverallConfidence, plain.OverallConfidence)
	assert.LessOrEqual(t, withBoost.OverallConfidence, 0.95)
}

func TestFuseVisionPrimaryWhenConfident(t *testing.T) {
	visionJSON := `{"category":"elegant","mood":"quiet refined","palette":["#102030","#fefefe"],` +
		`"typography":"serif","grid":"single-column","whitespace":"generous","confidence":0.9}`
	fake := llmclient.NewFakeClient(llmclient.FakeTurn{Text: visionJSON})
	engine := NewEngine(nil, &VisionAnalyzer{LLM: fake}, config.DefaultFusion())

	user := richUser()
	user.ReferenceImages = []types.ReferenceImage{{
		Filename: "ref.png",
		MIMEType: "image/png",
		Data:     pngBytes(t, color.RGBA{R: 16, G: 16, B: 16, A: 255}, 16, 16),
	}}
	brief := engine.Fuse(context.Background(), user)

	assert.Equal(t, "elegant", brief.VisualDNA.Category)
	assert.Equal(t, "quiet refined", brief.VisualDNA.Mood)
	require.NotEmpty(t, brief.ColorPalette)
	assert.Equal(t, "#102030", brief.ColorPalette[0], "vision palette leads")
	assert.Contains(t, brief.ColorPalette, "#181818", "pixel palette spliced in")
	assert.LessOrEqual(t, len(brief.ColorPalette), 6)
	assert.Equal(t, 1, fake.Calls)
}

func TestFuseDegradesToPixelWhenVisionFails(t *testing.T) {
	fake := llmclient.NewFakeClient(llmclient.FakeTurn{Text: "not json at all"})
	engine := NewEngine(nil, &VisionAnalyzer{LLM: fake}, config.DefaultFusion())

	user := &types.UserData{ReferenceImages: []types.ReferenceImage{{
		Filename: "minimal-board.png",
		MIMEType: "image/png",
		Data:     pngBytes(t, color.RGBA{R: 240, G: 240, B: 240, A: 255}, 16, 16),
	}}}
	brief := engine.Fuse(context.Background(), user)

	assert.Equal(t, "minimal", brief.VisualDNA.Category)
	assert.NotEmpty(t, brief.ColorPalette)
}

func TestMergePalette(t *testing.T) {
	out := mergePalette([]string{"#111111", "#222222"}, []string{"#222222", "#333333", "#444444"}, 4)
	assert.Equal(t, []string{"#111111", "#222222", "#333333", "#444444"}, out)

	capped := mergePalette([]string{"#111111"}, []string{"#222222", "#333333"}, 2)
	assert.Equal(t, []string{"#111111", "#222222"}, capped)
}

func TestTypographyAndLayoutMappings(t *testing.T) {
	assert.Equal(t, "serif", typographyFor("elegant").Category)
	assert.Equal(t, "display", typographyFor("bold").Category)
	assert.Equal(t, "sans-serif", typographyFor("unknown").Category)

	assert.Equal(t, "modular", layoutFor("grid", "").Grid)
	assert.Equal(t, "masonry", layoutFor("", "visual-first").Grid)
	assert.Equal(t, "single-column", layoutFor("", "story-driven").Grid)
	assert.Equal(t, "asymmetric", layoutFor("", "design-focused").Grid)
}
