package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"foliogen/internal/types"
)

func longOverview() string {
	return strings.Repeat("A detailed account of the research, iterations and final direction. ", 3)
}

func imageSlots(n int) []types.ProjectImage {
	out := make([]types.ProjectImage, n)
	for i := range out {
		out[i] = types.ProjectImage{URL: "https://cdn.example/x.png", Index: i + 1}
	}
	return out
}

func TestScoreContentStrategies(t *testing.T) {
	cases := []struct {
		name         string
		user         *types.UserData
		wantStrategy string
		wantType     string
	}{
		{
			name: "rich writing and imagery",
			user: &types.UserData{Projects: []types.Project{
				{Title: "One", Overview: longOverview(), FinalImages: imageSlots(3)},
				{Title: "Two", Overview: longOverview(), FinalImages: imageSlots(3)},
			}},
			wantStrategy: "showcase-heavy",
			wantType:     "rich",
		},
		{
			name: "imagery only",
			user: &types.UserData{Projects: []types.Project{
				{Title: "One", Overview: "short", FinalImages: imageSlots(4)},
				{Title: "Two", Overview: "short", FinalImages: imageSlots(4)},
			}},
			wantStrategy: "visual-first",
			wantType:     "imagery",
		},
		{
			name: "writing only",
			user: &types.UserData{Projects: []types.Project{
				{Title: "One", Overview: longOverview()},
				{Title: "Two", Overview: longOverview()},
			}},
			wantStrategy: "story-driven",
			wantType:     "narrative",
		},
		{
			name:         "nearly empty",
			user:         &types.UserData{Projects: []types.Project{{Title: "One", Overview: "x"}}},
			wantStrategy: "design-focused",
			wantType:     "sparse",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, strategy := ScoreContent(tc.user)
			assert.Equal(t, tc.wantStrategy, strategy.Strategy)
			assert.Equal(t, tc.wantType, strategy.Type)
			assert.GreaterOrEqual(t, strategy.Confidence, 0.0)
			assert.LessOrEqual(t, strategy.Confidence, 1.0)
		})
	}
}

func TestScoreContentNoProjects(t *testing.T) {
	sig, strategy := ScoreContent(&types.UserData{})
	assert.Zero(t, sig.Description)
	assert.Zero(t, sig.Imagery)
	assert.Equal(t, "design-focused", strategy.Strategy)
}

func TestOneSubstantialWriteupKeepsNarrative(t *testing.T) {
	user := &types.UserData{Projects: []types.Project{
		{Title: "Deep dive", Overview: longOverview()},
		{Title: "A", Overview: "x"},
		{Title: "B", Overview: "x"},
	}}
	_, strategy := ScoreContent(user)
	assert.Equal(t, "story-driven", strategy.Strategy)
}
