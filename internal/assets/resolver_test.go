package assets

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foliogen/internal/types"
)

func twoProjectCatalog() *Catalog {
	return BuildCatalog([]types.Project{
		{
			ID:    "a1",
			Title: "Poster Series",
			FinalImages: []types.ProjectImage{
				{URL: "https://cdn.example/a.png", Index: 1},
				{URL: "https://cdn.example/a2.png", Index: 2},
			},
			ProcessImages: []types.ProjectImage{{URL: "https://cdn.example/ap.png", Index: 1}},
		},
		{
			ID:          "b2",
			Title:       "Identity",
			FinalImages: []types.ProjectImage{{URL: "https://cdn.example/b.png", Index: 1}},
		},
	})
}

func TestResolveRewritesKnownTokens(t *testing.T) {
	r := NewResolver(twoProjectCatalog())
	doc := `<img src="project_1_final_1"><img src="project_1_final_2.jpg">` +
		`<img src="project_1_process_1"><img src="project_2_final_1">`

	out, rep := r.Resolve(doc)
	assert.Contains(t, out, `src="https://cdn.example/a.png"`)
	assert.Contains(t, out, `src="https://cdn.example/a2.png"`)
	assert.Contains(t, out, `src="https://cdn.example/ap.png"`)
	assert.Contains(t, out, `src="https://cdn.example/b.png"`)
	assert.NotContains(t, out, "project_")
	assert.Equal(t, 4, rep.Replacements)
	assert.Empty(t, rep.Unresolved)
	assert.Zero(t, rep.Fallbacks)
	assert.Zero(t, rep.Repairs)
}

func TestResolveIsIdempotent(t *testing.T) {
	r := NewResolver(twoProjectCatalog())
	doc := `<img src="project_1_final_1"> <img src="project_9_final_1"> text`

	once, rep1 := r.Resolve(doc)
	require.Positive(t, rep1.Replacements)
	require.Positive(t, rep1.Fallbacks)

	twice, rep2 := r.Resolve(once)
	assert.Equal(t, once, twice, "re-resolving resolved output must be a no-op")
	assert.Zero(t, rep2.Replacements)
	assert.Zero(t, rep2.Fallbacks)
	assert.Zero(t, rep2.Repairs)
}

func TestResolveProjectIDSpellings(t *testing.T) {
	r := NewResolver(twoProjectCatalog())
	out, rep := r.Resolve(`<img src="project_a1_final_1"><img src="project_b2_final_1.png">`)

	assert.Contains(t, out, "https://cdn.example/a.png")
	assert.Contains(t, out, "https://cdn.example/b.png")
	assert.Equal(t, 2, rep.Replacements)
	assert.NotContains(t, out, "project_")
}

func TestResolveGenericImageSpelling(t *testing.T) {
	r := NewResolver(twoProjectCatalog())
	out, _ := r.Resolve(`<img src="project_1_image_1">`)
	assert.Contains(t, out, "https://cdn.example/a.png")
	assert.NotContains(t, out, "project_1_image_1")
}

func TestResolveUnknownTokenFallsBack(t *testing.T) {
	r := NewResolver(twoProjectCatalog())
	out, rep := r.Resolve(`<img src="project_7_final_3.webp">`)

	assert.Contains(t, out, FallbackImage)
	assert.NotContains(t, out, "project_7_final_3")
	assert.Equal(t, 1, rep.Fallbacks)
	assert.Equal(t, []string{"project_7_final_3.webp"}, rep.Unresolved)
}

func TestResolveURLWhoseFilenameSpellsAToken(t *testing.T) {
	// Stored objects keep their upload names, so a resolved URL may itself
	// end in a token spelling. It must survive resolution untouched.
	url := "https://cdn.example/foliogen-assets/projects/a1/final/project_1_final_1.png"
	r := NewResolver(BuildCatalog([]types.Project{{
		ID:          "a1",
		FinalImages: []types.ProjectImage{{URL: url, Index: 1}},
	}}))

	out, rep := r.Resolve(`<img src="project_1_final_1">`)
	assert.Equal(t, `<img src="`+url+`">`, out)
	assert.Equal(t, 1, rep.Replacements)
	assert.Zero(t, rep.Fallbacks)
	assert.Empty(t, rep.Unresolved)

	again, rep2 := r.Resolve(out)
	assert.Equal(t, out, again)
	assert.Zero(t, rep2.Replacements)
	assert.Zero(t, rep2.Fallbacks)
	assert.Zero(t, rep2.Repairs)
}

func TestResolveFallbackNextToResolvedURL(t *testing.T) {
	// An unknown marker adjacent to an already-resolved URL is still
	// scrubbed; the URL itself is not.
	url := "https://cdn.example/projects/a1/final/project_1_final_1.png"
	r := NewResolver(BuildCatalog([]types.Project{{
		ID:          "a1",
		FinalImages: []types.ProjectImage{{URL: url, Index: 1}},
	}}))

	out, rep := r.Resolve(`<img src="` + url + `"><img src="project_9_final_1">`)
	assert.Contains(t, out, url)
	assert.Contains(t, out, FallbackImage)
	assert.Equal(t, 1, rep.Fallbacks)
	assert.Zero(t, rep.Replacements)
}

func TestResolveRepairsNestedURLs(t *testing.T) {
	r := NewResolver(twoProjectCatalog())
	corrupted := `<img src="https://cdn.example/a.pnghttps://cdn.example/b.png">`

	out, rep := r.Resolve(corrupted)
	assert.Equal(t, `<img src="https://cdn.example/a.png">`, out)
	assert.Equal(t, 1, rep.Repairs)
	assert.Empty(t, r.NestedURLs(out))
}

func TestResolveEmptyCatalog(t *testing.T) {
	r := NewResolver(BuildCatalog(nil))
	out, rep := r.Resolve(`<img src="project_1_final_1">`)
	assert.Contains(t, out, FallbackImage)
	assert.Equal(t, 1, rep.Fallbacks)
	assert.Zero(t, rep.Replacements)
}

func TestBuildCatalogCopiesCallerData(t *testing.T) {
	projects := []types.Project{{
		ID:          "a1",
		Tags:        []string{"print"},
		FinalImages: []types.ProjectImage{{URL: "u", Index: 1}},
	}}
	c := BuildCatalog(projects)
	projects[0].Tags[0] = "mutated"
	projects[0].FinalImages[0].URL = "mutated"

	require.Equal(t, 1, c.Len())
	assert.Equal(t, "print", c.entries[0].Tags[0])
	assert.Equal(t, "u", c.entries[0].FinalImages[0].URL)
}

func TestFallbackImageIsInert(t *testing.T) {
	// The substitute graphic must never itself contain a placeholder token.
	assert.False(t, strings.Contains(FallbackImage, "project_"))
	assert.Nil(t, placeholderPattern.FindStringIndex(FallbackImage))
}
