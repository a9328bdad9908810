package analysis

import (
	"sort"
	"strings"

	"foliogen/internal/config"
	"foliogen/internal/types"
)

// industryProfile is one entry of the fixed detection set.
type industryProfile struct {
	name     string
	keywords []string
	sections []string
}

var industryProfiles = []industryProfile{
	{
		name:     "graphic-design",
		keywords: []string{"graphic", "brand", "branding", "logo", "identity", "print", "poster", "typography"},
		sections: []string{"hero", "selected-work", "process", "about", "contact"},
	},
	{
		name:     "photography",
		keywords: []string{"photo", "photography", "photographer", "portrait", "editorial", "lens", "studio"},
		sections: []string{"hero", "galleries", "series", "about", "contact"},
	},
	{
		name:     "ux-ui",
		keywords: []string{"ux", "ui", "product", "interface", "interaction", "wireframe", "figma", "usability", "prototype"},
		sections: []string{"hero", "case-studies", "process", "skills", "about", "contact"},
	},
	{
		name:     "illustration",
		keywords: []string{"illustration", "illustrator", "drawing", "character", "comic", "sketch", "ink"},
		sections: []string{"hero", "portfolio", "commissions", "about", "contact"},
	},
	{
		name:     "web-development",
		keywords: []string{"developer", "engineer", "frontend", "backend", "fullstack", "javascript", "react", "code"},
		sections: []string{"hero", "projects", "stack", "open-source", "about", "contact"},
	},
	{
		name:     "architecture",
		keywords: []string{"architect", "architecture", "interior", "spatial", "urban", "render"},
		sections: []string{"hero", "projects", "approach", "about", "contact"},
	},
	{
		name:     "motion",
		keywords: []string{"motion", "animation", "3d", "vfx", "video", "after effects", "cinema"},
		sections: []string{"hero", "reels", "selected-work", "about", "contact"},
	},
}

// Keyword weights per field, per the detection contract.
const (
	weightTitle   = 3
	weightBio     = 2
	weightSkills  = 2
	weightProject = 1
)

// DetectIndustry scores every profile by weighted keyword occurrence and
// returns the best match with its recommended sections.
func DetectIndustry(user *types.UserData, cfg config.FusionConfig) Industry {
	title := strings.ToLower(user.Personal.Title)
	bio := strings.ToLower(user.Personal.Bio)
	skills := strings.ToLower(strings.Join(user.Personal.Skills, " "))
	var sb strings.Builder
	for _, p := range user.Projects {
		sb.WriteString(strings.ToLower(p.Title))
		sb.WriteByte(' ')
		sb.WriteString(strings.ToLower(p.Overview))
		sb.WriteByte(' ')
		sb.WriteString(strings.ToLower(strings.Join(p.Tags, " ")))
		sb.WriteByte(' ')
	}
	projectText := sb.String()

	type scored struct {
		profile industryProfile
		score   int
	}
	results := make([]scored, 0, len(industryProfiles))
	totalHits := 0
	for _, prof := range industryProfiles {
		s := 0
		for _, kw := range prof.keywords {
			s += weightTitle * strings.Count(title, kw)
			s += weightBio * strings.Count(bio, kw)
			s += weightSkills * strings.Count(skills, kw)
			s += weightProject * strings.Count(projectText, kw)
		}
		totalHits += s
		results = append(results, scored{prof, s})
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].score > results[j].score })

	best := results[0]
	if best.score == 0 || totalHits == 0 {
		return Industry{
			Detected:            "creative-generalist",
			Confidence:          0.2,
			RecommendedSections: []string{"hero", "work", "about", "contact"},
		}
	}

	conf := clamp01(float64(best.score) / float64(totalHits))
	if conf > cfg.IndustryBoostThreshold {
		conf += cfg.IndustryBoost
		if conf > 0.95 {
			conf = 0.95
		}
	}
	return Industry{
		Detected:            best.profile.name,
		Confidence:          conf,
		RecommendedSections: append([]string(nil), best.profile.sections...),
	}
}
