package analysis

import (
	"foliogen/internal/types"
)

// ContentSignals are the sub-scores behind the content strategy choice.
// Kept separate because the strategy rules act on the parts, not the total:
// a description-only profile must not collapse to the same strategy as an
// image-only profile.
type ContentSignals struct {
	Description float64 // depth of project writing
	Imagery     float64 // count and spread of images across projects
	Personal    float64 // completeness of bio, skills, social links
}

const longDescriptionChars = 150

// ScoreContent derives the richness signals and the named strategy.
func ScoreContent(user *types.UserData) (ContentSignals, ContentStrategy) {
	sig := ContentSignals{
		Description: descriptionScore(user.Projects),
		Imagery:     imageryScore(user.Projects),
		Personal:    personalScore(user.Personal),
	}

	// Fixed rules on the sub-scores, not the total alone.
	var strategy, typ string
	switch {
	case sig.Imagery >= 0.6 && sig.Description >= 0.6:
		strategy, typ = "showcase-heavy", "rich"
	case sig.Imagery >= 0.6:
		strategy, typ = "visual-first", "imagery"
	case sig.Description >= 0.6:
		strategy, typ = "story-driven", "narrative"
	default:
		strategy, typ = "design-focused", "sparse"
	}

	conf := clamp01(0.35*sig.Description + 0.4*sig.Imagery + 0.25*sig.Personal)
	return sig, ContentStrategy{Type: typ, Strategy: strategy, Confidence: conf}
}

func descriptionScore(projects []types.Project) float64 {
	if len(projects) == 0 {
		return 0
	}
	long := 0
	total := 0
	for _, p := range projects {
		total += len(p.Overview)
		if len(p.Overview) > longDescriptionChars {
			long++
		}
	}
	score := float64(long) / float64(len(projects))
	if long > 0 && score < 0.6 {
		// At least one substantial write-up keeps narrative on the table.
		score = 0.6
	}
	if total == 0 {
		return 0
	}
	return clamp01(score)
}

func imageryScore(projects []types.Project) float64 {
	if len(projects) == 0 {
		return 0
	}
	total := 0
	withImages := 0
	for _, p := range projects {
		n := len(p.FinalImages) + len(p.ProcessImages)
		total += n
		if n > 0 {
			withImages++
		}
	}
	if total == 0 {
		return 0
	}
	count := clamp01(float64(total) / 6.0)
	spread := float64(withImages) / float64(len(projects))
	return clamp01(0.6*count + 0.4*spread)
}

func personalScore(p types.PersonalInfo) float64 {
	var score float64
	if len(p.Bio) > 80 {
		score += 0.4
	} else if len(p.Bio) > 0 {
		score += 0.2
	}
	if len(p.Skills) >= 5 {
		score += 0.3
	} else if len(p.Skills) > 0 {
		score += 0.15
	}
	if len(p.SocialLinks) >= 2 {
		score += 0.3
	} else if len(p.SocialLinks) == 1 {
		score += 0.15
	}
	return clamp01(score)
}
