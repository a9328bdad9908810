package generation

import (
	"fmt"
	"strings"

	"foliogen/internal/analysis"
	"foliogen/internal/types"
)

// BuildPrompt assembles the full generation instruction from the fused brief
// and the caller's data. The placeholder token contract (project_N_final_M
// and friends) is what the asset resolver rewrites afterwards.
func BuildPrompt(brief *analysis.DesignBrief, user *types.UserData) string {
	var b strings.Builder

	b.WriteString("[TASK]\n")
	b.WriteString("Produce one complete, self-contained portfolio website as a single HTML document.\n")
	b.WriteString("Inline all CSS in a <style> block. No external scripts. Respond with the HTML only.\n\n")

	b.WriteString("[DESIGN BRIEF]\n")
	fmt.Fprintf(&b, "aesthetic: %s (%s)\n", brief.VisualDNA.Category, brief.VisualDNA.Mood)
	fmt.Fprintf(&b, "palette: %s\n", strings.Join(brief.ColorPalette, ", "))
	fmt.Fprintf(&b, "typography: %s, %s weight, %s spacing\n",
		brief.Typography.Category, brief.Typography.Weight, brief.Typography.Spacing)
	fmt.Fprintf(&b, "layout: %s grid, %s whitespace, %s flow\n",
		brief.Layout.Grid, brief.Layout.Whitespace, brief.Layout.Flow)
	fmt.Fprintf(&b, "content strategy: %s\n", brief.ContentStrategy.Strategy)
	fmt.Fprintf(&b, "industry: %s\n", brief.Industry.Detected)
	fmt.Fprintf(&b, "sections, in order: %s\n\n", strings.Join(brief.Industry.RecommendedSections, ", "))

	b.WriteString("[PERSON]\n")
	fmt.Fprintf(&b, "name: %s\ntitle: %s\nbio: %s\n", user.Personal.Name, user.Personal.Title, user.Personal.Bio)
	if len(user.Personal.Skills) > 0 {
		fmt.Fprintf(&b, "skills: %s\n", strings.Join(user.Personal.Skills, ", "))
	}
	if len(user.Personal.SocialLinks) > 0 {
		fmt.Fprintf(&b, "links: %s\n", strings.Join(user.Personal.SocialLinks, ", "))
	}
	b.WriteString("\n[PROJECTS]\n")
	for i, p := range user.Projects {
		fmt.Fprintf(&b, "%d. %s - %s", i+1, p.Title, p.Overview)
		if len(p.Tags) > 0 {
			fmt.Fprintf(&b, " (tags: %s)", strings.Join(p.Tags, ", "))
		}
		b.WriteByte('\n')
		for j := range p.FinalImages {
			fmt.Fprintf(&b, "   image slot: project_%d_final_%d\n", i+1, j+1)
		}
		for j := range p.ProcessImages {
			fmt.Fprintf(&b, "   image slot: project_%d_process_%d\n", i+1, j+1)
		}
	}

	b.WriteString("\n[IMAGE RULES]\n")
	b.WriteString("Where a project image belongs, use its image slot token verbatim as the src attribute,\n")
	b.WriteString("e.g. <img src=\"project_1_final_1\" alt=\"...\">. Never invent image URLs.\n")

	if req := strings.TrimSpace(user.Options.DesignRequest); req != "" {
		b.WriteString("\n[CLIENT REQUEST]\n")
		b.WriteString(req)
		b.WriteByte('\n')
	}
	return b.String()
}

// BuildContinuationPrompt frames a retry around a truncated document. It asks
// for the complete corrected document, not a delta, so the reply fully
// replaces the working text.
func BuildContinuationPrompt(brief *analysis.DesignBrief, user *types.UserData, partial string) string {
	var b strings.Builder
	b.WriteString("[TASK]\n")
	b.WriteString("Your previous reply was cut off before the document was finished.\n")
	b.WriteString("Return the ENTIRE corrected HTML document from <!DOCTYPE html> through </html>,\n")
	b.WriteString("resuming exactly where the text below was truncated. Do not summarize, do not\n")
	b.WriteString("omit earlier sections, and do not add commentary. Respond with the HTML only.\n\n")
	b.WriteString("[TRUNCATED OUTPUT]\n")
	b.WriteString(partial)
	b.WriteString("\n\n[ORIGINAL BRIEF]\n")
	b.WriteString(BuildPrompt(brief, user))
	return b.String()
}
