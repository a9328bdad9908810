package quality

import (
	"context"
	"fmt"
	"strings"
)

// ContentValidator checks that the caller's actual content made it into the
// document: identity, bio, and every project.
type ContentValidator struct{}

func (v *ContentValidator) Name() string { return "content" }

func (v *ContentValidator) Validate(_ context.Context, in Input) Result {
	res := Result{Score: 100}
	text := strings.ToLower(textContent(in.Doc))

	check := func(present bool, penalty float64, passMsg, failMsg string) {
		if present {
			res.Passed = append(res.Passed, passMsg)
			return
		}
		res.Score -= penalty
		res.Issues = append(res.Issues, failMsg)
	}

	p := in.User.Personal
	check(p.Name == "" || strings.Contains(text, strings.ToLower(p.Name)),
		25, "name present", "user name missing from document")
	check(p.Title == "" || strings.Contains(text, strings.ToLower(p.Title)),
		10, "title present", "professional title missing from document")

	if p.Bio != "" {
		// A reworded bio is fine; look for a representative fragment.
		fragment := strings.ToLower(firstWords(p.Bio, 5))
		check(strings.Contains(text, fragment), 10,
			"bio present", "bio text missing from document")
	}

	missing := 0
	for _, proj := range in.User.Projects {
		if proj.Title != "" && !strings.Contains(text, strings.ToLower(proj.Title)) {
			missing++
			res.Issues = append(res.Issues, fmt.Sprintf("project %q missing from document", proj.Title))
		}
	}
	if len(in.User.Projects) > 0 {
		if missing == 0 {
			res.Passed = append(res.Passed, "all projects present")
		} else {
			res.Score -= float64(missing) * 15
		}
	}

	if len(p.SocialLinks) > 0 {
		linked := false
		for _, a := range findAll(in.Doc, "a") {
			href, _ := attr(a, "href")
			for _, link := range p.SocialLinks {
				if link != "" && strings.Contains(href, link) {
					linked = true
				}
			}
		}
		check(linked, 5, "social links present", "no social links found")
		if !linked {
			res.Suggestions = append(res.Suggestions, "link the provided social profiles in the contact section")
		}
	}

	res.Score = clampScore(res.Score)
	return res
}

func firstWords(s string, n int) string {
	fields := strings.Fields(s)
	if len(fields) > n {
		fields = fields[:n]
	}
	return strings.Join(fields, " ")
}
