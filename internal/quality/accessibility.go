package quality

import (
	"context"
	"strings"
)

// AccessibilityValidator checks the basics a generated page must not skip:
// language, labeled images, a sane heading outline, and landmarks.
type AccessibilityValidator struct{}

func (v *AccessibilityValidator) Name() string { return "accessibility" }

func (v *AccessibilityValidator) Validate(_ context.Context, in Input) Result {
	res := Result{Score: 100}

	langSet := false
	for _, node := range findAll(in.Doc, "html") {
		if lang, ok := attr(node, "lang"); ok && strings.TrimSpace(lang) != "" {
			langSet = true
		}
	}
	if langSet {
		res.Passed = append(res.Passed, "document language declared")
	} else {
		res.Score -= 15
		res.Issues = append(res.Issues, "missing lang attribute on <html>")
	}

	images := findAll(in.Doc, "img")
	unlabeled := 0
	for _, img := range images {
		if alt, ok := attr(img, "alt"); !ok || strings.TrimSpace(alt) == "" {
			unlabeled++
		}
	}
	if len(images) > 0 {
		if unlabeled == 0 {
			res.Passed = append(res.Passed, "all images labeled")
		} else {
			res.Score -= float64(unlabeled) * 10
			res.Issues = append(res.Issues, "images without alt text")
			res.Suggestions = append(res.Suggestions, "describe each project image in its alt attribute")
		}
	}

	h1s := findAll(in.Doc, "h1")
	switch {
	case len(h1s) == 1:
		res.Passed = append(res.Passed, "single h1 heading")
	case len(h1s) == 0:
		res.Score -= 15
		res.Issues = append(res.Issues, "no h1 heading")
	default:
		res.Score -= 10
		res.Issues = append(res.Issues, "multiple h1 headings")
	}

	landmarks := 0
	for _, tag := range []string{"main", "nav", "footer", "header"} {
		if len(findAll(in.Doc, tag)) > 0 {
			landmarks++
		}
	}
	if landmarks >= 2 {
		res.Passed = append(res.Passed, "landmark regions present")
	} else {
		res.Score -= 10
		res.Issues = append(res.Issues, "few or no landmark regions")
	}

	emptyLinks := 0
	for _, a := range findAll(in.Doc, "a") {
		if strings.TrimSpace(textContent(a)) == "" {
			emptyLinks++
		}
	}
	if emptyLinks > 0 {
		res.Score -= float64(emptyLinks) * 5
		res.Issues = append(res.Issues, "links without accessible text")
	}

	res.Score = clampScore(res.Score)
	return res
}
