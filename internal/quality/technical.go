package quality

import (
	"context"
	"strings"
)

// TechnicalValidator checks document structure and metadata hygiene.
type TechnicalValidator struct{}

func (v *TechnicalValidator) Name() string { return "technical" }

func (v *TechnicalValidator) Validate(_ context.Context, in Input) Result {
	res := Result{Score: 100}

	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(in.Raw)), "<!doctype html") {
		res.Passed = append(res.Passed, "doctype declared")
	} else {
		res.Score -= 10
		res.Issues = append(res.Issues, "missing doctype")
	}

	titles := findAll(in.Doc, "title")
	if len(titles) > 0 && strings.TrimSpace(textContent(titles[0])) != "" {
		res.Passed = append(res.Passed, "page title set")
	} else {
		res.Score -= 15
		res.Issues = append(res.Issues, "missing or empty <title>")
	}

	var hasCharset, hasViewport bool
	for _, meta := range findAll(in.Doc, "meta") {
		if _, ok := attr(meta, "charset"); ok {
			hasCharset = true
		}
		if name, _ := attr(meta, "name"); name == "viewport" {
			hasViewport = true
		}
	}
	if hasCharset {
		res.Passed = append(res.Passed, "charset meta present")
	} else {
		res.Score -= 10
		res.Issues = append(res.Issues, "missing charset meta")
	}
	if hasViewport {
		res.Passed = append(res.Passed, "viewport meta present")
	} else {
		res.Score -= 15
		res.Issues = append(res.Issues, "missing viewport meta")
	}

	brokenLinks := 0
	for _, a := range findAll(in.Doc, "a") {
		href, ok := attr(a, "href")
		if !ok || strings.TrimSpace(href) == "" {
			brokenLinks++
		}
	}
	if brokenLinks > 0 {
		res.Score -= float64(brokenLinks) * 5
		res.Issues = append(res.Issues, "anchors without a usable href")
	} else {
		res.Passed = append(res.Passed, "all anchors have targets")
	}

	missingSrc := 0
	for _, img := range findAll(in.Doc, "img") {
		if src, ok := attr(img, "src"); !ok || strings.TrimSpace(src) == "" {
			missingSrc++
		}
	}
	if missingSrc > 0 {
		res.Score -= float64(missingSrc) * 5
		res.Issues = append(res.Issues, "images without src")
	}

	if len(findAll(in.Doc, "script")) == 0 {
		res.Passed = append(res.Passed, "no external scripts")
	} else {
		res.Suggestions = append(res.Suggestions, "drop script tags; the document should be self-contained")
	}

	res.Score = clampScore(res.Score)
	return res
}
