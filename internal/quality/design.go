package quality

import (
	"context"
	"strings"
)

// DesignValidator checks that the document actually carries the brief's
// visual direction: styling exists, the palette is used, and the page
// adapts to small screens.
type DesignValidator struct{}

func (v *DesignValidator) Name() string { return "design" }

func (v *DesignValidator) Validate(_ context.Context, in Input) Result {
	res := Result{Score: 100}

	var css strings.Builder
	for _, style := range findAll(in.Doc, "style") {
		css.WriteString(textContent(style))
	}
	styles := strings.ToLower(css.String())

	if styles == "" {
		res.Score -= 40
		res.Issues = append(res.Issues, "no inline stylesheet found")
		res.Suggestions = append(res.Suggestions, "embed all styling in a <style> block")
		res.Score = clampScore(res.Score)
		return res
	}
	res.Passed = append(res.Passed, "inline stylesheet present")

	if in.Brief != nil && len(in.Brief.ColorPalette) > 0 {
		used := 0
		for _, color := range in.Brief.ColorPalette {
			if strings.Contains(styles, strings.ToLower(color)) {
				used++
			}
		}
		if used == 0 {
			res.Score -= 20
			res.Issues = append(res.Issues, "brief palette unused in stylesheet")
		} else {
			res.Passed = append(res.Passed, "brief palette in use")
		}
	}

	if strings.Contains(styles, "font-family") {
		res.Passed = append(res.Passed, "typography declared")
	} else {
		res.Score -= 15
		res.Issues = append(res.Issues, "no font-family declarations")
	}

	if strings.Contains(styles, "@media") {
		res.Passed = append(res.Passed, "responsive breakpoints present")
	} else {
		res.Score -= 15
		res.Issues = append(res.Issues, "no media queries")
		res.Suggestions = append(res.Suggestions, "add at least one small-screen breakpoint")
	}

	if strings.Contains(styles, "grid") || strings.Contains(styles, "flex") {
		res.Passed = append(res.Passed, "modern layout primitives in use")
	} else {
		res.Score -= 10
		res.Issues = append(res.Issues, "layout uses neither grid nor flexbox")
	}

	res.Score = clampScore(res.Score)
	return res
}
