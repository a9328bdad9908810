// Package quality scores finalized documents along four independent axes
// and applies one bounded auto-fix pass when the aggregate falls short.
package quality

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/sync/errgroup"

	"foliogen/internal/analysis"
	"foliogen/internal/types"
)

// Input is the read-only material every validator sees.
type Input struct {
	Doc   *html.Node
	Raw   string
	User  *types.UserData
	Brief *analysis.DesignBrief
}

// Result is one validator's verdict. Score is always within [0,100].
type Result struct {
	Score       float64  `json:"score"`
	Issues      []string `json:"issues"`
	Passed      []string `json:"passed"`
	Suggestions []string `json:"suggestions"`
}

// Validator is the shared capability of the closed validator set.
type Validator interface {
	Name() string
	Validate(ctx context.Context, in Input) Result
}

// Aggregate weights, fixed by contract.
const (
	weightContent       = 0.30
	weightDesign        = 0.25
	weightTechnical     = 0.25
	weightAccessibility = 0.20
)

// neutralScore stands in for a validator that failed internally.
const neutralScore = 50

type Overall struct {
	Score  float64 `json:"score"`
	Status string  `json:"status"`
}

// Report is the full validation outcome. Produced fresh per attempt;
// never merged across requests.
type Report struct {
	Overall        Overall `json:"overall"`
	Content        Result  `json:"content"`
	Design         Result  `json:"design"`
	Technical      Result  `json:"technical"`
	Accessibility  Result  `json:"accessibility"`
	AutoFixApplied bool    `json:"auto_fix_applied"`
}

// Runner executes the fixed validator set concurrently.
type Runner struct {
	validators []Validator
}

func NewRunner() *Runner {
	return &Runner{validators: []Validator{
		&ContentValidator{},
		&DesignValidator{},
		&TechnicalValidator{},
		&AccessibilityValidator{},
	}}
}

// Run parses the document once and fans the validators out. A failure or
// panic in one validator degrades it to the neutral baseline without
// blocking or corrupting the others.
func (r *Runner) Run(ctx context.Context, raw string, user *types.UserData, brief *analysis.DesignBrief) Report {
	doc, parseErr := html.Parse(strings.NewReader(raw))
	in := Input{Doc: doc, Raw: raw, User: user, Brief: brief}

	results := make([]Result, len(r.validators))
	g, gctx := errgroup.WithContext(ctx)
	for i, v := range r.validators {
		g.Go(func() error {
			results[i] = safeValidate(gctx, v, in)
			return nil
		})
	}
	_ = g.Wait()

	report := Report{
		Content:       results[0],
		Design:        results[1],
		Technical:     results[2],
		Accessibility: results[3],
	}
	if parseErr != nil {
		report.Technical.Issues = append(report.Technical.Issues, "document did not parse cleanly: "+parseErr.Error())
	}
	report.Overall = aggregate(report)
	return report
}

func safeValidate(ctx context.Context, v Validator, in Input) (out Result) {
	defer func() {
		if rec := recover(); rec != nil {
			out = Result{
				Score:       neutralScore,
				Issues:      []string{fmt.Sprintf("%s validator failed internally: %v", v.Name(), rec)},
				Passed:      []string{},
				Suggestions: []string{},
			}
		}
	}()
	out = v.Validate(ctx, in)
	out.Score = clampScore(out.Score)
	if out.Issues == nil {
		out.Issues = []string{}
	}
	if out.Passed == nil {
		out.Passed = []string{}
	}
	if out.Suggestions == nil {
		out.Suggestions = []string{}
	}
	return out
}

func aggregate(rep Report) Overall {
	score := weightContent*rep.Content.Score +
		weightDesign*rep.Design.Score +
		weightTechnical*rep.Technical.Score +
		weightAccessibility*rep.Accessibility.Score
	score = clampScore(score)
	var status string
	switch {
	case score >= 90:
		status = "excellent"
	case score >= 75:
		status = "good"
	case score >= 60:
		status = "fair"
	default:
		status = "needs-work"
	}
	return Overall{Score: score, Status: status}
}

func clampScore(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

// ---- shared DOM helpers ----

func findAll(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node == nil {
			return
		}
		if node.Type == html.ElementNode && node.Data == tag {
			out = append(out, node)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node == nil {
			return
		}
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
