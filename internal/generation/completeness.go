package generation

import (
	"strings"
)

// DefaultMinHTMLBytes is the expected minimum size of a finished document.
const DefaultMinHTMLBytes = 2000

// structuralTags are the elements whose open/close balance signals whether a
// document was cut off mid-body.
var structuralTags = []string{"html", "head", "body", "main", "header", "footer", "section", "article", "div"}

const tagImbalanceTolerance = 2

// Detect classifies raw generated text for structural completeness.
// Pure and reentrant: no state is retained between calls.
func Detect(text string, minBytes int) Attempt {
	if minBytes <= 0 {
		minBytes = DefaultMinHTMLBytes
	}
	trimmed := strings.TrimSpace(text)
	lower := strings.ToLower(trimmed)

	att := Attempt{RawText: text, Issues: []string{}}
	if trimmed == "" {
		att.Issues = append(att.Issues, "empty output")
		return att
	}

	startsWithRoot := strings.HasPrefix(lower, "<!doctype html") || strings.HasPrefix(lower, "<html")
	endsWithRoot := strings.HasSuffix(lower, "</html>")
	hasClosedHead := strings.Contains(lower, "</head>")
	hasClosedBody := strings.Contains(lower, "</body>")

	if !startsWithRoot {
		att.Issues = append(att.Issues, "missing root document marker")
	}
	if !endsWithRoot {
		att.Issues = append(att.Issues, "missing closing root tag")
	}

	imbalance := 0
	for _, tag := range structuralTags {
		open := strings.Count(lower, "<"+tag+">") + strings.Count(lower, "<"+tag+" ")
		closed := strings.Count(lower, "</"+tag+">")
		if d := open - closed; d > 0 {
			imbalance += d
		}
	}
	balanced := imbalance <= tagImbalanceTolerance
	if !balanced {
		att.Issues = append(att.Issues, "unbalanced structural tags")
	}

	// Monotonic in matched closing markers and in length toward the minimum.
	var score float64
	if startsWithRoot {
		score += 0.15
	}
	if hasClosedHead {
		score += 0.15
	}
	if hasClosedBody {
		score += 0.2
	}
	if endsWithRoot {
		score += 0.2
	}
	lengthRatio := float64(len(trimmed)) / float64(minBytes)
	if lengthRatio > 1 {
		lengthRatio = 1
	}
	score += 0.3 * lengthRatio
	att.EstimatedCompletion = score

	att.IsComplete = startsWithRoot && endsWithRoot && balanced && len(trimmed) >= minBytes/4
	if att.IsComplete {
		att.EstimatedCompletion = 1
		return att
	}

	att.CanContinue = continuable(trimmed, startsWithRoot)
	if !att.CanContinue {
		att.Issues = append(att.Issues, "too malformed to continue")
	}
	return att
}

// continuable is false only when the text is too short or broken too early
// to extend coherently.
func continuable(trimmed string, startsWithRoot bool) bool {
	if len(trimmed) < 64 {
		return false
	}
	if !startsWithRoot {
		return false
	}
	// Truncated mid-attribute right at the start: the first tag never closes.
	if strings.IndexByte(trimmed, '>') == -1 {
		return false
	}
	return true
}
