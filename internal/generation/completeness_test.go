package generation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const finishedDoc = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>Ava Chen</title></head>
<body>
<header><h1>Ava Chen</h1></header>
<main><section>Selected work and a short introduction.</section></main>
<footer>contact</footer>
</body>
</html>`

func TestDetectCompleteDocument(t *testing.T) {
	att := Detect(finishedDoc, 200)
	assert.True(t, att.IsComplete)
	assert.Equal(t, 1.0, att.EstimatedCompletion)
	assert.Empty(t, att.Issues)
}

func TestDetectTruncatedButContinuable(t *testing.T) {
	truncated := `<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>Ava</title></head>
<body>
<main><section><div class="grid">` + strings.Repeat("<p>item</p>", 10)

	att := Detect(truncated, 2000)
	assert.False(t, att.IsComplete)
	assert.True(t, att.CanContinue)
	assert.Contains(t, att.Issues, "missing closing root tag")
	assert.Less(t, att.EstimatedCompletion, 1.0)
	assert.Greater(t, att.EstimatedCompletion, 0.0)
}

func TestDetectEmptyOutput(t *testing.T) {
	att := Detect("   \n  ", 2000)
	assert.False(t, att.IsComplete)
	assert.False(t, att.CanContinue)
	assert.Contains(t, att.Issues, "empty output")
}

func TestDetectNonHTMLNotContinuable(t *testing.T) {
	att := Detect("I'm sorry, I can't produce that document right now.", 2000)
	assert.False(t, att.IsComplete)
	assert.False(t, att.CanContinue)
}

func TestDetectCutMidTagNotContinuable(t *testing.T) {
	// Truncated before the very first tag ever closed.
	att := Detect("<!doctype html "+strings.Repeat("x", 100), 2000)
	assert.False(t, att.IsComplete)
	assert.False(t, att.CanContinue)
	assert.Contains(t, att.Issues, "too malformed to continue")
}

func TestDetectScoreGrowsWithClosedSections(t *testing.T) {
	head := `<!DOCTYPE html><html><head><title>x</title></head><body><div>`
	withBody := head + `content</div></body>`

	a := Detect(head, 2000)
	b := Detect(withBody, 2000)
	require.False(t, a.IsComplete)
	require.False(t, b.IsComplete)
	assert.Greater(t, b.EstimatedCompletion, a.EstimatedCompletion)
}

func TestDetectUnbalancedStructureBlocksCompletion(t *testing.T) {
	doc := `<!DOCTYPE html><html><head></head><body>` +
		`<section><section><section><section>deep` +
		`</body></html>`
	att := Detect(doc, 64)
	assert.False(t, att.IsComplete)
	assert.Contains(t, att.Issues, "unbalanced structural tags")
}
