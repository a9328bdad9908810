package generation

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foliogen/internal/analysis"
	"foliogen/internal/llmclient"
	"foliogen/internal/types"
)

var truncatedDoc = `<!DOCTYPE html><html><head><title>x</title></head><body><div class="hero">` +
	strings.Repeat("<p>cut off mid body</p>", 5)

func testController(fake *llmclient.FakeClient, maxAttempts int) *Controller {
	return &Controller{
		Invoker:       &Invoker{LLM: fake, Timeout: time.Second},
		MaxAttempts:   maxAttempts,
		UpstreamDelay: time.Millisecond,
		MinHTMLBytes:  200,
	}
}

func runController(c *Controller) *Session {
	user := &types.UserData{Personal: types.PersonalInfo{Name: "Ava Chen"}}
	return c.Run(context.Background(), &analysis.DesignBrief{}, user)
}

func TestControllerCompletesAfterContinuation(t *testing.T) {
	fake := llmclient.NewFakeClient(
		llmclient.FakeTurn{Text: truncatedDoc},
		llmclient.FakeTurn{Text: finishedDoc},
	)
	session := runController(testController(fake, 3))

	require.True(t, session.Complete())
	assert.Equal(t, ReasonComplete, session.TerminalReason)
	assert.Len(t, session.Attempts, 2)
	assert.Equal(t, finishedDoc, session.FinalText)
	assert.Equal(t, 2, fake.Calls)
}

func TestControllerStopsAtMaxAttempts(t *testing.T) {
	fake := llmclient.NewFakeClient(llmclient.FakeTurn{Text: truncatedDoc})
	session := runController(testController(fake, 2))

	assert.False(t, session.Complete())
	assert.Equal(t, ReasonMaxAttempts, session.TerminalReason)
	assert.Len(t, session.Attempts, 2)
	assert.Equal(t, truncatedDoc, session.FinalText, "best partial is preserved")
}

func TestControllerNonContinuableOutput(t *testing.T) {
	fake := llmclient.NewFakeClient(llmclient.FakeTurn{Text: "cannot comply"})
	session := runController(testController(fake, 3))

	assert.Equal(t, ReasonNonContinuable, session.TerminalReason)
	assert.Len(t, session.Attempts, 1)
	assert.Equal(t, 1, fake.Calls, "non-continuable output must not be retried")
}

func TestControllerUpstreamExhaustion(t *testing.T) {
	fake := llmclient.NewFakeClient(llmclient.FakeTurn{
		Err: &llmclient.UpstreamError{Class: llmclient.ClassTransient, Err: errors.New("deadline")},
	})
	session := runController(testController(fake, 2))

	assert.Equal(t, ReasonUpstreamError, session.TerminalReason)
	assert.Empty(t, session.Attempts)
	// One initial call plus two retries before giving up.
	assert.Equal(t, 3, fake.Calls)
}

func TestControllerPermanentErrorStopsImmediately(t *testing.T) {
	fake := llmclient.NewFakeClient(llmclient.FakeTurn{
		Err: &llmclient.UpstreamError{Class: llmclient.ClassAuth, Err: errors.New("bad key")},
	})
	session := runController(testController(fake, 3))

	assert.Equal(t, ReasonUpstreamError, session.TerminalReason)
	assert.Equal(t, 1, fake.Calls)
}

func TestControllerKeepsPartialAcrossUpstreamFailure(t *testing.T) {
	fake := llmclient.NewFakeClient(
		llmclient.FakeTurn{Text: truncatedDoc},
		llmclient.FakeTurn{
			Err: &llmclient.UpstreamError{Class: llmclient.ClassTransient, Err: errors.New("quota window")},
		},
	)
	session := runController(testController(fake, 2))

	assert.Equal(t, ReasonUpstreamError, session.TerminalReason)
	assert.Equal(t, truncatedDoc, session.FinalText)
	assert.Len(t, session.Attempts, 1)
}

func TestControllerObserverSeesEveryAttempt(t *testing.T) {
	fake := llmclient.NewFakeClient(
		llmclient.FakeTurn{Text: truncatedDoc},
		llmclient.FakeTurn{Text: finishedDoc},
	)
	c := testController(fake, 3)
	var observed []int
	c.OnAttempt = func(att Attempt) { observed = append(observed, att.AttemptNumber) }

	session := runController(c)
	require.True(t, session.Complete())
	assert.Equal(t, []int{1, 2}, observed)
}

func TestSessionSummary(t *testing.T) {
	s := &Session{
		Attempts: []Attempt{
			{AttemptNumber: 1, Issues: []string{"missing closing root tag"}},
			{AttemptNumber: 2, Issues: []string{}},
		},
		TerminalReason: ReasonComplete,
	}
	sum := s.Summary()
	assert.Equal(t, 2, sum.AttemptCount)
	assert.Equal(t, ReasonComplete, sum.TerminalReason)
	assert.Empty(t, sum.Issues)
}
