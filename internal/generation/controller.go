package generation

import (
	"context"
	"log"
	"time"

	"foliogen/internal/analysis"
	"foliogen/internal/llmclient"
	"foliogen/internal/types"
)

// Controller is the bounded-retry state machine around the Invoker:
// GENERATING -> COMPLETE | INCOMPLETE; INCOMPLETE -> CONTINUING while the
// text is continuable and attempts remain, else FAILED. It never raises:
// the caller always receives a structured session with the best partial.
type Controller struct {
	Invoker       *Invoker
	MaxAttempts   int
	UpstreamDelay time.Duration
	MinHTMLBytes  int

	// OnAttempt, when set, observes each classified attempt as it happens.
	OnAttempt func(Attempt)
}

// Run executes the generation/continuation loop for one request.
func (c *Controller) Run(ctx context.Context, brief *analysis.DesignBrief, user *types.UserData) *Session {
	maxAttempts := c.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	session := &Session{}
	// Explicit accumulator instead of recursion: the loop carries the
	// attempt counter and the best partial text seen so far.
	var bestPartial string
	var bestScore float64

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		var (
			text string
			err  error
		)
		if attempt == 1 {
			text, err = c.callWithRetry(ctx, func() (string, error) {
				return c.Invoker.Generate(ctx, brief, user)
			})
		} else {
			partial := bestPartial
			text, err = c.callWithRetry(ctx, func() (string, error) {
				return c.Invoker.Continue(ctx, brief, user, partial)
			})
		}
		if err != nil {
			log.Printf("generation: upstream exhausted on attempt %d: %v", attempt, err)
			session.TerminalReason = ReasonUpstreamError
			session.FinalText = bestPartial
			return session
		}

		att := Detect(text, c.MinHTMLBytes)
		att.AttemptNumber = attempt
		session.Attempts = append(session.Attempts, att)
		if c.OnAttempt != nil {
			c.OnAttempt(att)
		}

		// Each continuation's output fully replaces the working text, so the
		// best partial is whichever attempt got closest to completion.
		if att.EstimatedCompletion >= bestScore {
			bestScore = att.EstimatedCompletion
			bestPartial = text
		}

		if att.IsComplete {
			session.TerminalReason = ReasonComplete
			session.FinalText = text
			return session
		}
		if !att.CanContinue {
			session.TerminalReason = ReasonNonContinuable
			session.FinalText = bestPartial
			return session
		}
		log.Printf("generation: attempt %d incomplete (%.0f%%), continuing", attempt, att.EstimatedCompletion*100)
	}

	session.TerminalReason = ReasonMaxAttempts
	session.FinalText = bestPartial
	return session
}

// callWithRetry retries transient upstream failures with a short fixed
// delay, up to the same attempt ceiling as the continuation loop.
// Permanent errors and context cancellation stop immediately.
func (c *Controller) callWithRetry(ctx context.Context, call func() (string, error)) (string, error) {
	retries := c.MaxAttempts
	if retries < 1 {
		retries = 1
	}
	delay := c.UpstreamDelay
	if delay <= 0 {
		delay = 500 * time.Millisecond
	}

	var last error
	for i := 0; i <= retries; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(delay):
			}
		}
		text, err := call()
		if err == nil {
			return text, nil
		}
		if llmclient.IsPermanent(err) {
			return "", err
		}
		last = err
	}
	return "", last
}
