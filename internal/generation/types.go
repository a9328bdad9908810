// Package generation drives the generate/inspect/continue loop against the
// generative content service.
package generation

// TerminalReason classifies how a generation session ended.
type TerminalReason string

const (
	ReasonComplete       TerminalReason = "COMPLETE"
	ReasonMaxAttempts    TerminalReason = "MAX_ATTEMPTS"
	ReasonNonContinuable TerminalReason = "NON_CONTINUABLE"
	ReasonUpstreamError  TerminalReason = "UPSTREAM_ERROR"
)

// Attempt is one generation round and its completeness classification.
type Attempt struct {
	RawText             string   `json:"-"`
	AttemptNumber       int      `json:"attempt_number"`
	IsComplete          bool     `json:"is_complete"`
	EstimatedCompletion float64  `json:"estimated_completion"`
	Issues              []string `json:"issues"`
	CanContinue         bool     `json:"can_continue"`
}

// Session is the ordered attempt history for one request. Request-scoped;
// discarded after the response is built.
type Session struct {
	Attempts       []Attempt      `json:"attempts"`
	FinalText      string         `json:"-"`
	TerminalReason TerminalReason `json:"terminal_reason"`
}

// Complete reports whether the session ended with a structurally finished
// document.
func (s *Session) Complete() bool { return s.TerminalReason == ReasonComplete }

// Summary is the caller-facing view of a session, without raw text bodies.
type Summary struct {
	AttemptCount   int            `json:"attempt_count"`
	TerminalReason TerminalReason `json:"terminal_reason"`
	Issues         []string       `json:"issues,omitempty"`
}

func (s *Session) Summary() Summary {
	out := Summary{
		AttemptCount:   len(s.Attempts),
		TerminalReason: s.TerminalReason,
	}
	if n := len(s.Attempts); n > 0 {
		out.Issues = s.Attempts[n-1].Issues
	}
	return out
}
