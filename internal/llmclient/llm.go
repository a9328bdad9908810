package llmclient

import (
	"context"
	"errors"
)

var ErrEmptyResponse = errors.New("llmclient: empty response from model")

// ErrorClass categorizes upstream failures for retry decisions.
type ErrorClass string

const (
	ClassQuota     ErrorClass = "quota"
	ClassAuth      ErrorClass = "auth"
	ClassMalformed ErrorClass = "malformed"
	ClassTransient ErrorClass = "transient"
)

// UpstreamError wraps an error from the generative service with its class.
// Auth and malformed-request errors will not resolve with retries.
type UpstreamError struct {
	Class ErrorClass
	Err   error
}

func (e *UpstreamError) Error() string { return string(e.Class) + ": " + e.Err.Error() }
func (e *UpstreamError) Unwrap() error { return e.Err }

// Permanent reports whether retrying is pointless.
func (e *UpstreamError) Permanent() bool {
	return e.Class == ClassAuth || e.Class == ClassMalformed
}

// IsPermanent reports whether err carries a non-retryable upstream class.
func IsPermanent(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue) && ue.Permanent()
}

// Block is one ordered element of a generation request.
// Either Text is set, or ImageData+MIMEType are.
type Block struct {
	Text      string
	ImageData []byte
	MIMEType  string
}

// Request carries the content blocks and model parameters for one call.
type Request struct {
	Blocks          []Block
	MaxOutputTokens int32
	Temperature     *float32
	JSONResponse    bool
}

// Client is the minimal surface the pipeline needs from a generative backend.
// Cross-cutting concerns (rate limiting, retries, logging) are applied via
// Middleware, not inside implementations.
type Client interface {
	Name() string
	GenerateContent(ctx context.Context, req Request) (string, error)
	Close() error
}
