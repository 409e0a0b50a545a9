// Package llm contains the generation backends. Every backend implements
// Generator; the mock variant is fully substitutable for the live ones in
// tests.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
)

// Generator sends a prompt to a text-generation backend and returns the raw
// text response.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Pinger is implemented by live backends that can report endpoint
// reachability for health checks.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Backend failure taxonomy. Live variants wrap one of these so callers can
// classify with errors.Is. Calls are never retried.
var (
	// ErrConnection means the endpoint could not be reached at all.
	ErrConnection = errors.New("backend unreachable")
	// ErrTimeout means no response arrived within the configured wait.
	ErrTimeout = errors.New("backend timed out")
	// ErrUpstream means the endpoint answered with a non-success status or
	// a payload that could not be decoded.
	ErrUpstream = errors.New("backend returned an invalid response")
)

// classify maps transport-level errors onto the backend taxonomy. Errors
// that already carry a taxonomy sentinel pass through unchanged.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrConnection) || errors.Is(err, ErrTimeout) || errors.Is(err, ErrUpstream) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	return fmt.Errorf("%w: %v", ErrConnection, err)
}
