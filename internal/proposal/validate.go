package proposal

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidRequest marks a draft request that must be rejected before any
// backend call is made.
var ErrInvalidRequest = errors.New("invalid draft request")

// Validate checks the request invariants: a non-empty job title, non-empty
// job posting text, non-empty candidate profile text, and a known artifact
// kind. All failures wrap ErrInvalidRequest.
func (r DraftRequest) Validate() error {
	if strings.TrimSpace(r.Job.Title) == "" {
		return fmt.Errorf("%w: job title is required", ErrInvalidRequest)
	}
	if strings.TrimSpace(r.Job.Text()) == "" {
		return fmt.Errorf("%w: job posting text is required", ErrInvalidRequest)
	}
	if strings.TrimSpace(r.Candidate.Text()) == "" {
		return fmt.Errorf("%w: candidate profile text is required", ErrInvalidRequest)
	}
	if _, ok := ParseKind(string(r.Kind)); !ok {
		return fmt.Errorf("%w: unknown artifact kind %q", ErrInvalidRequest, r.Kind)
	}
	return nil
}
