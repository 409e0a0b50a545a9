package drafter

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/uezu-lgtm/demo8-job-proposal-draft/internal/llm"
	"github.com/uezu-lgtm/demo8-job-proposal-draft/internal/prompt"
	"github.com/uezu-lgtm/demo8-job-proposal-draft/internal/proposal"
)

type stubGenerator struct {
	response   string
	err        error
	calls      int
	lastPrompt string
}

func (s *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	s.calls++
	s.lastPrompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func testRequest(kind proposal.Kind) proposal.DraftRequest {
	return proposal.DraftRequest{
		Job: proposal.JobPosting{
			Title:        "Backend engineer",
			Requirements: "3+ years of Go",
		},
		Candidate: proposal.CandidateProfile{
			Skills: "Go, PostgreSQL",
		},
		Kind: kind,
	}
}

func newTestDrafter(gen llm.Generator) *Drafter {
	return New(prompt.NewBuilder(prompt.Options{}), gen, zap.NewNop(), Info{Provider: "stub", Model: "stub-model"}, 0)
}

func TestGenerateShort(t *testing.T) {
	t.Parallel()

	stub := &stubGenerator{response: "Hello! Here is a short proposal.\n\n\n\nBest regards."}
	d := newTestDrafter(stub)

	res, err := d.Generate(context.Background(), testRequest(proposal.KindShort))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Text != "Hello! Here is a short proposal.\n\nBest regards." {
		t.Fatalf("unexpected text: %q", res.Text)
	}
	if res.Provider != "stub" || res.Model != "stub-model" {
		t.Fatalf("backend metadata missing: %+v", res)
	}
	if res.GeneratedAt.IsZero() {
		t.Fatalf("expected a generation timestamp")
	}
	if stub.calls != 1 {
		t.Fatalf("expected exactly one backend call, got %d", stub.calls)
	}
	if !strings.Contains(stub.lastPrompt, "Title: Backend engineer") {
		t.Fatalf("prompt must carry the job posting:\n%s", stub.lastPrompt)
	}
}

func TestGenerateValidationBeforeBackend(t *testing.T) {
	t.Parallel()

	stub := &stubGenerator{err: errors.New("backend must not be reached")}
	d := newTestDrafter(stub)

	req := testRequest(proposal.KindShort)
	req.Job = proposal.JobPosting{}

	_, err := d.Generate(context.Background(), req)
	if !errors.Is(err, proposal.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got: %v", err)
	}
	if stub.calls != 0 {
		t.Fatalf("invalid request must never reach the backend, got %d calls", stub.calls)
	}
}

func TestGenerateBackendErrorPassesThrough(t *testing.T) {
	t.Parallel()

	stub := &stubGenerator{err: llm.ErrTimeout}
	d := newTestDrafter(stub)

	_, err := d.Generate(context.Background(), testRequest(proposal.KindShort))
	if !errors.Is(err, llm.ErrTimeout) {
		t.Fatalf("backend sentinel must survive wrapping, got: %v", err)
	}
}

func TestGenerateChecklistRoundTrip(t *testing.T) {
	t.Parallel()

	d := newTestDrafter(llm.NewMock())

	res, err := d.Generate(context.Background(), testRequest(proposal.KindChecklist))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Degraded() {
		t.Fatalf("mock checklist output must parse, got note: %q", res.Note)
	}
	if len(res.Checklist) == 0 {
		t.Fatalf("expected checklist items")
	}

	musts, shoulds := 0, 0
	for _, item := range res.Checklist {
		switch item.Priority {
		case proposal.PriorityMust:
			musts++
		case proposal.PriorityShould:
			shoulds++
		}
	}
	if musts == 0 || shoulds == 0 {
		t.Fatalf("expected both priorities, got must=%d should=%d", musts, shoulds)
	}

	if len(res.Evidence) == 0 {
		t.Fatalf("expected quoted evidence")
	}
	if len(res.Questions) == 0 {
		t.Fatalf("expected follow-up questions")
	}
}

func TestGenerateLongKindUsesText(t *testing.T) {
	t.Parallel()

	d := newTestDrafter(llm.NewMock())

	res, err := d.Generate(context.Background(), testRequest(proposal.KindLong))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(res.Text) == "" {
		t.Fatalf("expected proposal text")
	}
	if len(res.Checklist) != 0 {
		t.Fatalf("long kind must not produce checklist items")
	}
}
