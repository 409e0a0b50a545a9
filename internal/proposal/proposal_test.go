package proposal

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestParseKind(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want Kind
		ok   bool
	}{
		{"short", KindShort, true},
		{"  LONG ", KindLong, true},
		{"Checklist", KindChecklist, true},
		{"", "", false},
		{"medium", "", false},
	}

	for _, c := range cases {
		got, ok := ParseKind(c.in)
		if ok != c.ok || got != c.want {
			t.Fatalf("ParseKind(%q) = (%q, %v), want (%q, %v)", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestJobPostingText(t *testing.T) {
	t.Parallel()

	job := JobPosting{
		Title:        "Backend engineer",
		Requirements: "Go, PostgreSQL",
	}

	text := job.Text()
	if !strings.Contains(text, "Title: Backend engineer") {
		t.Fatalf("expected title line, got: %s", text)
	}
	if !strings.Contains(text, "Requirements: Go, PostgreSQL") {
		t.Fatalf("expected requirements line, got: %s", text)
	}
	if strings.Contains(text, "Responsibilities") {
		t.Fatalf("empty fields must be omitted, got: %s", text)
	}

	empty := JobPosting{}
	if empty.Text() != "" {
		t.Fatalf("expected empty text for zero posting, got %q", empty.Text())
	}
}

func TestCandidateProfileTextOrderIsStable(t *testing.T) {
	t.Parallel()

	c := CandidateProfile{
		Experience:        "5 years backend",
		Skills:            "Go",
		DesiredConditions: "remote",
	}

	want := "Experience: 5 years backend\nSkills: Go\nDesired conditions: remote"
	if got := c.Text(); got != want {
		t.Fatalf("unexpected profile text:\n%s", got)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := DraftRequest{
		Job:       JobPosting{Title: "Backend engineer", Requirements: "Go"},
		Candidate: CandidateProfile{Skills: "Go"},
		Kind:      KindShort,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := []struct {
		name string
		req  DraftRequest
	}{
		{
			name: "missing job title",
			req: DraftRequest{
				Job:       JobPosting{Requirements: "Go"},
				Candidate: CandidateProfile{Skills: "Go"},
				Kind:      KindShort,
			},
		},
		{
			name: "empty candidate",
			req: DraftRequest{
				Job:  JobPosting{Title: "Backend engineer"},
				Kind: KindShort,
			},
		},
		{
			name: "unknown kind",
			req: DraftRequest{
				Job:       JobPosting{Title: "Backend engineer"},
				Candidate: CandidateProfile{Skills: "Go"},
				Kind:      "medium",
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.req.Validate()
			if err == nil {
				t.Fatalf("expected validation error")
			}
			if !errors.Is(err, ErrInvalidRequest) {
				t.Fatalf("expected ErrInvalidRequest, got: %v", err)
			}
		})
	}
}

func TestDegraded(t *testing.T) {
	t.Parallel()

	degraded := &DraftResult{Kind: KindChecklist, Note: "raw text"}
	if !degraded.Degraded() {
		t.Fatalf("expected degraded result")
	}

	parsed := &DraftResult{
		Kind:      KindChecklist,
		Checklist: []ChecklistItem{{Text: "Confirm salary", Priority: PriorityMust}},
		Note:      "",
	}
	if parsed.Degraded() {
		t.Fatalf("result with a checklist must not report degraded")
	}
}

func TestAsMarkdown(t *testing.T) {
	t.Parallel()

	r := &DraftResult{
		Kind: KindChecklist,
		Text: "- Strong overlap: both mention Go",
		Evidence: []Evidence{
			{Quote: "3+ years of Go", Source: SourceJob},
			{Quote: "somewhere else", Source: SourceUnknown, Note: "context"},
		},
		Checklist: []ChecklistItem{
			{Text: "Confirm the salary range", Priority: PriorityMust},
			{Text: "Ask about team size", Priority: PriorityShould},
		},
		Questions:   []string{"Is relocation acceptable?"},
		Provider:    "mock",
		GeneratedAt: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
	}

	md := r.AsMarkdown()

	for _, want := range []string{
		"# Proposal draft",
		"- Backend: mock",
		"- Generated: 2026-08-30 12:00:00",
		"## Rationale (quoted evidence)",
		`- [job] "3+ years of Go"`,
		`- [unattributed] "somewhere else" (context)`,
		"## Pre-send checklist",
		"- [ ] Must: Confirm the salary range",
		"- [ ] Should: Ask about team size",
		"## Follow-up questions",
		"- Is relocation acceptable?",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("markdown missing %q:\n%s", want, md)
		}
	}

	if strings.Contains(md, "## Raw output") {
		t.Fatalf("raw output section must be absent without a note:\n%s", md)
	}
}

func TestAsMarkdownDegraded(t *testing.T) {
	t.Parallel()

	r := &DraftResult{Kind: KindChecklist, Note: "model said something unparseable"}
	md := r.AsMarkdown()

	if !strings.Contains(md, "## Raw output (not parsed)") {
		t.Fatalf("expected raw output section:\n%s", md)
	}
	if !strings.Contains(md, "model said something unparseable") {
		t.Fatalf("expected raw note content:\n%s", md)
	}
}
