package prompt

import (
	"fmt"
	"strings"

	_ "embed"

	"github.com/uezu-lgtm/demo8-job-proposal-draft/internal/proposal"
)

//go:embed templates/short.md
var shortTemplate string

//go:embed templates/long.md
var longTemplate string

//go:embed templates/checklist.md
var checklistTemplate string

const (
	defaultRole   = "career advisor"
	defaultTone   = "polite"
	defaultDetail = "standard"

	beginJob       = "<<<JOB"
	endJob         = "JOB>>>"
	beginCandidate = "<<<CANDIDATE"
	endCandidate   = "CANDIDATE>>>"
	beginExample   = "<<<EXAMPLE"
	endExample     = "EXAMPLE>>>"
)

// Options tune the wording of the instruction block. They are fixed at
// startup, so a Builder stays deterministic per request.
type Options struct {
	// AdvisorRole names the persona the model should assume.
	AdvisorRole string
	// Tone of the proposal text, e.g. "polite" or "casual".
	Tone string
	// Detail level of the proposal text, e.g. "brief" or "thorough".
	Detail string
}

// Builder turns a draft request into a single prompt string. Identical
// requests yield byte-identical prompts.
type Builder struct {
	role   string
	tone   string
	detail string
}

// NewBuilder creates a Builder, falling back to defaults for empty options.
func NewBuilder(opts Options) *Builder {
	b := &Builder{
		role:   strings.TrimSpace(opts.AdvisorRole),
		tone:   strings.TrimSpace(opts.Tone),
		detail: strings.TrimSpace(opts.Detail),
	}
	if b.role == "" {
		b.role = defaultRole
	}
	if b.tone == "" {
		b.tone = defaultTone
	}
	if b.detail == "" {
		b.detail = defaultDetail
	}
	return b
}

// Build validates the request and renders the template for the requested
// artifact kind. User content is embedded verbatim inside marked boundaries;
// only the boundary markers themselves are neutralized in the content.
func (b *Builder) Build(req proposal.DraftRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	var template string
	switch req.Kind {
	case proposal.KindShort:
		template = shortTemplate
	case proposal.KindLong:
		template = longTemplate
	case proposal.KindChecklist:
		template = checklistTemplate
	default:
		return "", fmt.Errorf("%w: unknown artifact kind %q", proposal.ErrInvalidRequest, req.Kind)
	}

	out := strings.ReplaceAll(template, "{{ROLE}}", singleLine(b.role))
	out = strings.ReplaceAll(out, "{{TONE}}", singleLine(b.tone))
	out = strings.ReplaceAll(out, "{{DETAIL}}", singleLine(b.detail))
	out = strings.ReplaceAll(out, "{{JOB}}", fence(beginJob, endJob, req.Job.Text()))
	out = strings.ReplaceAll(out, "{{CANDIDATE}}", fence(beginCandidate, endCandidate, req.Candidate.Text()))
	out = strings.ReplaceAll(out, "{{EXAMPLES}}", examplesBlock(req.PastExamples))

	return out, nil
}

// fence wraps user content in clearly marked boundaries so that instruction
// text inside the content can not masquerade as part of the template.
func fence(begin, end, content string) string {
	return begin + "\n" + neutralize(content) + "\n" + end
}

// neutralize defangs boundary markers inside user content. Everything else
// is kept verbatim.
func neutralize(s string) string {
	s = strings.ReplaceAll(s, "<<<", "(((")
	return strings.ReplaceAll(s, ">>>", ")))")
}

func examplesBlock(examples []proposal.PastExample) string {
	var kept []string
	for _, ex := range examples {
		if strings.TrimSpace(ex.Text) == "" {
			continue
		}
		kept = append(kept, fence(beginExample, endExample, ex.Text))
	}
	if len(kept) == 0 {
		return "none"
	}
	return strings.Join(kept, "\n")
}

func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
