package proposal

import (
	"strings"
	"time"
)

// Kind selects which artifact a draft request should produce.
type Kind string

const (
	// KindShort is a concise proposal message suitable for a first contact.
	KindShort Kind = "short"
	// KindLong is a detailed proposal message ready to be sent.
	KindLong Kind = "long"
	// KindChecklist is the matching rationale with quoted evidence plus the
	// pre-send checklist and follow-up questions.
	KindChecklist Kind = "checklist"
)

// ParseKind normalizes a user-provided artifact kind.
func ParseKind(s string) (Kind, bool) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindShort:
		return KindShort, true
	case KindLong:
		return KindLong, true
	case KindChecklist:
		return KindChecklist, true
	}
	return "", false
}

// JobPosting is the free-text description of a vacancy. Only the title is
// required to be present; the remaining fields are pasted as-is by the user.
type JobPosting struct {
	Title            string `json:"title"`
	Responsibilities string `json:"responsibilities"`
	Requirements     string `json:"requirements"`
	Conditions       string `json:"conditions"`
}

// Text returns the posting as a single block in a stable field order.
func (j JobPosting) Text() string {
	return joinFields(
		field{"Title", j.Title},
		field{"Responsibilities", j.Responsibilities},
		field{"Requirements", j.Requirements},
		field{"Conditions", j.Conditions},
	)
}

// CandidateProfile is the free-text description of a job seeker.
type CandidateProfile struct {
	Experience        string `json:"experience"`
	Skills            string `json:"skills"`
	DesiredConditions string `json:"desired_conditions"`
}

// Text returns the profile as a single block in a stable field order.
func (c CandidateProfile) Text() string {
	return joinFields(
		field{"Experience", c.Experience},
		field{"Skills", c.Skills},
		field{"Desired conditions", c.DesiredConditions},
	)
}

// PastExample is a prior proposal used only as style reference.
type PastExample struct {
	Text string `json:"text"`
}

// DraftRequest aggregates all inputs for a single generation call. It is
// built fresh from form state for every call and discarded afterwards.
type DraftRequest struct {
	Job          JobPosting       `json:"job"`
	Candidate    CandidateProfile `json:"candidate"`
	PastExamples []PastExample    `json:"past_examples,omitempty"`
	Kind         Kind             `json:"kind"`
}

// Source tags where an evidence quote was found.
type Source string

const (
	SourceJob       Source = "job"
	SourceCandidate Source = "candidate"
	SourcePast      Source = "past"
	// SourceUnknown marks quotes that could not be attributed to any input
	// field. They are kept rather than dropped.
	SourceUnknown Source = ""
)

// Evidence is a quoted span backing a matching rationale point.
type Evidence struct {
	Quote  string `json:"quote"`
	Source Source `json:"source"`
	Note   string `json:"note,omitempty"`
}

// Priority ranks a checklist item. Must items block sending, Should items
// are advisory.
type Priority string

const (
	PriorityMust   Priority = "must"
	PriorityShould Priority = "should"
)

// ChecklistItem is a single pre-send verification entry.
type ChecklistItem struct {
	Text     string   `json:"text"`
	Priority Priority `json:"priority"`
}

// DraftResult is the normalized outcome of one generation call. Text carries
// the draft for short/long kinds. Evidence, Checklist and Questions are
// populated for the checklist kind. Note holds the raw model output when
// normalization had to degrade.
type DraftResult struct {
	Kind      Kind            `json:"kind"`
	Text      string          `json:"text,omitempty"`
	Evidence  []Evidence      `json:"evidence,omitempty"`
	Checklist []ChecklistItem `json:"checklist,omitempty"`
	Questions []string        `json:"questions,omitempty"`
	Note      string          `json:"note,omitempty"`

	Provider    string    `json:"provider,omitempty"`
	Model       string    `json:"model,omitempty"`
	GeneratedAt time.Time `json:"generated_at,omitzero"`
}

// Degraded reports whether the result fell back to the raw-note path.
func (r *DraftResult) Degraded() bool {
	return r.Note != "" && r.Text == "" && len(r.Checklist) == 0 && len(r.Evidence) == 0
}

type field struct {
	label string
	value string
}

func joinFields(fields ...field) string {
	var b strings.Builder
	for _, f := range fields {
		v := strings.TrimSpace(f.value)
		if v == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(f.label)
		b.WriteString(": ")
		b.WriteString(v)
	}
	return b.String()
}
