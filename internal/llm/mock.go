package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Mock is the deterministic, network-free stand-in used for offline demos.
// It never fails and derives its output from recognizable pieces of the
// prompt so the UI stays demonstrably functional without any endpoint.
type Mock struct{}

// NewMock returns a Mock generator.
func NewMock() *Mock {
	return &Mock{}
}

// Generate returns a canned proposal skeleton. For rationale/checklist
// prompts it answers with JSON following the instructed schema, quoting
// verbatim excerpts from the embedded inputs.
func (m *Mock) Generate(_ context.Context, prompt string) (string, error) {
	job := block(prompt, "<<<JOB\n", "\nJOB>>>")
	candidate := block(prompt, "<<<CANDIDATE\n", "\nCANDIDATE>>>")

	if strings.Contains(prompt, `"evidence_points"`) {
		return m.checklistJSON(job, candidate)
	}

	requirements := labeledValue(job, "Requirements:")
	if requirements == "" {
		requirements = excerpt(job, 80)
	}
	skills := labeledValue(candidate, "Skills:")
	if skills == "" {
		skills = excerpt(candidate, 80)
	}

	var b strings.Builder
	b.WriteString("Hello! I would like to introduce a vacancy that appears to fit your background.\n\n")
	if requirements != "" {
		fmt.Fprintf(&b, "The role is looking for: %s.\n", requirements)
	}
	if skills != "" {
		fmt.Fprintf(&b, "Your profile mentions: %s, which overlaps with the main duties.\n", skills)
	}
	b.WriteString("\nBefore sending, the compensation range, work location and timing still need to be confirmed.\n")
	b.WriteString("Would you have ten minutes this week for a short call?")
	return b.String(), nil
}

func (m *Mock) checklistJSON(job, candidate string) (string, error) {
	type evidence struct {
		Source string `json:"source"`
		Quote  string `json:"quote"`
		Note   string `json:"note,omitempty"`
	}
	type point struct {
		Title            string     `json:"title"`
		Why              string     `json:"why"`
		Evidence         []evidence `json:"evidence"`
		RiskOrGap        string     `json:"risk_or_gap"`
		ConfirmQuestions []string   `json:"confirm_questions"`
	}
	type item struct {
		Text string `json:"text"`
		Must bool   `json:"must"`
	}

	jobQuote := excerpt(job, 60)
	candidateQuote := excerpt(candidate, 60)

	payload := struct {
		EvidencePoints   []point  `json:"evidence_points"`
		Checklist        []item   `json:"checklist"`
		ConfirmQuestions []string `json:"confirm_questions"`
	}{
		EvidencePoints: []point{{
			Title: "Experience close to the main duties",
			Why:   "The candidate's background overlaps with what the posting asks for, so ramp-up should be fast.",
			Evidence: []evidence{
				{Source: "job", Quote: jobQuote},
				{Source: "candidate", Quote: candidateQuote},
			},
			RiskOrGap:        "Exact scope of responsibility still unknown.",
			ConfirmQuestions: []string{"What was the scope of your most recent comparable role?"},
		}},
		Checklist: []item{
			{Text: "Confirm the compensation range (lower and upper bound)", Must: true},
			{Text: "Confirm work location and remote policy", Must: true},
			{Text: "Confirm the desired start date", Must: true},
			{Text: "Ask the employer for the role's success metrics", Must: false},
		},
		ConfirmQuestions: []string{
			"What is your acceptable office-attendance frequency?",
			"What compensation floor would make this worth a conversation?",
		},
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal mock payload: %w", err)
	}
	return string(data), nil
}

// block returns the content between the begin and end fence lines, or an
// empty string when the fences are absent. The markers include the adjacent
// newline so that prose mentioning a marker does not match.
func block(s, begin, end string) string {
	start := strings.Index(s, begin)
	if start == -1 {
		return ""
	}
	start += len(begin)
	stop := strings.Index(s[start:], end)
	if stop == -1 {
		return strings.TrimSpace(s[start:])
	}
	return strings.TrimSpace(s[start : start+stop])
}

// labeledValue returns the remainder of the first line starting with label.
func labeledValue(s, label string) string {
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if rest, ok := strings.CutPrefix(line, label); ok {
			return excerpt(rest, 80)
		}
	}
	return ""
}

// excerpt compacts whitespace and cuts the text to at most limit runes.
func excerpt(s string, limit int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
