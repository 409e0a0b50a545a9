// Package normalize turns raw backend output into structured draft results.
// It is total: any input text under any artifact kind yields a result, never
// an error. Unparseable checklist output degrades to a raw note.
//
// Conventions: checklist lines are recognized by literal "Must:" / "Should:"
// prefixes (case insensitive, list markers allowed); quotes are spans inside
// ASCII double quotes or Japanese corner brackets.
package normalize

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/uezu-lgtm/demo8-job-proposal-draft/internal/proposal"
)

// Result normalizes raw backend output for the requested artifact kind.
func Result(kind proposal.Kind, raw string, req proposal.DraftRequest) *proposal.DraftResult {
	res := &proposal.DraftResult{Kind: kind}

	if kind != proposal.KindChecklist {
		res.Text = Whitespace(raw)
		return res
	}

	if fromJSON(res, raw, req) {
		return res
	}
	if fromLines(res, raw, req) {
		return res
	}

	res.Note = strings.TrimSpace(raw)
	return res
}

// Whitespace trims the text, drops trailing spaces per line and collapses
// runs of blank lines. Length is advisory only; nothing is cut.
func Whitespace(s string) string {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(lines))
	blank := 0
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if strings.TrimSpace(line) == "" {
			blank++
			if blank > 1 {
				continue
			}
			out = append(out, "")
			continue
		}
		blank = 0
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

// payload mirrors the JSON schema the checklist prompt instructs the model
// to produce. Decoding is deliberately loose: models return string booleans
// and numbers often enough.
type payload struct {
	EvidencePoints []struct {
		Title    string `mapstructure:"title"`
		Why      string `mapstructure:"why"`
		Evidence []struct {
			Source string `mapstructure:"source"`
			Quote  string `mapstructure:"quote"`
			Note   string `mapstructure:"note"`
		} `mapstructure:"evidence"`
		RiskOrGap        string   `mapstructure:"risk_or_gap"`
		ConfirmQuestions []string `mapstructure:"confirm_questions"`
	} `mapstructure:"evidence_points"`
	Checklist        []checklistEntry `mapstructure:"checklist"`
	ConfirmQuestions []string         `mapstructure:"confirm_questions"`
}

type checklistEntry struct {
	Text string `mapstructure:"text"`
	Must bool   `mapstructure:"must"`
}

func fromJSON(res *proposal.DraftResult, raw string, req proposal.DraftRequest) bool {
	cleaned := ExtractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return false
	}

	var p payload
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &p,
		WeaklyTypedInput: true,
	})
	if err != nil || dec.Decode(data) != nil {
		return false
	}

	var rationale []string
	for _, point := range p.EvidencePoints {
		line := strings.TrimSpace(point.Title)
		if why := strings.TrimSpace(point.Why); why != "" {
			if line != "" {
				line += ": "
			}
			line += why
		}
		if risk := strings.TrimSpace(point.RiskOrGap); risk != "" {
			line += " (risk: " + risk + ")"
		}
		if line != "" {
			rationale = append(rationale, "- "+line)
		}
		for _, ev := range point.Evidence {
			quote := strings.TrimSpace(ev.Quote)
			note := strings.TrimSpace(ev.Note)
			if quote == "" && note == "" {
				continue
			}
			res.Evidence = append(res.Evidence, proposal.Evidence{
				Quote:  quote,
				Source: attributedSource(ev.Source, quote, req),
				Note:   note,
			})
		}
		res.Questions = append(res.Questions, trimmedAll(point.ConfirmQuestions)...)
	}

	for _, item := range p.Checklist {
		text := strings.TrimSpace(item.Text)
		if text == "" {
			continue
		}
		priority := proposal.PriorityShould
		if item.Must {
			priority = proposal.PriorityMust
		}
		res.Checklist = append(res.Checklist, proposal.ChecklistItem{Text: text, Priority: priority})
	}
	res.Questions = append(res.Questions, trimmedAll(p.ConfirmQuestions)...)
	res.Text = strings.Join(rationale, "\n")

	// A decodable JSON object with none of the expected structure is not a
	// successful parse.
	return res.Text != "" || len(res.Evidence) > 0 || len(res.Checklist) > 0 || len(res.Questions) > 0
}

var (
	mustLine   = regexp.MustCompile(`(?i)^(?:[-*\d.)\s]|\[[ x]\])*must\s*:\s*(.+)$`)
	shouldLine = regexp.MustCompile(`(?i)^(?:[-*\d.)\s]|\[[ x]\])*should\s*:\s*(.+)$`)
	quoteSpan  = regexp.MustCompile(`"([^"\n]{2,})"|「([^」\n]{2,})」`)
)

func fromLines(res *proposal.DraftResult, raw string, req proposal.DraftRequest) bool {
	for _, m := range quoteSpan.FindAllStringSubmatch(raw, -1) {
		quote := m[1]
		if quote == "" {
			quote = m[2]
		}
		res.Evidence = append(res.Evidence, proposal.Evidence{
			Quote:  quote,
			Source: attributedSource("", quote, req),
		})
	}

	lines := strings.Split(raw, "\n")
	found := false
	for _, line := range lines {
		if mustLine.MatchString(line) || shouldLine.MatchString(line) {
			found = true
			break
		}
	}

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if m := mustLine.FindStringSubmatch(line); m != nil {
			res.Checklist = append(res.Checklist, proposal.ChecklistItem{
				Text:     strings.TrimSpace(m[1]),
				Priority: proposal.PriorityMust,
			})
			continue
		}
		if m := shouldLine.FindStringSubmatch(line); m != nil {
			res.Checklist = append(res.Checklist, proposal.ChecklistItem{
				Text:     strings.TrimSpace(m[1]),
				Priority: proposal.PriorityShould,
			})
			continue
		}
		// Once the checklist convention is established, remaining list
		// lines are free-standing follow-up questions.
		if rest, ok := strings.CutPrefix(line, "- "); ok && found {
			res.Questions = append(res.Questions, strings.TrimSpace(rest))
		}
	}

	return found || len(res.Evidence) > 0
}

// attributedSource validates the model-reported source, falling back to a
// best-effort substring match against the request inputs. Quotes that match
// nothing stay unattributed.
func attributedSource(reported, quote string, req proposal.DraftRequest) proposal.Source {
	switch proposal.Source(strings.ToLower(strings.TrimSpace(reported))) {
	case proposal.SourceJob:
		return proposal.SourceJob
	case proposal.SourceCandidate:
		return proposal.SourceCandidate
	case proposal.SourcePast:
		return proposal.SourcePast
	}

	if quote == "" {
		return proposal.SourceUnknown
	}
	if strings.Contains(req.Job.Text(), quote) {
		return proposal.SourceJob
	}
	if strings.Contains(req.Candidate.Text(), quote) {
		return proposal.SourceCandidate
	}
	for _, ex := range req.PastExamples {
		if strings.Contains(ex.Text, quote) {
			return proposal.SourcePast
		}
	}
	return proposal.SourceUnknown
}

// ExtractJSON strips reasoning blocks and code fences, then narrows the text
// to the outermost JSON object. Best effort; the caller decides whether the
// remainder parses.
func ExtractJSON(raw string) string {
	s := strings.TrimSpace(raw)

	// Reasoning models prepend a think block.
	if _, after, found := strings.Cut(s, "</think>"); found {
		s = strings.TrimSpace(after)
	}

	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSpace(s)
		if idx := strings.LastIndex(s, "```"); idx != -1 {
			s = s[:idx]
		}
	}
	s = strings.Trim(s, "`")
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}") {
		return s
	}
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start != -1 && end > start {
		return strings.TrimSpace(s[start : end+1])
	}
	return s
}

func trimmedAll(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
