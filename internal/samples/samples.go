// Package samples ships demo inputs so the form can be exercised without
// pasting real postings or profiles.
package samples

import "github.com/uezu-lgtm/demo8-job-proposal-draft/internal/proposal"

// Set is one coherent job/candidate pairing plus shared past examples.
type Set struct {
	Name         string                    `json:"name"`
	Job          proposal.JobPosting       `json:"job"`
	Candidate    proposal.CandidateProfile `json:"candidate"`
	PastExamples []proposal.PastExample    `json:"past_examples"`
}

// Sets returns the built-in demo pairings. The data is static; callers must
// not mutate the returned slices.
func Sets() []Set {
	return []Set{
		{
			Name: "Backend engineer",
			Job: proposal.JobPosting{
				Title:            "Backend Engineer (Go/Python)",
				Responsibilities: "Design and operate APIs for a B2B placement platform. Own services end to end, from schema design to deployment and on-call.",
				Requirements:     "3+ years of backend development. Production experience with Go or Python. Familiarity with PostgreSQL and container-based deployment.",
				Conditions:       "Hybrid, 2 office days per week. Salary 7-9M JPY depending on experience. Flex time, full social insurance.",
			},
			Candidate: proposal.CandidateProfile{
				Experience:        "5 years of backend development at a payments startup. Led the migration of a monolith to services, owned billing APIs handling 2k rps.",
				Skills:            "Go, Python, PostgreSQL, Kubernetes, Terraform. Comfortable with incident response and mentoring juniors.",
				DesiredConditions: "Prefers mostly-remote. Wants a role with architectural ownership. Target salary 8M JPY or above.",
			},
			PastExamples: pastProposals(),
		},
		{
			Name: "Frontend engineer",
			Job: proposal.JobPosting{
				Title:            "Frontend Engineer (React)",
				Responsibilities: "Build the customer-facing dashboard, improve page performance and accessibility, work closely with design.",
				Requirements:     "2+ years with React and TypeScript. Experience owning a design-system component library is a plus.",
				Conditions:       "Full remote within the country. Salary 6-8M JPY. Hardware budget and conference support.",
			},
			Candidate: proposal.CandidateProfile{
				Experience:        "4 years of frontend work at an e-commerce company. Rebuilt the checkout flow, improving conversion by 12%.",
				Skills:            "React, TypeScript, Next.js, Storybook, Playwright. Some Node.js backend experience.",
				DesiredConditions: "Remote only. Interested in accessibility work. Wants to avoid heavy on-call.",
			},
			PastExamples: pastProposals(),
		},
	}
}

func pastProposals() []proposal.PastExample {
	return []proposal.PastExample{
		{Text: "Thank you for registering with us. Based on your experience running billing systems, I would like to introduce a role where that background maps directly onto the team's current priorities. The hiring manager is particularly interested in your incident-response experience. Would you be open to a short call this week to go over the details?"},
		{Text: "I am reaching out about a position that matches the preferences you shared: mostly-remote, with clear architectural ownership. Before sending your profile I would like to confirm your availability and target compensation. Could you share two or three time slots that suit you?"},
	}
}
