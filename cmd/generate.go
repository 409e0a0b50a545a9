package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/uezu-lgtm/demo8-job-proposal-draft/internal/logger"
	"github.com/uezu-lgtm/demo8-job-proposal-draft/internal/proposal"
	"github.com/uezu-lgtm/demo8-job-proposal-draft/internal/samples"
)

var (
	generateJobFile       string
	generateCandidateFile string
	generatePastFiles     []string
	generateSample        string
	generateKind          string
	generateMarkdown      bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a single draft from files or a built-in sample and print it",
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
		if err != nil {
			return fmt.Errorf("creating logger: %w", err)
		}
		defer log.Sync() //nolint:errcheck

		config, err := getConfig()
		if err != nil {
			return fmt.Errorf("parsing configuration: %w", err)
		}

		req, err := buildRequest()
		if err != nil {
			return err
		}

		kind, err := pickKind(generateKind)
		if err != nil {
			return err
		}
		req.Kind = kind

		d, _, _, err := newDrafter(cmd.Context(), config, log)
		if err != nil {
			return err
		}

		result, err := d.Generate(cmd.Context(), req)
		if err != nil {
			return err
		}

		if generateMarkdown {
			fmt.Fprintln(cmd.OutOrStdout(), result.AsMarkdown())
			return nil
		}

		encoded, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding result: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(encoded))

		return nil
	},
}

// buildRequest assembles the draft input either from a built-in sample or
// from files given on the command line.
func buildRequest() (proposal.DraftRequest, error) {
	var req proposal.DraftRequest

	if generateSample != "" {
		set, err := findSample(generateSample)
		if err != nil {
			return req, err
		}
		req.Job = set.Job
		req.Candidate = set.Candidate
		req.PastExamples = set.PastExamples
		return req, nil
	}

	if generateJobFile == "" || generateCandidateFile == "" {
		return req, fmt.Errorf("either --sample or both --job and --candidate are required")
	}

	if err := readJSONFile(generateJobFile, &req.Job); err != nil {
		return req, fmt.Errorf("reading job posting: %w", err)
	}
	if err := readJSONFile(generateCandidateFile, &req.Candidate); err != nil {
		return req, fmt.Errorf("reading candidate profile: %w", err)
	}

	for _, path := range generatePastFiles {
		raw, err := os.ReadFile(path)
		if err != nil {
			return req, fmt.Errorf("reading past example: %w", err)
		}
		req.PastExamples = append(req.PastExamples, proposal.PastExample{Text: string(raw)})
	}

	return req, nil
}

func findSample(name string) (samples.Set, error) {
	sets := samples.Sets()
	for _, set := range sets {
		if strings.EqualFold(set.Name, name) {
			return set, nil
		}
	}

	known := make([]string, 0, len(sets))
	for _, set := range sets {
		known = append(known, set.Name)
	}
	return samples.Set{}, fmt.Errorf("unknown sample %q (available: %s)", name, strings.Join(known, ", "))
}

func readJSONFile(path string, v any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// pickKind resolves the output kind, asking interactively when the flag is
// absent.
func pickKind(flag string) (proposal.Kind, error) {
	if flag != "" {
		kind, ok := proposal.ParseKind(flag)
		if !ok {
			return "", fmt.Errorf("unknown output kind %q", flag)
		}
		return kind, nil
	}

	picker := promptui.Select{
		Label: "Output kind",
		Items: []string{string(proposal.KindShort), string(proposal.KindLong), string(proposal.KindChecklist)},
	}
	_, choice, err := picker.Run()
	if err != nil {
		return "", fmt.Errorf("selecting output kind: %w", err)
	}

	kind, ok := proposal.ParseKind(choice)
	if !ok {
		return "", fmt.Errorf("unknown output kind %q", choice)
	}
	return kind, nil
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVar(&generateJobFile, "job", "", "path to a JSON file with the job posting")
	generateCmd.Flags().StringVar(&generateCandidateFile, "candidate", "", "path to a JSON file with the candidate profile")
	generateCmd.Flags().StringArrayVar(&generatePastFiles, "past", nil, "path to a plain-text past proposal (repeatable)")
	generateCmd.Flags().StringVar(&generateSample, "sample", "", "use a built-in sample pairing by name")
	generateCmd.Flags().StringVarP(&generateKind, "kind", "k", "", "output kind: short, long or checklist (asked interactively when omitted)")
	generateCmd.Flags().BoolVarP(&generateMarkdown, "markdown", "m", false, "print the draft as markdown instead of JSON")
}
