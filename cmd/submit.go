package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/mindcheck/internal/catalog"
	"github.com/abhisek/mindcheck/internal/wizard"
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit answers from a JSON file without the UI",
	Long: `Read a JSON object keyed by field name, walk the questionnaire with it and
print the scoring result. Use "-" to read from stdin.

Fields: gender, age, academic_pressure, study_satisfaction, sleep_duration,
dietary_habits, suicidal_thoughts, work_study_hours, financial_stress,
family_mental_history.`,
	RunE: runSubmit,
}

func init() {
	submitCmd.Flags().String("answers", "", "Path to the answers JSON file, or - for stdin (required)")
	_ = submitCmd.MarkFlagRequired("answers")
}

func runSubmit(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("answers")

	answers, err := readAnswers(cmd, path)
	if err != nil {
		return err
	}

	rt, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer rt.Close()

	if err := walk(cmd, rt.ctl, answers); err != nil {
		return err
	}

	snap := rt.ctl.Snapshot()
	if snap.Result == nil {
		return fmt.Errorf("submit: %s", snap.Err)
	}
	printResult(cmd.OutOrStdout(), snap.Result)
	return nil
}

func readAnswers(cmd *cobra.Command, path string) (catalog.AnswerSet, error) {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open answers: %w", err)
		}
		defer f.Close()
		r = f
	}
	return catalog.Default().DecodeAnswers(r)
}

// walk drives the controller through every step the way the UI does,
// submitting on the last one.
func walk(cmd *cobra.Command, ctl *wizard.Controller, answers catalog.AnswerSet) error {
	if err := ctl.Start(); err != nil {
		return err
	}
	for {
		q := ctl.Snapshot().Question
		if err := ctl.RecordAnswer(q.ID, answers[q.ID]); err != nil {
			return fmt.Errorf("record %s: %w", q.Field, err)
		}

		out, err := ctl.Next(cmd.Context())
		switch out {
		case wizard.AdvanceMoved:
			continue
		case wizard.AdvanceSubmit:
			if err != nil && ctl.Snapshot().Err == "" {
				return err
			}
			// A failed submission leaves its user message in the snapshot.
			return nil
		default:
			return fmt.Errorf("answer for %s is incomplete", q.Field)
		}
	}
}

func printResult(w io.Writer, r *wizard.Result) {
	flag := "no"
	if r.HasPotentialDepression {
		flag = "yes"
	}
	fmt.Fprintf(w, "Potential depression: %s\n", flag)
	fmt.Fprintf(w, "Score:                %g\n", r.Score)
	fmt.Fprintf(w, "Message:              %s\n", r.Message)
}
