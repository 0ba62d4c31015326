package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mindcheck/internal/config"
	"github.com/abhisek/mindcheck/internal/screens/history"
	"github.com/abhisek/mindcheck/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent submission attempts",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		session, _ := cmd.Flags().GetString("session")

		cfg, err := config.Load(cmd.Flags())
		if err != nil {
			return err
		}
		s, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		subs, err := s.EventRepo().Submissions(cmd.Context(), store.QueryOpts{Limit: limit, SessionID: session})
		if err != nil {
			return fmt.Errorf("query submissions: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(subs) == 0 {
			fmt.Fprintln(out, "No submissions found.")
			return nil
		}

		// Header.
		fmt.Fprintf(out, "%-5s  %-19s  %-36s  %-7s  %s\n",
			"ID", "Timestamp", "Session", "Ms", "Outcome")
		fmt.Fprintln(out, strings.Repeat("─", 100))

		for _, e := range subs {
			fmt.Fprintf(out, "%-5d  %-19s  %-36s  %-7d  %s\n",
				e.Sequence,
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				e.SessionID,
				e.LatencyMs,
				history.Outcome(e.SubmissionEventData),
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum number of submissions to show")
	historyCmd.Flags().String("session", "", "Only show submissions of this session")
}
