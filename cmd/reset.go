package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/mindcheck/internal/config"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear assessment history",
	Long:  "Delete stored submissions and session events. --keep retains the N most recent submissions.",
	RunE: func(cmd *cobra.Command, args []string) error {
		keep, _ := cmd.Flags().GetInt("keep")
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			return fmt.Errorf("refusing to delete history without --yes")
		}

		cfg, err := config.Load(cmd.Flags())
		if err != nil {
			return err
		}
		s, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.EventRepo().Prune(cmd.Context(), keep); err != nil {
			return fmt.Errorf("prune history: %w", err)
		}

		if keep > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "History trimmed to the %d most recent submissions.\n", keep)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
		}
		return nil
	},
}

func init() {
	resetCmd.Flags().Int("keep", 0, "Number of most recent submissions to keep")
	resetCmd.Flags().Bool("yes", false, "Confirm deletion")
}
