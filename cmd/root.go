package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/abhisek/mindcheck/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "mindcheck",
	Short: "Student mental health self-assessment",
	Long: "MindCheck walks you through a short questionnaire in the terminal and\n" +
		"sends your answers to a screening service. It is not a diagnosis.",
	SilenceUsage: true,
	RunE:         runAssess,
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	config.RegisterFlags(rootCmd.PersistentFlags())
	rootCmd.Flags().Bool("no-splash", false, "Skip the splash screen")

	rootCmd.AddCommand(assessCmd)
	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}
