package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/mindcheck/internal/app"
)

var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Take the assessment in the terminal",
	RunE:  runAssess,
}

func init() {
	assessCmd.Flags().Bool("no-splash", false, "Skip the splash screen")
}

// runAssess opens the store, builds dependencies, and launches the TUI.
func runAssess(cmd *cobra.Command, args []string) error {
	rt, err := setup(cmd, true)
	if err != nil {
		return err
	}
	defer rt.Close()

	noSplash, _ := cmd.Flags().GetBool("no-splash")
	rt.logger.Info("starting assessment UI",
		zap.String("endpoint", rt.cfg.Endpoint),
		zap.Bool("history", rt.store != nil),
	)

	return app.Run(cmd.Context(), app.Options{
		Controller: rt.ctl,
		EventRepo:  rt.EventRepo(),
		SkipSplash: noSplash,
		Logger:     rt.logger.Named("tui"),
	})
}
