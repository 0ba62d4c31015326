package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/mindcheck/internal/app"
	"github.com/abhisek/mindcheck/internal/catalog"
	"github.com/abhisek/mindcheck/internal/config"
	"github.com/abhisek/mindcheck/internal/logging"
	"github.com/abhisek/mindcheck/internal/scoring"
	"github.com/abhisek/mindcheck/internal/store"
	"github.com/abhisek/mindcheck/internal/wizard"
)

// runtime bundles the services a command works with.
type runtime struct {
	cfg    *config.Config
	logger *zap.Logger

	// store is nil when history is disabled.
	store *store.Store
	ctl   *wizard.Controller
}

// Close releases the store and flushes the logger.
func (r *runtime) Close() {
	if r.store != nil {
		if err := r.store.Close(); err != nil {
			r.logger.Warn("close store", zap.Error(err))
		}
	}
	_ = r.logger.Sync()
}

// EventRepo returns the history repository, or nil when history is off.
func (r *runtime) EventRepo() store.EventRepo {
	if r.store == nil {
		return nil
	}
	return r.store.EventRepo()
}

// setup loads the configuration, builds the logger, opens the history
// store and wires a wizard controller to the scoring client. Interactive
// commands log to the configured file; headless ones log to stderr.
func setup(cmd *cobra.Command, interactive bool) (*runtime, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, err
	}

	logPath := ""
	if interactive {
		logPath = cfg.LogFile
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, logPath)
	if err != nil {
		return nil, err
	}
	rt := &runtime{cfg: cfg, logger: logger}

	client, err := scoring.NewClient(cfg.Endpoint,
		scoring.WithTimeout(cfg.Timeout),
		scoring.WithLogger(logger.Named("scoring")),
	)
	if err != nil {
		rt.Close()
		return nil, err
	}

	var scorer scoring.Scorer = client
	opts := []wizard.Option{wizard.WithLogger(logger.Named("wizard"))}

	if !cfg.NoHistory {
		st, err := openStore(cfg)
		if err != nil {
			rt.Close()
			return nil, err
		}
		rt.store = st
		scorer = scoring.WithRecording(client, st.EventRepo(), logger.Named("history"))
		opts = append(opts, wizard.WithObserver(app.SessionRecorder(st.EventRepo(), logger.Named("history"))))
	}

	rt.ctl = wizard.New(catalog.Default(), scorer, opts...)
	return rt, nil
}

// openStore opens the history database at the configured path.
func openStore(cfg *config.Config) (*store.Store, error) {
	dbPath, err := store.ResolvePath(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}
