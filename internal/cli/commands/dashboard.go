package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"cqv/internal/config"
	"cqv/internal/domain"
	"cqv/internal/loader"
	"cqv/internal/session"
	"cqv/internal/ui"
)

// DashboardCommand handles the dashboard command
type DashboardCommand struct {
	config *config.Config
	loader *loader.Loader
	store  *session.Store
	log    *zap.Logger
}

// NewDashboardCommand creates a new DashboardCommand
func NewDashboardCommand(cfg *config.Config, l *loader.Loader, store *session.Store, log *zap.Logger) *DashboardCommand {
	return &DashboardCommand{
		config: cfg,
		loader: l,
		store:  store,
		log:    log,
	}
}

// Execute runs the command
func (dc *DashboardCommand) Execute(cmd *cobra.Command, args []string) error {
	// Opening a dashboard replaces whatever the previous view left behind
	if err := dc.store.Clear(); err != nil {
		return err
	}

	refs := args
	if dc.config.Flags.Index {
		if len(args) != 1 {
			return fmt.Errorf("--index takes exactly one manifest reference")
		}
		files, err := dc.loader.LoadIndex(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if err := dc.store.Put(session.KeyIndexURL, args[0]); err != nil {
			return fmt.Errorf("persist session state: %w", err)
		}
		if err := dc.store.Put(session.KeyIndexFiles, files); err != nil {
			return fmt.Errorf("persist session state: %w", err)
		}
		refs = files
	}

	progress := ui.NewFetchProgress(len(refs))
	fetched := dc.loader.FetchAll(cmd.Context(), refs, progress.Update)
	progress.Finish()

	if len(fetched) == 0 {
		return fmt.Errorf("no result files could be loaded")
	}

	docs := domain.NewDocumentSet()
	for _, f := range fetched {
		docs.Add(f.Filename, f.Doc)
	}

	dashboard := ui.NewDashboard(docs, dc.log)
	return dashboard.Run()
}
