package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"cqv/internal/config"
	"cqv/internal/loader"
	"cqv/internal/query"
	"cqv/internal/session"
	"cqv/internal/ui"
)

// ViewCommand handles the view command
type ViewCommand struct {
	config    *config.Config
	loader    *loader.Loader
	store     *session.Store
	formatter *ui.Formatter
	log       *zap.Logger
}

// NewViewCommand creates a new ViewCommand
func NewViewCommand(cfg *config.Config, l *loader.Loader, store *session.Store, formatter *ui.Formatter, log *zap.Logger) *ViewCommand {
	return &ViewCommand{
		config:    cfg,
		loader:    l,
		store:     store,
		formatter: formatter,
		log:       log,
	}
}

// Execute runs the command
func (vc *ViewCommand) Execute(cmd *cobra.Command, args []string) error {
	ref, err := vc.resolveRef(args)
	if err != nil {
		return err
	}

	ticket := vc.store.BeginLoad()

	raw, err := vc.loader.LoadRaw(cmd.Context(), ref)
	if err != nil {
		return err
	}
	doc, err := loader.Parse(raw, ref)
	if err != nil {
		return err
	}

	// Schema validation is non-fatal: the document is shown either way,
	// with its violations listed alongside.
	var violations []loader.Violation
	if !vc.config.NoValidate {
		validator := loader.NewValidator(vc.loader, vc.config.SchemaRef)
		res, verr := validator.Validate(cmd.Context(), raw)
		if verr != nil {
			vc.log.Warn("schema validation unavailable", zap.Error(verr))
		} else if !res.IsValid {
			violations = res.Errors
		}
	}

	filename := loader.Filename(ref)
	kept, err := vc.store.CompleteLoad(ticket, doc, filename)
	if err != nil {
		return fmt.Errorf("persist session state: %w", err)
	}
	if !kept {
		// A newer load finished while this one was in flight; it wins.
		vc.log.Warn("discarding stale load", zap.String("ref", ref))
		return nil
	}
	if err := vc.store.Put(session.KeyFileURL, ref); err != nil {
		return fmt.Errorf("persist session state: %w", err)
	}
	if err := vc.store.Put(session.KeyValidationErrors, violations); err != nil {
		return fmt.Errorf("persist session state: %w", err)
	}

	params := vc.resolveParams()

	if vc.config.Flags.Plain {
		vc.formatter.PrintSummary(filename, doc)
		if len(violations) > 0 {
			vc.formatter.PrintValidation(ref, &loader.ValidationResult{IsValid: false, Errors: violations})
		}
		vc.formatter.PrintBuckets(query.Apply(doc.Results, params))
		return nil
	}

	watcher := session.NewWatcher(vc.store, vc.config.WatchInterval, vc.log)
	viewer := ui.NewViewer(doc, filename, params, violations, vc.store, watcher, vc.log)
	return viewer.Run()
}

// resolveRef picks the document reference: the argument, or the session's
// current file URL when re-opening without one.
func (vc *ViewCommand) resolveRef(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	var ref string
	ok, err := vc.store.Get(session.KeyFileURL, &ref)
	if err != nil {
		return "", err
	}
	if !ok || ref == "" {
		return "", fmt.Errorf("no document given and no previous session to reopen")
	}
	return ref, nil
}

// resolveParams merges view parameters: one-shot session params first,
// explicit flags on top, everything validated with fallback-to-default.
func (vc *ViewCommand) resolveParams() query.Params {
	var raw query.RawParams
	if ok, err := vc.store.Take(session.KeyInitialParams, &raw); err != nil {
		vc.log.Warn("ignoring unreadable initial params", zap.Error(err))
	} else if ok {
		vc.log.Debug("applying one-shot initial params")
	}

	flags := vc.config.Flags
	if flags.Status != "" {
		raw.Status = flags.Status
	}
	if flags.Search != "" {
		raw.Search = flags.Search
	}
	if flags.GroupBy != "" {
		raw.GroupBy = flags.GroupBy
	}
	if flags.SortBy != "" {
		raw.SortBy = flags.SortBy
	}
	if flags.SortOrder != "" {
		raw.SortOrder = flags.SortOrder
	}

	return query.ParseParams(raw, vc.log)
}
