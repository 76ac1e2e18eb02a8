package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"cqv/internal/config"
	"cqv/internal/loader"
	"cqv/internal/ui"
)

// ValidateCommand handles the validate command
type ValidateCommand struct {
	config    *config.Config
	loader    *loader.Loader
	formatter *ui.Formatter
}

// NewValidateCommand creates a new ValidateCommand
func NewValidateCommand(cfg *config.Config, l *loader.Loader, formatter *ui.Formatter) *ValidateCommand {
	return &ValidateCommand{
		config:    cfg,
		loader:    l,
		formatter: formatter,
	}
}

// Execute runs the command
func (vc *ValidateCommand) Execute(cmd *cobra.Command, args []string) error {
	ref := args[0]

	raw, err := vc.loader.LoadRaw(cmd.Context(), ref)
	if err != nil {
		return err
	}

	validator := loader.NewValidator(vc.loader, vc.config.SchemaRef)
	res, err := validator.Validate(cmd.Context(), raw)
	if err != nil {
		return err
	}

	vc.formatter.PrintValidation(ref, res)
	if !res.IsValid {
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("%s failed schema validation", ref)
	}
	return nil
}
