package commands

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/vsinha/reorder/pkg/application/services"
	"github.com/vsinha/reorder/pkg/domain/entities"
	"github.com/vsinha/reorder/pkg/infrastructure/config"
	"github.com/vsinha/reorder/pkg/infrastructure/spreadsheet"
	"github.com/vsinha/reorder/pkg/interfaces/cli/output"
)

// SyncConfig holds configuration for the sync command
type SyncConfig struct {
	Settings *config.Config
	Strategy string
	// Table overrides Settings.Table when set
	Table string
	// File bypasses the data directory lookup when set
	File   string
	DryRun bool
	Out    io.Writer
	Logger *log.Logger
}

// SyncCommand loads the input spreadsheet into the reference table
type SyncCommand struct {
	config SyncConfig
}

// NewSyncCommand creates a new sync command with the given configuration
func NewSyncCommand(config SyncConfig) *SyncCommand {
	if config.Out == nil {
		config.Out = os.Stdout
	}
	config.Logger = loggerOrDiscard(config.Logger)
	return &SyncCommand{config: config}
}

// Execute runs the sync command
func (c *SyncCommand) Execute(ctx context.Context) error {
	strategy, err := entities.ParseSyncStrategy(c.config.Strategy)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	settings := c.config.Settings
	if settings == nil {
		settings = config.Default()
	}

	// Input problems abort before the store is touched
	sourceFile, err := c.resolveInputFile(settings)
	if err != nil {
		return err
	}

	loader, err := spreadsheet.NewLoaderWithHeaderRow(settings.HeaderRow)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	repo, db, err := openStore(ctx, settings, c.config.Table, c.config.Logger)
	if err != nil {
		return err
	}
	defer db.Close()

	service := services.NewSyncService(repo, loader, repo.Table(), c.config.Logger)
	result, err := service.Run(ctx, services.SyncRequest{
		Strategy:   strategy,
		SourceFile: sourceFile,
		DryRun:     c.config.DryRun,
	})
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	return output.WriteSyncSummary(c.config.Out, result, settings.Verbose)
}

func (c *SyncCommand) resolveInputFile(settings *config.Config) (string, error) {
	if c.config.File != "" {
		if _, err := os.Stat(c.config.File); err != nil {
			return "", fmt.Errorf("input file not found: %s", c.config.File)
		}
		return c.config.File, nil
	}
	return spreadsheet.Locate(settings.DataDir, spreadsheet.NormalizeExtensions(settings.Extensions))
}
