package commands

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/vsinha/reorder/pkg/application/services"
	"github.com/vsinha/reorder/pkg/infrastructure/config"
	"github.com/vsinha/reorder/pkg/interfaces/cli/output"
)

// ItemsConfig holds configuration for the items command
type ItemsConfig struct {
	Settings *config.Config
	Format   string
	Out      io.Writer
	Logger   *log.Logger
}

// ItemsCommand prints the whole reference table
type ItemsCommand struct {
	config ItemsConfig
}

// NewItemsCommand creates a new items command with the given configuration
func NewItemsCommand(config ItemsConfig) *ItemsCommand {
	if config.Out == nil {
		config.Out = os.Stdout
	}
	if config.Format == "" {
		config.Format = output.FormatText
	}
	config.Logger = loggerOrDiscard(config.Logger)
	return &ItemsCommand{config: config}
}

// Execute runs the items command
func (c *ItemsCommand) Execute(ctx context.Context) error {
	if err := output.ValidateFormat(c.config.Format, output.FormatText, output.FormatJSON, output.FormatCSV); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	settings := c.config.Settings
	if settings == nil {
		settings = config.Default()
	}

	repo, db, err := openStore(ctx, settings, "", c.config.Logger)
	if err != nil {
		return err
	}
	defer db.Close()

	table, err := services.NewDecisionService(repo).Table(ctx)
	if err != nil {
		return err
	}
	c.config.Logger.Printf("read %d rows from %s", table.Len(), repo.Table())

	return output.WriteItems(c.config.Out, table, c.config.Format)
}
