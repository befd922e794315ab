package commands

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vsinha/reorder/pkg/application/services"
	"github.com/vsinha/reorder/pkg/domain/entities"
	"github.com/vsinha/reorder/pkg/infrastructure/config"
	"github.com/vsinha/reorder/pkg/interfaces/cli/output"
)

// DecideConfig holds configuration for the decide command. Quantities are
// kept as entered so an empty flag reads as missing rather than zero.
type DecideConfig struct {
	Settings  *config.Config
	ItemCode  string
	Stock     string
	Requested string
	Format    string
	Out       io.Writer
	Logger    *log.Logger
}

// DecideCommand evaluates one reorder decision against the stored table
type DecideCommand struct {
	config DecideConfig
}

// NewDecideCommand creates a new decide command with the given configuration
func NewDecideCommand(config DecideConfig) *DecideCommand {
	if config.Out == nil {
		config.Out = os.Stdout
	}
	if config.Format == "" {
		config.Format = output.FormatText
	}
	config.Logger = loggerOrDiscard(config.Logger)
	return &DecideCommand{config: config}
}

// Execute runs the decide command
func (c *DecideCommand) Execute(ctx context.Context) error {
	if err := output.ValidateFormat(c.config.Format, output.FormatText, output.FormatJSON); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	request, err := c.buildRequest()
	if err != nil {
		return err
	}
	if err := request.Validate(); err != nil {
		return err
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

	service := services.NewDecisionService(repo)
	result, err := service.Decide(ctx, request)
	if err != nil {
		return err
	}
	c.config.Logger.Print(result.Summary())

	return output.WriteDecision(c.config.Out, result, c.config.Format)
}

func (c *DecideCommand) buildRequest() (entities.DecisionRequest, error) {
	stock, err := parseQuantity("stock", c.config.Stock)
	if err != nil {
		return entities.DecisionRequest{}, err
	}
	requested, err := parseQuantity("requested", c.config.Requested)
	if err != nil {
		return entities.DecisionRequest{}, err
	}

	return entities.DecisionRequest{
		ItemCode:  entities.ItemCode(strings.TrimSpace(c.config.ItemCode)),
		Stock:     stock,
		Requested: requested,
	}, nil
}

// parseQuantity reads a decimal flag value; blank stays unset
func parseQuantity(name, raw string) (decimal.NullDecimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.NullDecimal{}, nil
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("invalid %s quantity %q: %w", name, raw, err)
	}
	return decimal.NewNullDecimal(value), nil
}
