package services

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vsinha/reorder/pkg/domain/entities"
)

// DefaultThresholdMultiplier is the multiple of average consumption that
// stock plus requested quantity may reach before an order is needed
var DefaultThresholdMultiplier = decimal.NewFromInt(2)

// DecisionEngine evaluates reorder decisions against a reference table
type DecisionEngine struct {
	multiplier decimal.Decimal
}

// NewDecisionEngine creates an engine using the default threshold multiplier
func NewDecisionEngine() *DecisionEngine {
	return &DecisionEngine{
		multiplier: DefaultThresholdMultiplier,
	}
}

// Decide checks whether the requested quantity calls for a new order.
// The table is only read.
func (e *DecisionEngine) Decide(table *entities.ReferenceTable, request entities.DecisionRequest) (entities.DecisionContext, error) {
	if err := request.Validate(); err != nil {
		return entities.DecisionContext{}, err
	}
	if table == nil {
		return entities.DecisionContext{}, fmt.Errorf("reference table is not loaded")
	}

	record, found := table.Lookup(request.ItemCode)
	if !found {
		return entities.DecisionContext{}, &entities.ItemNotFoundError{ItemCode: request.ItemCode}
	}

	stock := request.Stock.Decimal
	requested := request.Requested.Decimal
	avg := record.AvgConsume.Abs()
	total := stock.Add(requested)
	threshold := avg.Mul(e.multiplier)

	// The boundary is inclusive on the no-order side
	decision := entities.OrderNeeded
	if total.LessThanOrEqual(threshold) {
		decision = entities.OrderNotNeeded
	}

	return entities.DecisionContext{
		ItemCode:   record.ItemCode,
		Stock:      stock,
		Requested:  requested,
		AvgConsume: avg,
		Total:      total,
		Threshold:  threshold,
		Decision:   decision,
	}, nil
}
