package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Decision represents the binary outcome of a reorder check
type Decision int

const (
	// OrderNotNeeded is shown as the affirmative "YES" outcome
	OrderNotNeeded Decision = iota
	// OrderNeeded is shown as the attention "NO" outcome
	OrderNeeded
)

// String method for Decision enum
func (d Decision) String() string {
	switch d {
	case OrderNotNeeded:
		return "ORDER_NOT_NEEDED"
	case OrderNeeded:
		return "ORDER_NEEDED"
	default:
		return "Unknown"
	}
}

// Label returns the operator-facing text. The label polarity is inverted
// relative to the order flag: no order needed reads "YES".
func (d Decision) Label() string {
	if d == OrderNotNeeded {
		return "YES"
	}
	return "NO"
}

// Affirmative reports whether the decision is displayed success-styled
func (d Decision) Affirmative() bool {
	return d == OrderNotNeeded
}

// DecisionRequest carries the user-entered inputs for one evaluation.
// Quantities are nullable so an unset field can be told apart from zero.
type DecisionRequest struct {
	ItemCode  ItemCode
	Stock     decimal.NullDecimal
	Requested decimal.NullDecimal
}

// NewDecisionRequest builds a request with both quantities set
func NewDecisionRequest(itemCode ItemCode, stock, requested decimal.Decimal) DecisionRequest {
	return DecisionRequest{
		ItemCode:  itemCode,
		Stock:     decimal.NewNullDecimal(stock),
		Requested: decimal.NewNullDecimal(requested),
	}
}

// Validate checks presence and sign of the inputs
func (r DecisionRequest) Validate() error {
	if string(r.ItemCode) == "" {
		return fmt.Errorf("%w: item code is required", ErrMissingInput)
	}
	if !r.Stock.Valid {
		return fmt.Errorf("%w: stock quantity is required", ErrMissingInput)
	}
	if !r.Requested.Valid {
		return fmt.Errorf("%w: requested quantity is required", ErrMissingInput)
	}
	if r.Stock.Decimal.IsNegative() {
		return fmt.Errorf("%w: stock quantity cannot be negative, got %s", ErrNegativeQuantity, r.Stock.Decimal)
	}
	if r.Requested.Decimal.IsNegative() {
		return fmt.Errorf("%w: requested quantity cannot be negative, got %s", ErrNegativeQuantity, r.Requested.Decimal)
	}
	return nil
}

// DecisionContext is the result of one evaluation, held by the caller
// for display. Nothing about it is persisted.
type DecisionContext struct {
	ItemCode   ItemCode
	Stock      decimal.Decimal
	Requested  decimal.Decimal
	AvgConsume decimal.Decimal
	Total      decimal.Decimal
	Threshold  decimal.Decimal
	Decision   Decision
}

// Summary returns a one-line description of the evaluation
func (c DecisionContext) Summary() string {
	return fmt.Sprintf("%s: stock %s + requested %s = %s vs threshold %s (2 x %s) -> %s",
		c.ItemCode, c.Stock, c.Requested, c.Total, c.Threshold, c.AvgConsume, c.Decision.Label())
}
