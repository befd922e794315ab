package services

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/reorder/pkg/domain/entities"
)

func tableOf(records map[entities.ItemCode]int64) *entities.ReferenceTable {
	rows := make([]entities.ReferenceRecord, 0, len(records))
	for code, avg := range records {
		rows = append(rows, entities.ReferenceRecord{ItemCode: code, AvgConsume: decimal.NewFromInt(avg)})
	}
	return entities.NewReferenceTable(rows)
}

func TestDecisionEngine_Boundary(t *testing.T) {
	engine := NewDecisionEngine()
	table := tableOf(map[entities.ItemCode]int64{"A1": 10})

	tests := []struct {
		name      string
		stock     int64
		requested int64
		want      entities.Decision
		wantTotal int64
	}{
		{"total equals threshold", 10, 10, entities.OrderNotNeeded, 20},
		{"total above threshold", 10, 11, entities.OrderNeeded, 21},
		{"nothing on hand", 0, 0, entities.OrderNotNeeded, 0},
		{"well above threshold", 100, 50, entities.OrderNeeded, 150},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := entities.NewDecisionRequest("A1", decimal.NewFromInt(tt.stock), decimal.NewFromInt(tt.requested))
			result, err := engine.Decide(table, request)
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.Decision)
			assert.True(t, result.Total.Equal(decimal.NewFromInt(tt.wantTotal)))
			assert.True(t, result.Threshold.Equal(decimal.NewFromInt(20)))
		})
	}
}

func TestDecisionEngine_SignIndependent(t *testing.T) {
	engine := NewDecisionEngine()
	positive := tableOf(map[entities.ItemCode]int64{"A1": 10})
	negative := tableOf(map[entities.ItemCode]int64{"A1": -10})

	for _, requested := range []int64{0, 5, 10, 11, 30} {
		request := entities.NewDecisionRequest("A1", decimal.NewFromInt(10), decimal.NewFromInt(requested))

		pos, err := engine.Decide(positive, request)
		require.NoError(t, err)
		neg, err := engine.Decide(negative, request)
		require.NoError(t, err)

		assert.Equal(t, pos.Decision, neg.Decision, "requested=%d", requested)
		assert.True(t, neg.AvgConsume.Equal(decimal.NewFromInt(10)))
	}
}

func TestDecisionEngine_FractionalValues(t *testing.T) {
	engine := NewDecisionEngine()
	table := entities.NewReferenceTable([]entities.ReferenceRecord{
		{ItemCode: "F1", AvgConsume: decimal.RequireFromString("2.55")},
	})

	atBoundary := entities.NewDecisionRequest("F1", decimal.RequireFromString("5"), decimal.RequireFromString("0.1"))
	result, err := engine.Decide(table, atBoundary)
	require.NoError(t, err)
	assert.Equal(t, entities.OrderNotNeeded, result.Decision)

	overBoundary := entities.NewDecisionRequest("F1", decimal.RequireFromString("5"), decimal.RequireFromString("0.11"))
	result, err = engine.Decide(table, overBoundary)
	require.NoError(t, err)
	assert.Equal(t, entities.OrderNeeded, result.Decision)
}

func TestDecisionEngine_Errors(t *testing.T) {
	engine := NewDecisionEngine()
	table := tableOf(map[entities.ItemCode]int64{"A1": 10})

	_, err := engine.Decide(table, entities.NewDecisionRequest("Z9", decimal.NewFromInt(1), decimal.NewFromInt(1)))
	var notFound *entities.ItemNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, entities.ItemCode("Z9"), notFound.ItemCode)

	_, err = engine.Decide(table, entities.DecisionRequest{ItemCode: "A1", Stock: decimal.NewNullDecimal(decimal.NewFromInt(1))})
	assert.ErrorIs(t, err, entities.ErrMissingInput)

	_, err = engine.Decide(table, entities.NewDecisionRequest("", decimal.NewFromInt(1), decimal.NewFromInt(1)))
	assert.ErrorIs(t, err, entities.ErrMissingInput)

	_, err = engine.Decide(nil, entities.NewDecisionRequest("A1", decimal.NewFromInt(1), decimal.NewFromInt(1)))
	assert.Error(t, err)
}

func TestDecisionEngine_DoesNotMutateTable(t *testing.T) {
	engine := NewDecisionEngine()
	table := tableOf(map[entities.ItemCode]int64{"A1": -10, "B2": 3})
	before := table.Records()

	_, err := engine.Decide(table, entities.NewDecisionRequest("A1", decimal.NewFromInt(1), decimal.NewFromInt(1)))
	require.NoError(t, err)

	after := table.Records()
	require.Len(t, after, len(before))
	for i := range before {
		assert.Equal(t, before[i].ItemCode, after[i].ItemCode)
		assert.True(t, before[i].AvgConsume.Equal(after[i].AvgConsume))
	}
}
