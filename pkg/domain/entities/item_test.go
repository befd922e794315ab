package entities

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestReferenceRecord_Validation(t *testing.T) {
	record, err := NewReferenceRecord("A1", decimal.NewFromInt(-12))
	if err != nil {
		t.Fatalf("Expected valid record creation to succeed: %v", err)
	}
	if record.ItemCode != "A1" {
		t.Errorf("Expected item code A1, got %s", record.ItemCode)
	}
	if !record.AvgConsume.Equal(decimal.NewFromInt(-12)) {
		t.Errorf("Expected avg consume to keep its sign, got %s", record.AvgConsume)
	}

	_, err = NewReferenceRecord("", decimal.NewFromInt(1))
	if err == nil {
		t.Fatal("Expected error for empty item code, but got none")
	}
	if err.Error() != "item code cannot be empty" {
		t.Errorf("Expected error 'item code cannot be empty', got '%s'", err.Error())
	}
}

func TestReferenceRecord_String(t *testing.T) {
	record := ReferenceRecord{ItemCode: "B2", AvgConsume: decimal.RequireFromString("2.5")}
	if record.String() != "B2=2.5" {
		t.Errorf("Expected B2=2.5, got %s", record.String())
	}
}
