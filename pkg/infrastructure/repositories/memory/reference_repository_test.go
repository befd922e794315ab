package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/vsinha/reorder/pkg/domain/entities"
)

func records(pairs ...interface{}) []entities.ReferenceRecord {
	var out []entities.ReferenceRecord
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, entities.ReferenceRecord{
			ItemCode:   entities.ItemCode(pairs[i].(string)),
			AvgConsume: decimal.NewFromInt(int64(pairs[i+1].(int))),
		})
	}
	return out
}

func TestReferenceRepository_ReplaceAll(t *testing.T) {
	ctx := context.Background()
	repo := NewReferenceRepository(10)

	if err := repo.AppendAll(ctx, records("OLD", 1, "A1", 2)); err != nil {
		t.Fatalf("Failed to seed repository: %v", err)
	}

	if err := repo.ReplaceAll(ctx, records("B2", 3, "A1", 4)); err != nil {
		t.Fatalf("Failed to replace: %v", err)
	}

	got, err := repo.ReadAll(ctx)
	if err != nil {
		t.Fatalf("Failed to read: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 rows after replace, got %d", len(got))
	}
	if got[0].ItemCode != "A1" || !got[0].AvgConsume.Equal(decimal.NewFromInt(4)) {
		t.Errorf("Expected A1=4 first, got %s", got[0])
	}
	if repo.Count("OLD") != 0 {
		t.Error("Expected prior content to be gone after replace")
	}
}

func TestReferenceRepository_AppendDuplicates(t *testing.T) {
	ctx := context.Background()
	repo := NewReferenceRepository(10)
	set := records("A1", 1, "B2", 2)

	for i := 0; i < 2; i++ {
		if err := repo.AppendAll(ctx, set); err != nil {
			t.Fatalf("Append %d failed: %v", i+1, err)
		}
	}

	for _, code := range []entities.ItemCode{"A1", "B2"} {
		if repo.Count(code) != 2 {
			t.Errorf("Expected %s to appear twice, got %d", code, repo.Count(code))
		}
	}
}

func TestReferenceRepository_UpsertIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := NewReferenceRepository(10)

	if err := repo.AppendAll(ctx, records("A1", 1, "A1", 1, "KEEP", 9)); err != nil {
		t.Fatalf("Failed to seed repository: %v", err)
	}

	set := records("A1", 5, "NEW", 6)
	if err := repo.UpsertAll(ctx, set); err != nil {
		t.Fatalf("First upsert failed: %v", err)
	}
	once, _ := repo.ReadAll(ctx)

	if err := repo.UpsertAll(ctx, set); err != nil {
		t.Fatalf("Second upsert failed: %v", err)
	}
	twice, _ := repo.ReadAll(ctx)

	if len(once) != 3 || len(twice) != 3 {
		t.Fatalf("Expected 3 rows after each upsert, got %d and %d", len(once), len(twice))
	}
	for i := range once {
		if once[i].ItemCode != twice[i].ItemCode || !once[i].AvgConsume.Equal(twice[i].AvgConsume) {
			t.Errorf("Row %d differs between runs: %s vs %s", i, once[i], twice[i])
		}
	}
	if repo.Count("A1") != 1 {
		t.Errorf("Expected upsert to collapse A1 to one row, got %d", repo.Count("A1"))
	}
	if repo.Count("KEEP") != 1 {
		t.Error("Expected non-staged key to be untouched")
	}
}

func TestReferenceRepository_FailedWriteLeavesRows(t *testing.T) {
	ctx := context.Background()
	repo := NewReferenceRepository(10)

	if err := repo.AppendAll(ctx, records("A1", 1)); err != nil {
		t.Fatalf("Failed to seed repository: %v", err)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if err := repo.ReplaceAll(cancelled, records("B2", 2)); !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected cancellation error, got %v", err)
	}

	got, _ := repo.ReadAll(ctx)
	if len(got) != 1 || got[0].ItemCode != "A1" {
		t.Errorf("Expected table untouched after failed write, got %v", got)
	}
}
