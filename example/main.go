package main

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/vsinha/reorder/pkg/application/services"
	"github.com/vsinha/reorder/pkg/domain/entities"
	"github.com/vsinha/reorder/pkg/infrastructure/events"
	"github.com/vsinha/reorder/pkg/infrastructure/repositories/memory"
	"github.com/vsinha/reorder/pkg/interfaces/cli/output"
)

// sheetLoader serves an in-memory sheet in place of a workbook
type sheetLoader struct {
	sheet *entities.RawSheet
}

func (l sheetLoader) Load(string) (*entities.RawSheet, error) {
	return l.sheet, nil
}

func main() {
	ctx := context.Background()

	repo := memory.NewReferenceRepository(8)
	store := events.NewInMemoryEventStore()
	decisions := services.NewDecisionService(repo)
	if err := store.Subscribe([]string{events.TableSyncedEvent}, decisions); err != nil {
		fmt.Printf("❌ Subscribe failed: %v\n", err)
		os.Exit(1)
	}

	// A workbook as it usually arrives: extra columns, a repeated code,
	// a text value and a blank code
	sheet := &entities.RawSheet{
		Columns: []string{"S.No", "Item Code", "Description", "Avg Consume (Monthly)"},
		Rows: [][]string{
			{"1", "BRG-6204", "Bearing 6204", "40"},
			{"2", "BRG-6204", "Bearing 6204 (dup)", "55"},
			{"3", "FLT-OIL-10", "Oil filter", "12.5"},
			{"4", "GSK-100", "Gasket", "n/a"},
			{"5", "", "Unlabelled", "3"},
			{"6", "VBELT-A42", "V-belt A42", "-8"},
		},
	}

	fmt.Println("📂 Syncing reference table...")
	syncService := services.NewSyncService(repo, sheetLoader{sheet: sheet}, "ro_items", nil).WithEvents(store)
	result, err := syncService.Run(ctx, services.SyncRequest{Strategy: entities.Replace, SourceFile: "ro_items.xlsx"})
	if err != nil {
		fmt.Printf("❌ Sync failed: %v\n", err)
		os.Exit(1)
	}
	if err := output.WriteSyncSummary(os.Stdout, result, true); err != nil {
		fmt.Printf("❌ Output failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println()

	checks := []entities.DecisionRequest{
		entities.NewDecisionRequest("BRG-6204", decimal.NewFromInt(50), decimal.NewFromInt(30)),
		entities.NewDecisionRequest("BRG-6204", decimal.NewFromInt(50), decimal.NewFromInt(31)),
		entities.NewDecisionRequest("VBELT-A42", decimal.NewFromInt(4), decimal.NewFromInt(10)),
		entities.NewDecisionRequest("FLT-OIL-10", decimal.RequireFromString("7.5"), decimal.RequireFromString("17.5")),
		entities.NewDecisionRequest("GSK-100", decimal.NewFromInt(1), decimal.NewFromInt(1)),
	}

	fmt.Println("🔍 Reorder checks:")
	for _, req := range checks {
		decision, err := decisions.Decide(ctx, req)
		if err != nil {
			fmt.Printf("  ⚠️  %v\n", err)
			continue
		}
		fmt.Printf("  %s\n", decision.Summary())
	}

	// A second sync replaces the snapshot the decision service holds
	update := &entities.RawSheet{
		Columns: []string{"Item Code", "Avg Consume"},
		Rows:    [][]string{{"BRG-6204", "45"}},
	}
	if _, err := services.NewSyncService(repo, sheetLoader{sheet: update}, "ro_items", nil).
		WithEvents(store).
		Run(ctx, services.SyncRequest{Strategy: entities.Upsert, SourceFile: "update.xlsx"}); err != nil {
		fmt.Printf("❌ Upsert failed: %v\n", err)
		os.Exit(1)
	}

	decision, err := decisions.Decide(ctx, checks[1])
	if err != nil {
		fmt.Printf("❌ Decision failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\n🔄 After upsert: %s\n", decision.Summary())
}
