package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	jsoniter "github.com/json-iterator/go"

	"github.com/vsinha/reorder/pkg/application/dto"
	"github.com/vsinha/reorder/pkg/domain/entities"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Supported output formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// ValidateFormat checks format against the formats a command accepts
func ValidateFormat(format string, allowed ...string) error {
	for _, a := range allowed {
		if format == a {
			return nil
		}
	}
	return fmt.Errorf("unsupported output format: %s (expected: %s)", format, strings.Join(allowed, ", "))
}

// decisionView is the JSON shape of a decision
type decisionView struct {
	ItemCode   string `json:"item_code"`
	Stock      string `json:"stock"`
	Requested  string `json:"requested"`
	AvgConsume string `json:"avg_consume"`
	Total      string `json:"total"`
	Threshold  string `json:"threshold"`
	Decision   string `json:"decision"`
	Label      string `json:"label"`
}

// WriteDecision renders a decision in the given format
func WriteDecision(w io.Writer, result entities.DecisionContext, format string) error {
	switch format {
	case FormatText:
		return writeDecisionText(w, result)
	case FormatJSON:
		return writeJSON(w, decisionView{
			ItemCode:   string(result.ItemCode),
			Stock:      result.Stock.String(),
			Requested:  result.Requested.String(),
			AvgConsume: result.AvgConsume.String(),
			Total:      result.Total.String(),
			Threshold:  result.Threshold.String(),
			Decision:   result.Decision.String(),
			Label:      result.Decision.Label(),
		})
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func writeDecisionText(w io.Writer, result entities.DecisionContext) error {
	marker := "⚠️ "
	if result.Decision.Affirmative() {
		marker = "✅"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n\n", marker, result.Decision.Label())
	fmt.Fprintf(&b, "%-20s %s\n", "Item Code:", result.ItemCode)
	fmt.Fprintf(&b, "%-20s %s\n", "Stock:", result.Stock)
	fmt.Fprintf(&b, "%-20s %s\n", "Requested:", result.Requested)
	fmt.Fprintf(&b, "%-20s %s\n", "Total:", result.Total)
	fmt.Fprintf(&b, "%-20s %s\n", "Avg Consume:", result.AvgConsume)
	fmt.Fprintf(&b, "%-20s %s\n", "Threshold:", result.Threshold)

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteSyncSummary renders the outcome of a sync run
func WriteSyncSummary(w io.Writer, result *dto.SyncResult, verbose bool) error {
	var b strings.Builder

	if result.DryRun {
		fmt.Fprintf(&b, "🔍 Dry run: %s rows would be written to %s (%s)\n",
			humanize.Comma(int64(result.Processed)), result.Table, result.Strategy)
	} else {
		fmt.Fprintf(&b, "✅ Successfully processed %s rows into %s (%s)\n",
			humanize.Comma(int64(result.Processed)), result.Table, result.Strategy)
	}

	if verbose {
		fmt.Fprintf(&b, "\n📄 Source: %s\n", result.SourceFile)
		fmt.Fprintf(&b, "  Columns: %q -> item_code, %q -> avg_consume\n",
			result.ItemCodeColumn, result.AvgConsumeColumn)
		fmt.Fprintf(&b, "  Input Rows: %s\n", humanize.Comma(int64(result.InputRows)))
		fmt.Fprintf(&b, "  Dropped: %s (blank %d, duplicate %d, invalid %d)\n",
			humanize.Comma(int64(result.Dropped())), result.BlankRows, result.DuplicateRows, result.InvalidRows)
		fmt.Fprintf(&b, "  Duration: %v\n", result.Duration)

		if len(result.Sample) > 0 {
			fmt.Fprintf(&b, "\n📋 Sample:\n")
			fmt.Fprintf(&b, "%-20s %-15s\n", "Item Code", "Avg Consume")
			fmt.Fprintf(&b, "%-20s %-15s\n", "--------------------", "---------------")
			for _, record := range result.Sample {
				fmt.Fprintf(&b, "%-20s %-15s\n", record.ItemCode, record.AvgConsume)
			}
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// recordView is the JSON shape of a reference row
type recordView struct {
	ItemCode   string `json:"item_code"`
	AvgConsume string `json:"avg_consume"`
}

// WriteItems renders the full reference table
func WriteItems(w io.Writer, table *entities.ReferenceTable, format string) error {
	records := table.Records()

	switch format {
	case FormatText:
		var b strings.Builder
		fmt.Fprintf(&b, "📦 Reference Table (%s items)\n", humanize.Comma(int64(len(table.ItemCodes()))))
		fmt.Fprintf(&b, "%-20s %-15s\n", "Item Code", "Avg Consume")
		fmt.Fprintf(&b, "%-20s %-15s\n", "--------------------", "---------------")
		for _, record := range records {
			fmt.Fprintf(&b, "%-20s %-15s\n", record.ItemCode, record.AvgConsume)
		}
		_, err := io.WriteString(w, b.String())
		return err

	case FormatJSON:
		views := make([]recordView, len(records))
		for i, record := range records {
			views[i] = recordView{ItemCode: string(record.ItemCode), AvgConsume: record.AvgConsume.String()}
		}
		return writeJSON(w, views)

	case FormatCSV:
		cw := csv.NewWriter(w)
		if err := cw.Write([]string{"item_code", "avg_consume"}); err != nil {
			return fmt.Errorf("failed to write CSV header: %w", err)
		}
		for _, record := range records {
			if err := cw.Write([]string{string(record.ItemCode), record.AvgConsume.String()}); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
		cw.Flush()
		return cw.Error()

	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
