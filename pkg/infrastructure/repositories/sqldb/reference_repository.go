package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vsinha/reorder/pkg/domain/entities"
	"github.com/vsinha/reorder/pkg/domain/repositories"
)

// DefaultTable is the reference table name used when none is configured
const DefaultTable = "ro_items"

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,62}$`)

// ReferenceRepository stores reference records in a relational table.
// Every write runs in one transaction.
type ReferenceRepository struct {
	db      *sql.DB
	dialect Dialect
	table   string
}

// NewReferenceRepository creates a repository over table
func NewReferenceRepository(db *sql.DB, dialect Dialect, table string) (*ReferenceRepository, error) {
	if table == "" {
		table = DefaultTable
	}
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("invalid table name: %q", table)
	}

	return &ReferenceRepository{
		db:      db,
		dialect: dialect,
		table:   table,
	}, nil
}

// Verify interface compliance
var _ repositories.ReferenceRepository = (*ReferenceRepository)(nil)

// Table returns the target table name
func (r *ReferenceRepository) Table() string {
	return r.table
}

// EnsureTable creates the reference table and its item code index
func (r *ReferenceRepository) EnsureTable(ctx context.Context) error {
	for _, stmt := range r.dialect.CreateTable(r.table) {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create table %s: %w", r.table, err)
		}
	}
	return nil
}

// Exists reports whether the reference table has been created
func (r *ReferenceRepository) Exists(ctx context.Context) (bool, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, r.dialect.tableExists, r.table).Scan(&n); err != nil {
		return false, fmt.Errorf("look up table %s: %w", r.table, err)
	}
	return n > 0, nil
}

// ReadAll returns all rows ordered by item code. A table that was never
// created reads as empty. Rows with a NULL value are skipped, which covers
// tables created by other tools.
func (r *ReferenceRepository) ReadAll(ctx context.Context) ([]entities.ReferenceRecord, error) {
	exists, err := r.Exists(ctx)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, nil
	}

	query := fmt.Sprintf("SELECT item_code, avg_consume FROM %s ORDER BY item_code", r.dialect.Quote(r.table))

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.table, err)
	}
	defer rows.Close()

	var records []entities.ReferenceRecord
	for rows.Next() {
		var code sql.NullString
		var avg decimal.NullDecimal
		if err := rows.Scan(&code, &avg); err != nil {
			return nil, fmt.Errorf("scan %s: %w", r.table, err)
		}
		if !code.Valid || code.String == "" || !avg.Valid {
			continue
		}
		records = append(records, entities.ReferenceRecord{
			ItemCode:   entities.ItemCode(code.String),
			AvgConsume: avg.Decimal,
		})
	}

	return records, rows.Err()
}

// ReplaceAll deletes every row and inserts records in the same transaction
func (r *ReferenceRepository) ReplaceAll(ctx context.Context, records []entities.ReferenceRecord) error {
	if err := r.EnsureTable(ctx); err != nil {
		return err
	}

	return r.withTx(ctx, entities.Replace, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s", r.dialect.Quote(r.table))); err != nil {
			return fmt.Errorf("clear table: %w", err)
		}
		return r.insertRows(ctx, tx, r.table, records)
	})
}

// AppendAll inserts records next to the existing rows
func (r *ReferenceRepository) AppendAll(ctx context.Context, records []entities.ReferenceRecord) error {
	if err := r.EnsureTable(ctx); err != nil {
		return err
	}

	return r.withTx(ctx, entities.Append, func(tx *sql.Tx) error {
		return r.insertRows(ctx, tx, r.table, records)
	})
}

// UpsertAll stages records in a temporary table, removes target rows with a
// staged key, copies the staged rows over and drops the staging table.
// Staged keys end with exactly one row; other rows are untouched.
func (r *ReferenceRepository) UpsertAll(ctx context.Context, records []entities.ReferenceRecord) error {
	if err := r.EnsureTable(ctx); err != nil {
		return err
	}

	stage := r.stagingName()
	target := r.dialect.Quote(r.table)
	staged := r.dialect.Quote(stage)

	return r.withTx(ctx, entities.Upsert, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, r.dialect.CreateStaging(stage)); err != nil {
			return fmt.Errorf("create staging table: %w", err)
		}
		if err := r.insertRows(ctx, tx, stage, records); err != nil {
			return err
		}

		statements := []string{
			fmt.Sprintf("DELETE FROM %s WHERE item_code IN (SELECT item_code FROM %s)", target, staged),
			fmt.Sprintf("INSERT INTO %s (item_code, avg_consume) SELECT item_code, avg_consume FROM %s", target, staged),
			r.dialect.DropStaging(stage),
		}
		for _, stmt := range statements {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("merge staged rows: %w", err)
			}
		}
		return nil
	})
}

func (r *ReferenceRepository) stagingName() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("%s_stage_%s", r.table, suffix)
}

func (r *ReferenceRepository) insertRows(ctx context.Context, tx *sql.Tx, table string, records []entities.ReferenceRecord) error {
	if len(records) == 0 {
		return nil
	}

	stmt, err := tx.PrepareContext(ctx, r.dialect.Insert(table))
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, record := range records {
		if _, err := stmt.ExecContext(ctx, string(record.ItemCode), record.AvgConsume); err != nil {
			return fmt.Errorf("insert %s: %w", record.ItemCode, err)
		}
	}
	return nil
}

// withTx runs fn in a transaction, rolling back on any error
func (r *ReferenceRepository) withTx(ctx context.Context, strategy entities.SyncStrategy, fn func(tx *sql.Tx) error) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s %s: begin: %w", strategy, r.table, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(tx); err != nil {
		return fmt.Errorf("%s %s: %w", strategy, r.table, err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s %s: commit: %w", strategy, r.table, err)
	}
	return nil
}
