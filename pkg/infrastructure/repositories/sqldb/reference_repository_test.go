package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/reorder/pkg/domain/entities"
)

func newTestRepository(t *testing.T) (*ReferenceRepository, *sql.DB) {
	t.Helper()
	ctx := context.Background()

	db, dialect, err := Connect(ctx, "sqlite://"+filepath.Join(t.TempDir(), "reorder.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo, err := NewReferenceRepository(db, dialect, "")
	require.NoError(t, err)
	require.NoError(t, repo.EnsureTable(ctx))
	return repo, db
}

func recordSet(values map[string]string) []entities.ReferenceRecord {
	out := make([]entities.ReferenceRecord, 0, len(values))
	for code, avg := range values {
		out = append(out, entities.ReferenceRecord{
			ItemCode:   entities.ItemCode(code),
			AvgConsume: decimal.RequireFromString(avg),
		})
	}
	return out
}

func snapshot(t *testing.T, repo *ReferenceRepository) []string {
	t.Helper()
	records, err := repo.ReadAll(context.Background())
	require.NoError(t, err)
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.String()
	}
	return out
}

func keyCount(t *testing.T, db *sql.DB, code string) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM "ro_items" WHERE item_code = ?`, code).Scan(&n))
	return n
}

func TestReferenceRepository_DefaultTable(t *testing.T) {
	repo, _ := newTestRepository(t)
	assert.Equal(t, DefaultTable, repo.Table())

	_, err := NewReferenceRepository(nil, SQLite, "ro_items; DROP TABLE x")
	assert.Error(t, err)
}

func TestReferenceRepository_ReplaceTotality(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepository(t)

	require.NoError(t, repo.AppendAll(ctx, recordSet(map[string]string{"OLD": "1", "A1": "2", "A2": "3"})))
	require.NoError(t, repo.AppendAll(ctx, recordSet(map[string]string{"A1": "9"})))

	require.NoError(t, repo.ReplaceAll(ctx, recordSet(map[string]string{"A1": "5", "B2": "-2.5"})))
	assert.Equal(t, []string{"A1=5", "B2=-2.5"}, snapshot(t, repo))

	require.NoError(t, repo.ReplaceAll(ctx, nil))
	assert.Empty(t, snapshot(t, repo))
}

func TestReferenceRepository_AppendDuplicatesKeys(t *testing.T) {
	ctx := context.Background()
	repo, db := newTestRepository(t)
	set := recordSet(map[string]string{"A1": "5", "B2": "7"})

	require.NoError(t, repo.AppendAll(ctx, set))
	require.NoError(t, repo.AppendAll(ctx, set))

	assert.Equal(t, 2, keyCount(t, db, "A1"))
	assert.Equal(t, 2, keyCount(t, db, "B2"))
	assert.Len(t, snapshot(t, repo), 4)
}

func TestReferenceRepository_UpsertIdempotent(t *testing.T) {
	ctx := context.Background()
	repo, db := newTestRepository(t)

	require.NoError(t, repo.AppendAll(ctx, recordSet(map[string]string{"A1": "1", "KEEP": "9"})))
	require.NoError(t, repo.AppendAll(ctx, recordSet(map[string]string{"A1": "1"})))

	set := recordSet(map[string]string{"A1": "5", "NEW": "0.75"})
	require.NoError(t, repo.UpsertAll(ctx, set))
	once := snapshot(t, repo)

	require.NoError(t, repo.UpsertAll(ctx, set))
	twice := snapshot(t, repo)

	assert.Equal(t, []string{"A1=5", "KEEP=9", "NEW=0.75"}, once)
	assert.Equal(t, once, twice)
	assert.Equal(t, 1, keyCount(t, db, "A1"))

	// The staging table is gone once the run completes
	var stages int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM sqlite_temp_master WHERE name LIKE 'ro_items_stage_%'`).Scan(&stages))
	assert.Zero(t, stages)
}

func TestReferenceRepository_FailedRunLeavesTable(t *testing.T) {
	repo, _ := newTestRepository(t)
	require.NoError(t, repo.AppendAll(context.Background(), recordSet(map[string]string{"A1": "1"})))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := repo.ReplaceAll(ctx, recordSet(map[string]string{"B2": "2"}))
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))

	assert.Equal(t, []string{"A1=1"}, snapshot(t, repo))
}

func TestReferenceRepository_ReadSkipsNulls(t *testing.T) {
	ctx := context.Background()
	_, db := newTestRepository(t)

	_, err := db.Exec(`CREATE TABLE legacy (item_code TEXT, avg_consume NUMERIC)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO legacy VALUES ('A1', 3), (NULL, 4), ('B2', NULL), ('C3', 2.5)`)
	require.NoError(t, err)

	legacy, err := NewReferenceRepository(db, SQLite, "legacy")
	require.NoError(t, err)

	records, err := legacy.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "A1=3", records[0].String())
	assert.Equal(t, "C3=2.5", records[1].String())
}

func TestConnect_BadSQLitePath(t *testing.T) {
	_, _, err := Connect(context.Background(), "sqlite://"+filepath.Join(t.TempDir(), "missing", "dir", "x.db"))
	require.Error(t, err)
	var connErr *entities.ConnectionError
	assert.True(t, errors.As(err, &connErr))
}

func TestReferenceRepository_RejectedRowRollsBack(t *testing.T) {
	strategies := map[string]func(*ReferenceRepository, context.Context, []entities.ReferenceRecord) error{
		"replace": (*ReferenceRepository).ReplaceAll,
		"append":  (*ReferenceRepository).AppendAll,
		"upsert":  (*ReferenceRepository).UpsertAll,
	}

	for name, write := range strategies {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo, db := newTestRepository(t)
			require.NoError(t, repo.AppendAll(ctx, recordSet(map[string]string{"A1": "7", "Z9": "2"})))

			_, err := db.Exec(`CREATE TRIGGER reject_bad BEFORE INSERT ON ro_items
				WHEN NEW.item_code = 'BAD'
				BEGIN SELECT RAISE(ABORT, 'rejected'); END`)
			require.NoError(t, err)

			// A1 goes in first so the failure lands mid-transaction
			records := []entities.ReferenceRecord{
				{ItemCode: "A1", AvgConsume: decimal.NewFromInt(5)},
				{ItemCode: "BAD", AvgConsume: decimal.NewFromInt(1)},
			}
			err = write(repo, ctx, records)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "rejected")

			assert.Equal(t, []string{"A1=7", "Z9=2"}, snapshot(t, repo))

			var stages int
			require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM sqlite_temp_master WHERE name LIKE 'ro_items_stage_%'`).Scan(&stages))
			assert.Zero(t, stages)
		})
	}
}

func TestReferenceRepository_MissingTable(t *testing.T) {
	ctx := context.Background()

	db, dialect, err := Connect(ctx, "sqlite://"+filepath.Join(t.TempDir(), "fresh.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo, err := NewReferenceRepository(db, dialect, "")
	require.NoError(t, err)

	exists, err := repo.Exists(ctx)
	require.NoError(t, err)
	assert.False(t, exists)

	records, err := repo.ReadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)

	exists, err = repo.Exists(ctx)
	require.NoError(t, err)
	assert.False(t, exists, "reading must not create the table")

	require.NoError(t, repo.AppendAll(ctx, recordSet(map[string]string{"A1": "1"})))
	exists, err = repo.Exists(ctx)
	require.NoError(t, err)
	assert.True(t, exists)
}
