package sqldb

import (
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// Dialect captures the SQL differences between supported stores
type Dialect struct {
	Name string
	// Driver is the database/sql driver name
	Driver string

	codeType    string
	numericType string
	tempTable   string
	dropTemp    string
	inlineIndex bool
	numbered    bool
	quote       func(string) string
	// tableExists counts tables named by its single argument
	tableExists string
}

var (
	// SQLite is served by modernc.org/sqlite
	SQLite = Dialect{
		Name:        "sqlite",
		Driver:      "sqlite",
		codeType:    "TEXT",
		numericType: "NUMERIC",
		tempTable:   "CREATE TEMP TABLE",
		dropTemp:    "DROP TABLE",
		quote:       doubleQuote,
		tableExists: "SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?",
	}

	// Postgres is served by github.com/lib/pq
	Postgres = Dialect{
		Name:        "postgres",
		Driver:      "postgres",
		codeType:    "TEXT",
		numericType: "NUMERIC",
		tempTable:   "CREATE TEMP TABLE",
		dropTemp:    "DROP TABLE",
		numbered:    true,
		quote:       pq.QuoteIdentifier,
		tableExists: "SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = current_schema() AND table_name = $1",
	}

	// MySQL is served by github.com/go-sql-driver/mysql
	MySQL = Dialect{
		Name:        "mysql",
		Driver:      "mysql",
		codeType:    "VARCHAR(255)",
		numericType: "DECIMAL(38,10)",
		tempTable:   "CREATE TEMPORARY TABLE",
		dropTemp:    "DROP TEMPORARY TABLE",
		inlineIndex: true,
		quote:       backtickQuote,
		tableExists: "SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = DATABASE() AND table_name = ?",
	}
)

// Quote returns a quoted identifier
func (d Dialect) Quote(ident string) string {
	return d.quote(ident)
}

// Placeholder returns the bind marker for the n-th (1-based) argument
func (d Dialect) Placeholder(n int) string {
	if d.numbered {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// CreateTable returns the statements that create table and its key index
func (d Dialect) CreateTable(table string) []string {
	index := d.Quote("idx_" + table + "_item_code")
	columns := fmt.Sprintf("item_code %s NOT NULL, avg_consume %s NOT NULL", d.codeType, d.numericType)

	if d.inlineIndex {
		return []string{
			fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s, INDEX %s (item_code))", d.Quote(table), columns, index),
		}
	}
	return []string{
		fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", d.Quote(table), columns),
		fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (item_code)", index, d.Quote(table)),
	}
}

// CreateStaging returns the statement creating a session-scoped staging table
func (d Dialect) CreateStaging(table string) string {
	return fmt.Sprintf("%s %s (item_code %s NOT NULL, avg_consume %s NOT NULL)",
		d.tempTable, d.Quote(table), d.codeType, d.numericType)
}

// DropStaging returns the statement dropping a staging table
func (d Dialect) DropStaging(table string) string {
	return fmt.Sprintf("%s %s", d.dropTemp, d.Quote(table))
}

// Insert returns a single-row insert statement for table
func (d Dialect) Insert(table string) string {
	return fmt.Sprintf("INSERT INTO %s (item_code, avg_consume) VALUES (%s, %s)",
		d.Quote(table), d.Placeholder(1), d.Placeholder(2))
}

func doubleQuote(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

func backtickQuote(ident string) string {
	return "`" + strings.ReplaceAll(ident, "`", "``") + "`"
}
