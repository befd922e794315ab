package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/vsinha/reorder/pkg/domain/entities"
)

// Target is a parsed DATABASE_URL
type Target struct {
	Dialect Dialect
	DSN     string
}

// ParseDatabaseURL maps a connection URL onto a driver and DSN.
// postgres:// and postgresql:// use lib/pq, mysql:// uses the MySQL driver,
// sqlite://, file: and bare paths use SQLite.
func ParseDatabaseURL(databaseURL string) (*Target, error) {
	raw := strings.TrimSpace(databaseURL)
	if raw == "" {
		return nil, fmt.Errorf("database URL is empty")
	}

	switch {
	case strings.HasPrefix(raw, "postgres://"), strings.HasPrefix(raw, "postgresql://"):
		return &Target{Dialect: Postgres, DSN: raw}, nil

	case strings.HasPrefix(raw, "mysql://"):
		dsn, err := mysqlDSN(raw)
		if err != nil {
			return nil, err
		}
		return &Target{Dialect: MySQL, DSN: dsn}, nil

	case strings.HasPrefix(raw, "sqlite://"):
		path := strings.TrimPrefix(raw, "sqlite://")
		if path == "" {
			return nil, fmt.Errorf("sqlite URL has no path: %s", raw)
		}
		return &Target{Dialect: SQLite, DSN: path}, nil

	case strings.HasPrefix(raw, "file:"), !strings.Contains(raw, "://"):
		return &Target{Dialect: SQLite, DSN: raw}, nil

	default:
		return nil, fmt.Errorf("unsupported database URL scheme: %s", redact(raw))
	}
}

func mysqlDSN(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid mysql URL: %w", err)
	}

	cfg := mysql.NewConfig()
	cfg.Net = "tcp"
	cfg.Addr = u.Host
	if u.Port() == "" {
		cfg.Addr = u.Hostname() + ":3306"
	}
	cfg.DBName = strings.TrimPrefix(u.Path, "/")
	if u.User != nil {
		cfg.User = u.User.Username()
		cfg.Passwd, _ = u.User.Password()
	}
	if cfg.DBName == "" {
		return "", fmt.Errorf("mysql URL has no database name")
	}

	query := u.Query()
	if len(query) > 0 {
		cfg.Params = make(map[string]string, len(query))
		for key := range query {
			cfg.Params[key] = query.Get(key)
		}
	}
	return cfg.FormatDSN(), nil
}

// Connect opens and pings the store named by databaseURL
func Connect(ctx context.Context, databaseURL string) (*sql.DB, Dialect, error) {
	target, err := ParseDatabaseURL(databaseURL)
	if err != nil {
		return nil, Dialect{}, err
	}

	db, err := sql.Open(target.Dialect.Driver, target.DSN)
	if err != nil {
		return nil, Dialect{}, &entities.ConnectionError{Driver: target.Dialect.Name, Err: err}
	}

	if target.Dialect.Name == SQLite.Name {
		// A single connection keeps writers serialized and temp tables visible
		db.SetMaxOpenConns(1)
		if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
			db.Close()
			return nil, Dialect{}, &entities.ConnectionError{Driver: target.Dialect.Name, Err: err}
		}
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, Dialect{}, &entities.ConnectionError{Driver: target.Dialect.Name, Err: err}
	}

	return db, target.Dialect, nil
}

// redact hides the password part of a URL for error messages
func redact(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "<invalid url>"
	}
	return u.Redacted()
}
