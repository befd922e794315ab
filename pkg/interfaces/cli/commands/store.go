package commands

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/vsinha/reorder/pkg/infrastructure/config"
	"github.com/vsinha/reorder/pkg/infrastructure/logging"
	"github.com/vsinha/reorder/pkg/infrastructure/repositories/sqldb"
)

// openStore connects to the configured database. The reference table is
// created by the repository's write paths only, so reads and dry runs leave
// the schema alone. The caller closes the returned handle.
func openStore(ctx context.Context, settings *config.Config, table string, logger *log.Logger) (*sqldb.ReferenceRepository, *sql.DB, error) {
	if err := settings.Validate(); err != nil {
		return nil, nil, fmt.Errorf("configuration error: %w", err)
	}
	if table == "" {
		table = settings.Table
	}

	db, dialect, err := sqldb.Connect(ctx, settings.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	logger.Printf("connected to %s store", dialect.Name)

	repo, err := sqldb.NewReferenceRepository(db, dialect, table)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return repo, db, nil
}

func loggerOrDiscard(logger *log.Logger) *log.Logger {
	if logger == nil {
		return logging.Discard()
	}
	return logger
}
