package history

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
)

// schemaDDL holds the history schema definition.
//
//go:embed schema.sql
var schemaDDL string

// EnsureSchema applies the schema DDL to the provided database connection.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("history: db is nil")
	}
	_, err := db.ExecContext(ctx, schemaDDL)
	return err
}
