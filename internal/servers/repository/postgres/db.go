// Package postgres implements the servers repositories on pgx.
package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mcphub/directory-backend/internal/servers/domain"
)

// undefinedTable is the SQLSTATE for a relation that does not exist.
const undefinedTable = "42P01"

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func outcomeOf(err error) domain.Outcome {
	if err == nil {
		return domain.OutcomeOK
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == undefinedTable {
		return domain.OutcomeNotFound
	}
	return domain.OutcomeError
}
