package database

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"openconference/internal/ports/output"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// mapError translates driver errors into the repository sentinels and wraps
// everything else with op.
func mapError(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return output.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return fmt.Errorf("%s: %s: %w", op, pgErr.ConstraintName, output.ErrDuplicate)
		case codeForeignKeyViolation:
			return fmt.Errorf("%s: %s: %w", op, pgErr.ConstraintName, output.ErrForeignKey)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// affectedOne turns an update or delete that matched nothing into ErrNotFound.
func affectedOne(op string, tag pgconn.CommandTag, err error) error {
	if err != nil {
		return mapError(op, err)
	}
	if tag.RowsAffected() == 0 {
		return output.ErrNotFound
	}
	return nil
}
