package repository

import (
	"errors"

	"tablebook/internal/infra"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// wrapPg classifies a pgx error into a repository error kind.
func wrapPg(msg string, err error) error {
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return infra.WrapRepoErr(msg, err, infra.KindNotFound)
	case isPgCode(err, pgUniqueViolation):
		return infra.WrapRepoErr(msg, err, infra.KindDuplicateKey)
	case isPgCode(err, pgForeignKeyViolation):
		return infra.WrapRepoErr(msg, err, infra.KindForeignKeyViolated)
	default:
		return infra.WrapRepoErr(msg, err)
	}
}

func isPgCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
