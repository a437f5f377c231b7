package db

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

// SQLSTATE classes for the constraints the schema declares.
const (
	sqlStateUnique     = "23505"
	sqlStateForeignKey = "23503"
	sqlStateCheck      = "23514"
)

// IsUniqueViolation reports whether err came from a unique constraint.
func IsUniqueViolation(err error) bool {
	return violates(err, sqlStateUnique, sqlite3.ErrConstraintUnique)
}

// IsForeignKeyViolation reports whether err came from a foreign key, such as
// a mix pointing at a receipt that no longer exists.
func IsForeignKeyViolation(err error) bool {
	return violates(err, sqlStateForeignKey, sqlite3.ErrConstraintForeignKey)
}

// IsCheckViolation reports whether err came from a CHECK constraint, such as
// the mix status and delivered date coupling.
func IsCheckViolation(err error) bool {
	return violates(err, sqlStateCheck, sqlite3.ErrConstraintCheck)
}

func violates(err error, sqlState string, liteCode sqlite3.ErrNoExtended) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == sqlState
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == sqlState
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == liteCode
	}
	return false
}
