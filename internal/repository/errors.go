package repository

import (
	"errors"

	"github.com/jackc/pgconn"
)

var ErrNotFound = errors.New("not found")

// IsUniqueViolation reports whether err is a postgres unique-constraint
// violation (e.g. a www_id collision).
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
