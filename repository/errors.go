package repository

import (
	"database/sql"
	"errors"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/lib/pq"

	"github.com/goliatone/go-yoga"
)

const pqUniqueViolation = "23505"

// IsRecordNotFound reports whether err means no rows matched
func IsRecordNotFound(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, sql.ErrNoRows) || yoga.IsRecordNotFound(err)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqUniqueViolation
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func mapError(err error, message string) error {
	if err == nil {
		return nil
	}
	if IsRecordNotFound(err) {
		return yoga.ErrRecordNotFound
	}
	return goerrors.Wrap(err, goerrors.CategoryInternal, message)
}
