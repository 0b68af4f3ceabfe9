package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

// translateError maps Postgres unique violations onto gorm.ErrDuplicatedKey
// so callers can match them without importing the driver.
func translateError(err error) error {
	if err == nil || errors.Is(err, gorm.ErrDuplicatedKey) {
		return err
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", gorm.ErrDuplicatedKey, pgErr.ConstraintName)
	}
	return err
}
