package repository

import (
	"errors"
	"fmt"

	mysql "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDuplicateKey wraps unique-constraint violations from any backend.
var ErrDuplicateKey = errors.New("duplicate key")

const (
	mysqlDuplicateEntry   = 1062
	postgresUniqueViolate = "23505"
)

func isDriverDuplicate(err error) bool {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == postgresUniqueViolate {
		return true
	}
	return false
}

func translate(err error) error {
	if err == nil {
		return nil
	}
	if isDriverDuplicate(err) {
		return fmt.Errorf("%w: %v", ErrDuplicateKey, err)
	}
	return err
}

func IsDuplicateKey(err error) bool {
	return errors.Is(err, ErrDuplicateKey)
}
