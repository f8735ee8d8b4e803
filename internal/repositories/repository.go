// Package repositories contains the database/sql data access layer
package repositories

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// mysqlDuplicateEntry is the MySQL error number for a unique key violation
const mysqlDuplicateEntry = 1062

// isDuplicateKey reports whether err is a unique key violation. Uniqueness
// is enforced by the database, not by check-then-insert, so a conflicting
// insert is the one place duplicates surface.
func isDuplicateKey(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}
