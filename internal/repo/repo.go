package repo

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
)

const duplicateKeyErr = 1062

// isDuplicateKey reports whether err is a unique-key violation, optionally
// on one specific index.
func isDuplicateKey(err error, index string) bool {
	var mysqlErr *mysql.MySQLError
	if !errors.As(err, &mysqlErr) || mysqlErr.Number != duplicateKeyErr {
		return false
	}
	if index == "" {
		return true
	}
	return strings.Contains(mysqlErr.Message, index)
}
