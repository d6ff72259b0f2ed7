package store

import (
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
)

func IsErrNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func IsErrDuplicate(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}
