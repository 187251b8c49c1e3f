package store

import (
	"database/sql"
	"errors"
)

// ErrConsumed reports a continuation session that was already spent. The
// consume-exactly-once guarantee of the session store hangs on it.
var ErrConsumed = errors.New("session already consumed")

func IsErrNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
