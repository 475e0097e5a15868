package database

import "errors"

// ErrNotReady indicates the database connection has not been established or was closed.
var ErrNotReady = errors.New("database not ready")
