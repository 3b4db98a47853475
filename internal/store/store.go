package store

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/inovacc/katasync/internal/application"
)

// Keys used in the local store.
const (
	KeyAccountUsername   = "codewarsUsername"
	KeyAccessToken       = "githubToken"
	KeyRemoteAccountName = "githubUsername"
	KeyRepository        = "githubRepo"
	KeySyncHistory       = "syncHistory"
	KeyServerSecret      = "serverSecret"
)

// Supported drivers.
const (
	DriverBolt   = "bolt"
	DriverSQLite = "sqlite"
)

// ErrUnknownDriver is returned by Open for an unsupported driver name.
var ErrUnknownDriver = errors.New("unknown storage driver")

// Store is the persistent key/value store.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool, error)
	// Set stores value under key.
	Set(key, value string) error
	// Remove deletes the given keys; missing keys are ignored.
	Remove(keys ...string) error
	Ping() error
	Close() error
}

// Open opens the store for driver inside dir, creating dir if needed.
// SQLite is the default and may be opened by several processes at once.
// Bolt holds an exclusive file lock for as long as the handle is open.
func Open(driver, dir string) (Store, error) {
	if err := application.EnsureDir(dir); err != nil {
		return nil, err
	}

	switch driver {
	case "", DriverSQLite:
		return NewSQLite(filepath.Join(dir, application.AppName+".sqlite"))
	case DriverBolt:
		return NewBolt(filepath.Join(dir, application.AppName+".bolt"))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
}
