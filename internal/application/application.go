package application

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

const (
	// AppName is the application name used for directories and identification
	AppName = "katasync"

	// Version is reported by the version command and used in the User-Agent
	Version = "0.3.0"

	// UserAgent identifies katasync to the GitHub and Codewars APIs
	UserAgent = AppName + "/" + Version
)

var (
	once   sync.Once
	appDir string
	errDir error
)

// GetApplicationDirectory returns the katasync configuration directory path.
// Linux: ~/.config/katasync (via os.UserConfigDir)
// Windows: C:\Users\{username}\AppData\Local\katasync (via os.UserCacheDir)
func GetApplicationDirectory() (string, error) {
	once.Do(lazyLoad)

	if errDir != nil {
		return "", errDir
	}

	return appDir, nil
}

// EnsureDir creates dir (and parents) with owner-only permissions.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	return nil
}

func lazyLoad() {
	var (
		baseDir string
		err     error
	)

	switch runtime.GOOS {
	case "windows":
		baseDir, err = os.UserCacheDir()
	default:
		baseDir, err = os.UserConfigDir()
	}

	if err != nil {
		errDir = fmt.Errorf("failed to get config directory: %w", err)
		return
	}

	appDir = filepath.Join(baseDir, AppName)
}
