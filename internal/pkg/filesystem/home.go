package filesystem

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/doeshing/pingbot/internal/domain"
)

// UserHomeDir returns the current user's home directory.
// If the home directory cannot be determined, it returns "." as a fallback.
func UserHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

// DefaultLogDir is where logs go when no directory is configured.
func DefaultLogDir() string {
	return filepath.Join(UserHomeDir(), domain.DefaultLogDirName)
}

// ExpandPath resolves a leading "~/" and cleans the result.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		return UserHomeDir()
	}
	if strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		return filepath.Join(UserHomeDir(), path[2:])
	}
	return filepath.Clean(path)
}

// OpenAppend opens path for appending, creating the parent directory and the
// file when absent.
func OpenAppend(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, domain.LogFilePermissions)
}
