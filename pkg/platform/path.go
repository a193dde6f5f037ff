package platform

import (
	"os"
	"path/filepath"
	"strings"
)

// NormalizePath resolves a path the way zscan's CLI expects: backslashes
// flattened to forward slashes so a pasted Windows-style path still works,
// a leading "~" expanded against $HOME (or %USERPROFILE% when HOME isn't
// set), and the result cleaned. Used for the REPL history file and for
// -f/positional script paths so "~/scripts/build.zsh" works the same as a
// plain relative path.
func NormalizePath(path string) string {
	path = strings.ReplaceAll(path, "\\", "/")

	if strings.HasPrefix(path, "~") {
		home := os.Getenv("HOME")
		if home == "" {
			home = os.Getenv("USERPROFILE")
		}
		if home != "" {
			path = strings.Replace(path, "~", home, 1)
		}
	}

	return filepath.Clean(path)
}

// IsAbsolute reports whether path is already absolute once normalized.
func IsAbsolute(path string) bool {
	return filepath.IsAbs(path)
}

// JoinPath joins path elements using the host's separator convention.
func JoinPath(elem ...string) string {
	return filepath.Join(elem...)
}
