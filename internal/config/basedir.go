package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// bundleSuffix marks an executable inside a macOS application bundle.
var bundleSuffix = filepath.Join("Contents", "MacOS")

// BaseDir returns the directory holding the executable, where the template,
// mapping and config file live by default. Inside a macOS .app bundle this
// is the directory containing the bundle.
func BaseDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("resolve executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return baseDirOf(exe), nil
}

func baseDirOf(exe string) string {
	dir := filepath.Dir(exe)
	if strings.HasSuffix(dir, bundleSuffix) {
		return filepath.Dir(filepath.Dir(filepath.Dir(dir)))
	}
	return dir
}
