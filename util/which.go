package util

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// Which locates command on PATH, followed by any extraDirs, and returns its
// absolute path. A command containing a path separator is checked as is.
//
// On Windows a command without an extension is also found, PATHEXT is
// honoured, and the registry's App Paths are consulted last; on other
// platforms the candidate must be a regular file with an executable bit set.
func Which(command string, extraDirs ...string) (string, error) {
	pathext := os.Getenv("PATHEXT")
	if strings.ContainsAny(command, "/"+string(filepath.Separator)) {
		for _, candidate := range candidates(runtime.GOOS, pathext, command) {
			if isExecutable(candidate) {
				return filepath.Abs(candidate)
			}
		}
		return "", fmt.Errorf("%w: %s", ErrExecutableNotFound, command)
	}

	dirs := append(filepath.SplitList(os.Getenv("PATH")), extraDirs...)
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		for _, candidate := range candidates(runtime.GOOS, pathext, filepath.Join(dir, command)) {
			if isExecutable(candidate) {
				return filepath.Abs(candidate)
			}
		}
	}
	if path, ok := registeredApp(command); ok {
		return path, nil
	}
	return "", fmt.Errorf("%w: %s", ErrExecutableNotFound, command)
}

// candidates lists the file names tried for base. Windows tries base itself
// and then base with each PATHEXT extension it does not already carry.
func candidates(goos, pathext, base string) []string {
	if goos != "windows" {
		return []string{base}
	}
	out := []string{base}
	for _, ext := range strings.Split(pathext, ";") {
		if ext == "" || strings.HasSuffix(strings.ToLower(base), strings.ToLower(ext)) {
			continue
		}
		out = append(out, base+ext)
	}
	return out
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}

// ToUnixPath converts a native path into the form bash expects. Outside of
// Windows it is the identity; on Windows it shells out to `cygpath -u`.
func ToUnixPath(path string) (string, error) {
	if runtime.GOOS != "windows" {
		return path, nil
	}
	cygpath, err := Which("cygpath")
	if err != nil {
		return "", err
	}
	out, err := exec.Command(cygpath, "-u", path).Output()
	if err != nil {
		return "", fmt.Errorf("cygpath %s: %w", path, err)
	}
	return strings.TrimSpace(string(out)), nil
}
