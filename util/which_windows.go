package util

import (
	"path/filepath"
	"strings"

	"golang.org/x/sys/windows/registry"
)

const appPathsKey = `SOFTWARE\Microsoft\Windows\CurrentVersion\App Paths\`

// registeredApp looks command up under the registry's App Paths, where
// installers register executables that are not on PATH.
func registeredApp(command string) (string, bool) {
	if !strings.HasSuffix(strings.ToLower(command), ".exe") {
		command += ".exe"
	}
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, appPathsKey+command, registry.QUERY_VALUE)
	if err != nil {
		return "", false
	}
	defer k.Close()
	path, _, err := k.GetStringValue("")
	if err != nil || path == "" {
		return "", false
	}
	abs, err := filepath.Abs(strings.Trim(path, `"`))
	if err != nil {
		return "", false
	}
	return abs, true
}
