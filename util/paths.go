package util

import (
	"fmt"
	"os"
	"path/filepath"
)

// RootDirName is the per-user directory holding configuration and data.
const RootDirName = ".bytesized_utilities"

// LegacyRootDirName is the root used by earlier releases. Installs found
// there are moved to RootDirName.
const LegacyRootDirName = ".bytesized_utilites"

// RootEnv overrides the per-user root directory when set.
const RootEnv = "BYTESIZED_ROOT"

// Paths are the per-user locations the utilities read and write.
type Paths struct {
	Home   string
	Root   string
	Config string
	Data   string
	Labels string
	Legacy string // root of an earlier release, when it may still exist
}

// PathsFor lays out the directory tree under root. Legacy is only set when
// root is the default location in home.
func PathsFor(home, root string) Paths {
	p := Paths{
		Home:   home,
		Root:   root,
		Config: filepath.Join(root, "config"),
		Data:   filepath.Join(root, "data"),
		Labels: filepath.Join(root, "data", "labels"),
	}
	if filepath.Clean(root) == filepath.Join(home, RootDirName) {
		p.Legacy = filepath.Join(home, LegacyRootDirName)
	}
	return p
}

// UserPaths resolves Paths for the current user, honouring RootEnv.
func UserPaths() (Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Paths{}, fmt.Errorf("failed to get home directory: %w", err)
	}
	root := os.Getenv(RootEnv)
	if root == "" {
		root = filepath.Join(home, RootDirName)
	}
	return PathsFor(home, root), nil
}

// EnsureDirs creates the root, config and data directories.
func (p Paths) EnsureDirs() error {
	for _, dir := range []string{p.Root, p.Config, p.Data} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return nil
}
