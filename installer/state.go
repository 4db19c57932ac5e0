package installer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/pelletier/go-toml/v2"

	"github.com/bytesized/utilities/util"
)

// StateFileName is the installer's saved options, relative to the config dir.
const StateFileName = "install.toml"

// State holds the options that persist between installer runs.
type State struct {
	Mozilla   bool `toml:"mozilla"`
	Build     bool `toml:"build"`
	Configure bool `toml:"configure"`
}

// DefaultState is used for every option the saved state does not supply.
func DefaultState() State {
	return State{Mozilla: false, Build: true, Configure: true}
}

// StatePath returns where the state of p is stored.
func StatePath(p util.Paths) string {
	return filepath.Join(p.Config, StateFileName)
}

// ParseBool accepts true/t/yes/y/1 and false/f/no/n/0, case-insensitively.
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "t", "yes", "y", "1":
		return true, nil
	case "false", "f", "no", "n", "0":
		return false, nil
	}
	return false, fmt.Errorf("'%s' %w", s, ErrInvalidBool)
}

// LoadState reads the saved state at path. Missing or unreadable files and
// values that are not booleans fall back to DefaultState with a warning.
func LoadState(path string) State {
	st := DefaultState()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return st
	}
	if err != nil {
		log.Warn("unable to read install configuration, using defaults", "path", path, "err", err)
		return st
	}
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		log.Warn("unable to parse install configuration, using defaults", "path", path, "err", err)
		return st
	}
	for key, dst := range map[string]*bool{
		"mozilla":   &st.Mozilla,
		"build":     &st.Build,
		"configure": &st.Configure,
	} {
		v, ok := raw[key]
		if !ok {
			continue
		}
		b, ok := v.(bool)
		if !ok {
			log.Warn("invalid install configuration value, using the default", "key", key, "value", v)
			continue
		}
		*dst = b
	}
	return st
}

// Save writes st to path.
func (st State) Save(path string) error {
	data, err := toml.Marshal(st)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
