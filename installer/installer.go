// Package installer sets up a user's machine for the bytesized utilities:
// it builds external tools, installs the shell profile and removes it all
// again on uninstall.
package installer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"

	"github.com/bytesized/utilities/util"
)

// Installer runs the build, configure and cleanup stages.
type Installer struct {
	Paths       util.Paths
	State       State
	Uninstall   bool
	LeaveConfig bool
	Quiet       bool
	GOOS        string

	// BinDir holds the bytesized binaries and is added to PATH.
	BinDir string
	Out    io.Writer
	Lookup func(name string) (string, error)
	Run    Runner
}

// New returns an Installer for the current user with the saved state.
func New(out io.Writer) (*Installer, error) {
	p, err := util.UserPaths()
	if err != nil {
		return nil, err
	}
	if _, err := MigrateLegacy(p); err != nil {
		return nil, err
	}
	bin := ""
	if exe, err := os.Executable(); err == nil {
		bin = filepath.Dir(exe)
	}
	return &Installer{
		Paths:  p,
		State:  LoadState(StatePath(p)),
		GOOS:   runtime.GOOS,
		BinDir: bin,
		Out:    out,
		Lookup: func(name string) (string, error) { return util.Which(name) },
		Run:    runCommand,
	}, nil
}

func (in *Installer) output(format string, args ...any) {
	if in.Quiet || in.Out == nil {
		return
	}
	fmt.Fprintf(in.Out, format+"\n", args...)
}

// Execute performs the install, or the uninstall when Uninstall is set.
func (in *Installer) Execute(ctx context.Context) error {
	if err := in.preflight(); err != nil {
		return err
	}
	if !in.Uninstall {
		if err := in.Paths.EnsureDirs(); err != nil {
			return err
		}
		if err := in.State.Save(StatePath(in.Paths)); err != nil {
			return fmt.Errorf("save install configuration: %w", err)
		}
	}

	if in.State.Build && !in.Uninstall {
		in.output("=== Build Stage Start")
		if err := in.build(ctx); err != nil {
			return err
		}
		in.output("=== Build Stage Complete\n")
	}

	if in.State.Configure {
		in.output("=== Configure Stage Start")
		in.output("Configuring Mozilla...")
		if err := in.configureMozilla(); err != nil {
			return err
		}
		in.output("Configuring bashrc...")
		if err := in.configureBashrc(); err != nil {
			return err
		}
		in.output("=== Configure Stage Complete\n")
	}

	if in.Uninstall {
		in.output("Cleanup Start")
		if !in.LeaveConfig {
			for _, root := range []string{in.Paths.Root, in.Paths.Legacy} {
				if root == "" {
					continue
				}
				if _, err := os.Stat(root); err != nil {
					continue
				}
				in.output("Removing %q...", root)
				if err := os.RemoveAll(root); err != nil {
					return err
				}
			}
		}
		in.output("Cleanup Complete\n")
		in.output("Uninstall Complete")
		return nil
	}
	in.output("Installation Complete")
	return nil
}

// preflight checks for the tools the stages need before anything changes.
func (in *Installer) preflight() error {
	if in.GOOS == "windows" && in.State.Configure {
		if _, err := in.Lookup("cygpath"); err != nil {
			return fmt.Errorf("%w: cygpath", ErrMissingTool)
		}
	}
	return nil
}

// MozillaDir tells the shell profile to export Mozilla build variables.
func (in *Installer) MozillaDir() string {
	return filepath.Join(in.Paths.Config, "mozilla")
}

func (in *Installer) configureMozilla() error {
	if in.Uninstall {
		return nil
	}
	if in.State.Mozilla {
		return os.MkdirAll(in.MozillaDir(), 0o755)
	}
	err := os.RemoveAll(in.MozillaDir())
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func (in *Installer) configureBashrc() error {
	target := filepath.Join(in.Paths.Config, ProfileFileName)
	if !in.Uninstall {
		if err := os.WriteFile(target, []byte(Profile()), 0o644); err != nil {
			return err
		}
	}
	loadTarget, err := util.ToUnixPath(target)
	if err != nil {
		return err
	}
	for _, name := range []string{".bashrc", ".bash_profile"} {
		script := filepath.Join(in.Paths.Home, name)
		if err := UpdateLoader(script, loadTarget, in.Uninstall); err != nil {
			return err
		}
		log.Debug("updated loader", "script", script, "removed", in.Uninstall)
	}
	if in.Uninstall {
		return nil
	}

	var dirs []string
	if in.BinDir != "" {
		dirs = append(dirs, in.BinDir)
	}
	dirs = append(dirs, in.BinDirs()...)
	additional, err := AdditionalProfile(dirs...)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(in.Paths.Config, AdditionalFileName), []byte(additional), 0o644)
}
