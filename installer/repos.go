package installer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Repo is an external project built from source during the build stage.
type Repo struct {
	Name string
	URL  string
}

// RustRepos are cloned with git and built with cargo. URLs are https so no
// credentials or host keys are needed.
var RustRepos = []Repo{
	{Name: "bcalc", URL: "https://github.com/bytesized/bcalc.git"},
}

// Runner executes name with args inside dir and returns its combined output.
type Runner func(ctx context.Context, dir, name string, args ...string) ([]byte, error)

func runCommand(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	c := exec.CommandContext(ctx, name, args...)
	c.Dir = dir
	return c.CombinedOutput()
}

// ReposDir is where external repositories of lang are checked out.
func (in *Installer) ReposDir(lang string) string {
	return filepath.Join(in.Paths.Data, "repos", lang)
}

// BinDirs lists the release directories of every Rust repo already built.
func (in *Installer) BinDirs() []string {
	var dirs []string
	for _, r := range RustRepos {
		dir := filepath.Join(in.ReposDir("rust"), r.Name, "target", "release")
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

func (in *Installer) build(ctx context.Context) error {
	git, err := in.Lookup("git")
	if err != nil {
		log.Warn("skipping external repositories", "err", err)
		return nil
	}
	cargo, err := in.Lookup("cargo")
	if err != nil {
		log.Warn("skipping rust utilities", "err", err)
		return nil
	}

	base := in.ReposDir("rust")
	if err := os.MkdirAll(base, 0o755); err != nil {
		return err
	}
	for _, r := range RustRepos {
		in.output("Fetching %s...", r.Name)
		dir := filepath.Join(base, r.Name)
		if _, err := os.Stat(dir); err == nil {
			if out, err := in.Run(ctx, dir, git, "pull"); err != nil {
				return stageError("pulling", r.Name, out, err)
			}
		} else if errors.Is(err, os.ErrNotExist) {
			if out, err := in.Run(ctx, base, git, "clone", r.URL, dir); err != nil {
				return stageError("cloning", r.Name, out, err)
			}
		} else {
			return err
		}

		in.output("Building %s...", r.Name)
		if out, err := in.Run(ctx, dir, cargo, "build", "--release"); err != nil {
			return stageError("building", r.Name, out, err)
		}
	}
	return nil
}

func stageError(action, name string, out []byte, err error) error {
	if len(out) > 0 {
		return fmt.Errorf("%w: %s %s: %w\n%s", ErrStageFailed, action, name, err, out)
	}
	return fmt.Errorf("%w: %s %s: %w", ErrStageFailed, action, name, err)
}
