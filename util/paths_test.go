package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPathsFor(t *testing.T) {
	p := PathsFor("/home/u", "/home/u/.bytesized_utilities")
	want := Paths{
		Home:   "/home/u",
		Root:   "/home/u/.bytesized_utilities",
		Config: filepath.Join("/home/u/.bytesized_utilities", "config"),
		Data:   filepath.Join("/home/u/.bytesized_utilities", "data"),
		Labels: filepath.Join("/home/u/.bytesized_utilities", "data", "labels"),
		Legacy: filepath.Join("/home/u", LegacyRootDirName),
	}
	if p != want {
		t.Errorf("PathsFor() = %+v, want %+v", p, want)
	}

	if p := PathsFor("/home/u", "/srv/bytesized"); p.Legacy != "" {
		t.Errorf("Legacy with a custom root = %q, want empty", p.Legacy)
	}
}

func TestUserPaths(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(RootEnv, "")

	p, err := UserPaths()
	if err != nil {
		t.Fatal(err)
	}
	if p.Root != filepath.Join(home, RootDirName) {
		t.Errorf("Root = %q", p.Root)
	}

	override := filepath.Join(t.TempDir(), "elsewhere")
	t.Setenv(RootEnv, override)
	if p, _ = UserPaths(); p.Root != override {
		t.Errorf("Root with %s = %q, want %q", RootEnv, p.Root, override)
	}

	if err := p.EnsureDirs(); err != nil {
		t.Fatal(err)
	}
	for _, dir := range []string{p.Root, p.Config, p.Data} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Errorf("%s not created: %v", dir, err)
		}
	}
}
