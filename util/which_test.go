package util

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestWhichExtraDirs(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("exec bit semantics differ on windows")
	}

	dir := t.TempDir()
	tool := filepath.Join(dir, "bytesized-fake-tool")
	if err := os.WriteFile(tool, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	notExec := filepath.Join(dir, "bytesized-not-exec")
	if err := os.WriteFile(notExec, []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("PATH", "")

	got, err := Which("bytesized-fake-tool", dir)
	if err != nil {
		t.Fatalf("Which() error = %v", err)
	}
	if got != tool {
		t.Errorf("Which() = %q, want %q", got, tool)
	}

	if _, err := Which("bytesized-not-exec", dir); !errors.Is(err, ErrExecutableNotFound) {
		t.Errorf("Which(non-executable) error = %v, want ErrExecutableNotFound", err)
	}
	if _, err := Which("bytesized-missing", dir); !errors.Is(err, ErrExecutableNotFound) {
		t.Errorf("Which(missing) error = %v, want ErrExecutableNotFound", err)
	}
}

func TestWhichPath(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("exec bit semantics differ on windows")
	}
	dir := t.TempDir()
	tool := filepath.Join(dir, "bytesized-on-path")
	if err := os.WriteFile(tool, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATH", dir)

	got, err := Which("bytesized-on-path")
	if err != nil || got != tool {
		t.Errorf("Which() = %q, %v, want %q", got, err, tool)
	}
	got, err = Which(tool)
	if err != nil || got != tool {
		t.Errorf("Which(absolute) = %q, %v, want %q", got, err, tool)
	}
}

func TestCandidates(t *testing.T) {
	tests := []struct {
		goos, pathext, base string
		want                []string
	}{
		{"linux", ".EXE", "/bin/notify", []string{"/bin/notify"}},
		{"windows", ".COM;.EXE;.BAT", `C:\bin\notify`, []string{`C:\bin\notify`, `C:\bin\notify.COM`, `C:\bin\notify.EXE`, `C:\bin\notify.BAT`}},
		{"windows", ".COM;.EXE", `C:\bin\notify.exe`, []string{`C:\bin\notify.exe`, `C:\bin\notify.exe.COM`}},
		{"windows", "", `C:\bin\notify`, []string{`C:\bin\notify`}},
	}
	for _, tt := range tests {
		got := candidates(tt.goos, tt.pathext, tt.base)
		if strings.Join(got, "|") != strings.Join(tt.want, "|") {
			t.Errorf("candidates(%q, %q, %q) = %q, want %q", tt.goos, tt.pathext, tt.base, got, tt.want)
		}
	}
}

func TestToUnixPathIdentity(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires cygpath on windows")
	}
	got, err := ToUnixPath("/usr/local/bin")
	if err != nil || got != "/usr/local/bin" {
		t.Errorf("ToUnixPath() = %q, %v", got, err)
	}
}
