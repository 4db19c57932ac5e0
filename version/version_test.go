package version

import (
	"bytes"
	"testing"
)

func TestBuildString(t *testing.T) {
	tests := []struct {
		name  string
		build Build
		want  string
	}{
		{"version only", Build{Version: "v1.2.0"}, "v1.2.0"},
		{"short commit", Build{Version: "v1.2.0", Commit: "abc"}, "v1.2.0 (abc)"},
		{"long commit", Build{Version: "v1.2.0", Commit: "0123456789abcdef"}, "v1.2.0 (0123456)"},
		{"dated", Build{Version: "devel", Commit: "0123456789", Date: "2026-01-02T03:04:05Z"}, "devel (0123456, built 2026-01-02T03:04:05Z)"},
		{"dirty", Build{Version: "devel", Commit: "0123456789", Modified: true}, "devel (0123456-dirty)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.build.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestForLinkerValues(t *testing.T) {
	oldV, oldC, oldD := Version, Commit, Date
	t.Cleanup(func() { Version, Commit, Date = oldV, oldC, oldD })
	Version, Commit, Date = "v9.9.9", "feedfacecafe", "today"

	b := For("bhash")
	if b.Tool != "bhash" || b.Version != "v9.9.9" || b.Commit != "feedfacecafe" || b.Date != "today" {
		t.Errorf("For() = %+v", b)
	}
	if b.GoVersion == "" {
		t.Error("GoVersion is empty")
	}
}

func TestForDefaults(t *testing.T) {
	oldV := Version
	t.Cleanup(func() { Version = oldV })
	Version = ""
	if b := For("x"); b.Version == "" {
		t.Error("Version is empty without linker values")
	}
}

func TestBuildWrite(t *testing.T) {
	var out bytes.Buffer
	if err := (Build{Tool: "regmv", Version: "v1", GoVersion: "go1.25"}).Write(&out); err != nil {
		t.Fatal(err)
	}
	if want := "regmv v1\n  go: go1.25\n"; out.String() != want {
		t.Errorf("Write() = %q, want %q", out.String(), want)
	}
}
