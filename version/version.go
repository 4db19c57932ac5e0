package version

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
)

// Set with -ldflags -X; empty values fall back to the embedded build info.
var (
	Version string
	Commit  string
	Date    string
)

// Build describes the binary a tool was built into.
type Build struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	Modified  bool   `json:"modified,omitempty"`
	Date      string `json:"date,omitempty"`
	GoVersion string `json:"go_version"`
}

// For returns the build of the running binary, labelled with tool.
func For(tool string) Build {
	b := Build{
		Tool:      tool,
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: runtime.Version(),
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		if b.Version == "" {
			b.Version = "devel"
		}
		return b
	}
	if b.Version == "" && info.Main.Version != "(devel)" {
		b.Version = info.Main.Version
	}
	if b.Version == "" {
		b.Version = "devel"
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if b.Commit == "" {
				b.Commit = s.Value
			}
		case "vcs.time":
			if b.Date == "" {
				b.Date = s.Value
			}
		case "vcs.modified":
			b.Modified = s.Value == "true"
		}
	}
	return b
}

// String is the one-line form used by --version.
func (b Build) String() string {
	if b.Commit == "" {
		return b.Version
	}
	commit := b.Commit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	if b.Modified {
		commit += "-dirty"
	}
	if b.Date == "" {
		return fmt.Sprintf("%s (%s)", b.Version, commit)
	}
	return fmt.Sprintf("%s (%s, built %s)", b.Version, commit, b.Date)
}

// Write prints b as "TOOL VERSION" followed by its details.
func (b Build) Write(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%s %s\n  go: %s\n", b.Tool, b, b.GoVersion)
	return err
}

// Short is the one-line version shared by every tool.
func Short() string { return For("").String() }
