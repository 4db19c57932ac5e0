package installer

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/bytesized/utilities/util"
)

const (
	ProfileFileName    = "universal.bashrc"
	AdditionalFileName = "additional.bashrc"
)

//go:embed universal.bashrc
var universalProfile string

// Profile returns the shell profile the installer writes and the loader
// block sources.
func Profile() string {
	return universalProfile
}

// AdditionalProfile builds additional.bashrc, which appends dirs to PATH.
// Paths are converted to the form bash expects first.
func AdditionalProfile(dirs ...string) (string, error) {
	var b strings.Builder
	b.WriteString(BashShebang)
	b.WriteString("\n")
	for _, dir := range dirs {
		unix, err := util.ToUnixPath(dir)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "export PATH=\"${PATH}:%s\"\n", unix)
	}
	return b.String(), nil
}
