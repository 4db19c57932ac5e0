package installer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"

	"github.com/bytesized/utilities/util"
)

// MigrateLegacy moves an install from the legacy root to p.Root. It
// reports whether anything moved. Nothing happens when p has no legacy root,
// when the legacy root does not exist, or when p.Root already exists; in the
// last case the legacy root is left for uninstall to remove.
func MigrateLegacy(p util.Paths) (bool, error) {
	if p.Legacy == "" || p.Legacy == p.Root {
		return false, nil
	}
	if _, err := os.Stat(p.Legacy); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	if _, err := os.Stat(p.Root); err == nil {
		log.Warn("both install roots exist, keeping the new one", "root", p.Root, "legacy", p.Legacy)
		return false, nil
	}
	if err := os.Rename(p.Legacy, p.Root); err != nil {
		return false, fmt.Errorf("move %s to %s: %w", p.Legacy, p.Root, err)
	}
	log.Info("moved install root", "from", p.Legacy, "to", p.Root)
	return true, nil
}
