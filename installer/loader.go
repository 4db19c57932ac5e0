package installer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const (
	LoaderUUID  = "b52960a2-e8ed-4833-a86f-9aa7b401a557"
	StartMarker = "# >>> BYTESIZED BASHRC LOADER START(" + LoaderUUID + ") >>>\n"
	EndMarker   = "# <<< BYTESIZED BASHRC LOADER END(" + LoaderUUID + ") <<<\n"
	BashShebang = "#!/bin/bash\n"
)

// LoaderBlock returns the sentinel-delimited snippet that sources target.
func LoaderBlock(target string) string {
	var b strings.Builder
	b.WriteString(StartMarker)
	b.WriteString("# Do not tamper with this code or the surrounding sentinels.\n")
	b.WriteString("# To remove this, it is best to run the bytesized utilities uninstaller.\n")
	b.WriteString("# For more info, see: https://github.com/bytesized/utilities\n")
	fmt.Fprintf(&b, "if [[ -r \"%s\" && \"$_B_BASHRC_LOADED\" != \"true\" ]]\n", target)
	b.WriteString("then\n")
	fmt.Fprintf(&b, "  . \"%s\"\n", target)
	b.WriteString("fi\n")
	b.WriteString(EndMarker)
	return b.String()
}

// EditLoader rewrites content so it holds block exactly once, or not at all
// when remove is set. An existing block is replaced where it stands with a
// blank line on either side; otherwise block is appended after a blank line.
// Content with unbalanced sentinels is rejected.
func EditLoader(content, block string, remove bool) (string, error) {
	var out strings.Builder
	found, inBlock, justWrote := false, false, false
	last := "\n"
	for _, line := range strings.SplitAfter(content, "\n") {
		if line == "" {
			continue
		}
		if line == StartMarker {
			if inBlock {
				return "", fmt.Errorf("%w: start sentinel without an end sentinel", ErrBadSentinels)
			}
			inBlock = true
			if !found && !remove {
				if last != "\n" {
					out.WriteString("\n")
				}
				out.WriteString(block)
				justWrote = true
			}
			found = true
		}
		if !inBlock {
			if justWrote && line != "\n" {
				out.WriteString("\n")
			}
			out.WriteString(line)
			justWrote = false
		}
		if line == EndMarker {
			if !inBlock {
				return "", fmt.Errorf("%w: end sentinel without a start sentinel", ErrBadSentinels)
			}
			inBlock = false
		}
		last = line
	}
	if inBlock {
		return "", fmt.Errorf("%w: start sentinel without an end sentinel", ErrBadSentinels)
	}
	if found || remove {
		return out.String(), nil
	}

	switch {
	case !strings.HasSuffix(last, "\n"):
		out.WriteString("\n\n")
	case last != "\n":
		out.WriteString("\n")
	}
	out.WriteString(block)
	return out.String(), nil
}

// UpdateLoader applies EditLoader to the script at path. A missing script is
// created with a bash shebang unless the loader is being removed.
func UpdateLoader(path, target string, remove bool) error {
	block := LoaderBlock(target)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		if remove {
			return nil
		}
		return os.WriteFile(path, []byte(BashShebang+"\n"+block), 0o644)
	}
	if err != nil {
		return err
	}
	edited, err := EditLoader(string(data), block, remove)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if edited == string(data) {
		return nil
	}
	return replaceFile(path, []byte(edited))
}

// replaceFile swaps in the new content through a temporary sibling so the
// script is never left half written.
func replaceFile(path string, data []byte) error {
	mode := fs.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), mode); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
