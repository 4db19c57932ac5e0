package digest

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bytesized/utilities/util"
)

// Expected is a digest read from user input or a checksum file.
type Expected struct {
	Algorithm string // set only when the line names it (BSD form)
	Digest    string // lowercase hex
	Name      string // file name the line refers to, if any
}

var (
	bsdLine       = regexp.MustCompile(`^([A-Za-z0-9_-]+) ?\((.*)\) ?= ?([0-9A-Fa-f]+)$`)
	coreutilsLine = regexp.MustCompile(`^\\?([0-9A-Fa-f]+) [ *](.+)$`)
	hexOnly       = regexp.MustCompile(`^[0-9A-Fa-f]+$`)
)

// ParseExpected accepts a bare hex digest, a coreutils line
// ("HEX  NAME" or "HEX *NAME") or a BSD line ("ALGO (NAME) = HEX").
func ParseExpected(line string) (Expected, error) {
	line = strings.TrimSpace(line)
	if m := bsdLine.FindStringSubmatch(line); m != nil {
		algo, err := util.CanonicalAlgorithm(m[1])
		if err != nil {
			return Expected{}, err
		}
		if !util.IsHexDigest(m[3]) {
			return Expected{}, fmt.Errorf("%w: %q", util.ErrInvalidDigest, m[3])
		}
		return Expected{Algorithm: algo, Digest: strings.ToLower(m[3]), Name: m[2]}, nil
	}
	if m := coreutilsLine.FindStringSubmatch(line); m != nil && util.IsHexDigest(m[1]) {
		return Expected{Digest: strings.ToLower(m[1]), Name: m[2]}, nil
	}
	if util.IsHexDigest(line) {
		return Expected{Digest: strings.ToLower(line)}, nil
	}
	if hexOnly.MatchString(line) {
		return Expected{}, fmt.Errorf("%w: %q", util.ErrInvalidDigest, line)
	}
	return Expected{}, fmt.Errorf("%w: %q", ErrUnrecognizedLine, line)
}

// ReadExpected reads a checksum file. Blank lines and # comments are
// skipped. With a single entry that entry is returned; otherwise the entry
// whose name matches the base name of target is chosen.
func ReadExpected(r io.Reader, target string) (Expected, error) {
	var entries []Expected
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		e, err := ParseExpected(line)
		if err != nil {
			return Expected{}, err
		}
		entries = append(entries, e)
	}
	if err := sc.Err(); err != nil {
		return Expected{}, err
	}

	switch len(entries) {
	case 0:
		return Expected{}, ErrNoDigest
	case 1:
		return entries[0], nil
	}
	base := filepath.Base(target)
	for _, e := range entries {
		if e.Name == target || filepath.Base(filepath.FromSlash(e.Name)) == base {
			return e, nil
		}
	}
	return Expected{}, fmt.Errorf("%w: %s", ErrNoDigestFor, target)
}

// ResolveAlgorithm picks the algorithm for a comparison. An explicit choice
// wins, then the algorithm named by the expected line, then a guess from the
// digest length, then fallback.
func ResolveAlgorithm(explicit string, exp Expected, fallback string) (string, error) {
	switch {
	case explicit != "":
		return util.CanonicalAlgorithm(explicit)
	case exp.Algorithm != "":
		return exp.Algorithm, nil
	}
	if algo, ok := util.AlgorithmForDigest(exp.Digest); ok {
		return algo, nil
	}
	if fallback == "" {
		fallback = util.DefaultAlgorithm
	}
	return util.CanonicalAlgorithm(fallback)
}

// Line formats a digest the way coreutils does.
func Line(hex, name string) string {
	return hex + "  " + name
}
