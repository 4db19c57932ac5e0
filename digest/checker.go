package digest

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/bytesized/utilities/util"
)

// Status is the outcome for one file.
type Status int

const (
	StatusOK Status = iota
	StatusMismatch
	StatusMissing // no sidecar digest
	StatusWritten // sidecar digest created
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusMismatch:
		return "FAILED"
	case StatusMissing:
		return "NO DIGEST"
	case StatusWritten:
		return "WRITTEN"
	default:
		return "ERROR"
	}
}

// Result describes one hashed or verified file.
type Result struct {
	Path      string
	Algorithm string
	Expected  string
	Actual    string
	Status    Status
	Err       error
}

// Summary counts the results of a tree verification.
type Summary struct {
	OK         int
	Mismatched int
	Missing    int
	Written    int
	Failed     int
}

func (s *Summary) add(r Result) {
	switch r.Status {
	case StatusOK:
		s.OK++
	case StatusMismatch:
		s.Mismatched++
	case StatusMissing:
		s.Missing++
	case StatusWritten:
		s.Written++
	default:
		s.Failed++
	}
}

func (s Summary) String() string {
	parts := []string{fmt.Sprintf("%d ok", s.OK)}
	if s.Mismatched > 0 {
		parts = append(parts, fmt.Sprintf("%d mismatched", s.Mismatched))
	}
	if s.Missing > 0 {
		parts = append(parts, fmt.Sprintf("%d without digest", s.Missing))
	}
	if s.Written > 0 {
		parts = append(parts, fmt.Sprintf("%d written", s.Written))
	}
	if s.Failed > 0 {
		parts = append(parts, fmt.Sprintf("%d unreadable", s.Failed))
	}
	return strings.Join(parts, ", ")
}

// Err returns a *FailureError when any file mismatched or could not be read.
func (s Summary) Err() error {
	if s.Mismatched == 0 && s.Failed == 0 {
		return nil
	}
	return &FailureError{Mismatched: s.Mismatched, Failed: s.Failed}
}

// Checker hashes and verifies files with one algorithm.
type Checker struct {
	Algorithm string
	// Progress, when set, returns a progress callback for the named file.
	Progress func(path string) util.ProgressFunc
	// Done, when set, is called after each file has been hashed.
	Done func(path string)
}

// Sum hashes the file at path.
func (c *Checker) Sum(path string) (string, error) {
	var progress util.ProgressFunc
	if c.Progress != nil {
		progress = c.Progress(path)
	}
	sum, err := util.GetFileHashWithProgress(path, c.Algorithm, progress)
	if c.Done != nil {
		c.Done(path)
	}
	return sum, err
}

// Verify hashes path and compares it with exp, ignoring case.
func (c *Checker) Verify(path string, exp Expected) Result {
	r := Result{Path: path, Algorithm: c.Algorithm, Expected: strings.ToLower(exp.Digest)}
	sum, err := c.Sum(path)
	if err != nil {
		r.Status, r.Err = StatusError, err
		return r
	}
	r.Actual = sum
	if sum == r.Expected {
		r.Status = StatusOK
	} else {
		r.Status = StatusMismatch
		r.Err = ErrMismatch
	}
	return r
}

// SidecarPath is where the digest of path is kept.
func (c *Checker) SidecarPath(path string) string {
	return path + "." + c.Algorithm
}

// IsSidecar reports whether path is the digest sidecar of another file: it
// is named after a supported algorithm and the file it belongs to exists
// next to it.
func IsSidecar(path string) bool {
	ext := filepath.Ext(path)
	if ext == "" {
		return false
	}
	if _, err := util.CanonicalAlgorithm(strings.TrimPrefix(ext, ".")); err != nil {
		return false
	}
	info, err := os.Stat(strings.TrimSuffix(path, ext))
	return err == nil && info.Mode().IsRegular()
}

// VerifyTree checks every regular file below root against its sidecar
// digest. With write set, files without a sidecar get one instead of being
// counted as missing. report, when not nil, receives each result. The
// returned error is the walk error, if any; a failed verification shows up
// in Summary.Err.
func (c *Checker) VerifyTree(ctx context.Context, root string, write bool, report func(Result)) (Summary, error) {
	var sum Summary
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !d.Type().IsRegular() || IsSidecar(path) {
			return nil
		}
		r := c.verifySidecar(path, write)
		sum.add(r)
		log.Debug("verified", "path", path, "status", r.Status)
		if report != nil {
			report(r)
		}
		return nil
	})
	return sum, err
}

func (c *Checker) verifySidecar(path string, write bool) Result {
	sidecar := c.SidecarPath(path)
	f, err := os.Open(sidecar)
	if errors.Is(err, fs.ErrNotExist) {
		if !write {
			return Result{Path: path, Algorithm: c.Algorithm, Status: StatusMissing}
		}
		return c.writeSidecar(path, sidecar)
	}
	if err != nil {
		return Result{Path: path, Algorithm: c.Algorithm, Status: StatusError, Err: err}
	}
	defer f.Close()

	exp, err := ReadExpected(f, path)
	if err != nil {
		return Result{Path: path, Algorithm: c.Algorithm, Status: StatusError, Err: fmt.Errorf("%s: %w", sidecar, err)}
	}
	if exp.Algorithm != "" && exp.Algorithm != c.Algorithm {
		named := *c
		named.Algorithm = exp.Algorithm
		return named.Verify(path, exp)
	}
	return c.Verify(path, exp)
}

func (c *Checker) writeSidecar(path, sidecar string) Result {
	r := Result{Path: path, Algorithm: c.Algorithm}
	sum, err := c.Sum(path)
	if err != nil {
		r.Status, r.Err = StatusError, err
		return r
	}
	r.Actual = sum
	line := Line(sum, filepath.Base(path)) + "\n"
	if err := os.WriteFile(sidecar, []byte(line), 0o644); err != nil {
		r.Status, r.Err = StatusError, err
		return r
	}
	r.Status = StatusWritten
	return r
}
