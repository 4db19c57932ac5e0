package digest

import (
	"errors"
	"fmt"
)

// Sentinel errors for package digest.
var (
	ErrUnrecognizedLine = errors.New("unrecognized digest line")
	ErrNoDigest         = errors.New("no digest found")
	ErrNoDigestFor      = errors.New("no digest listed for file")
	ErrMismatch         = errors.New("digest mismatch")
	ErrUnreadable       = errors.New("files could not be hashed")
)

// FailureError summarises a verification run that found mismatches or
// unreadable files.
type FailureError struct {
	Mismatched int
	Failed     int
}

func (e *FailureError) Error() string {
	return fmt.Sprintf("verification failed: %d mismatched, %d unreadable", e.Mismatched, e.Failed)
}

func (e *FailureError) Is(target error) bool { return target == ErrMismatch && e.Mismatched > 0 }
