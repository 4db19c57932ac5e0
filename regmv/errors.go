package regmv

import "errors"

// Sentinel errors for package regmv.
var (
	// Pattern and template errors
	ErrInvalidPattern = errors.New("invalid pattern")
	ErrUnknownGroup   = errors.New("unknown capture group")

	// Transform errors
	ErrUnknownTransform = errors.New("unknown transform")
	ErrTransformSyntax  = errors.New("invalid transform")
	ErrNotNumeric       = errors.New("capture group is not numeric")
	ErrArithmetic       = errors.New("arithmetic evaluation failed")

	// Execution errors
	ErrCopyDirectory = errors.New("cannot copy a directory")
)
