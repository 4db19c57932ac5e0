// Package util provides utility functions shared by the bytesized utilities.
package util

import "errors"

// Sentinel errors for package util.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// File and directory errors
	ErrExpectedFile      = errors.New("expected file, got directory")
	ErrExpectedDirectory = errors.New("expected directory but got file")

	// Hashing errors
	ErrUnknownAlgorithm = errors.New("unknown hash algorithm")
	ErrInvalidDigest    = errors.New("invalid hex digest")

	// Executable lookup errors
	ErrExecutableNotFound = errors.New("executable not found")
)
