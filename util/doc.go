// Package util provides the small building blocks shared by the bytesized
// utilities.
//
// Key Components:
//
// Hashing:
//   - A registry of digest algorithms (SHA-1/2/3, MD5, BLAKE2) addressed by
//     forgiving names ("SHA-256", "sha256", "sha_256")
//   - Streaming file hashing with optional progress callbacks
//   - Algorithm inference from a hex digest's length
//
// Executable lookup:
//   - Which, a PATH search that behaves the same on every platform and
//     always returns an absolute path
//   - ToUnixPath, which converts Windows paths with cygpath for bash consumers
//
// User directories:
//   - Paths describes ~/.bytesized_utilities and its config/data/labels
//     subdirectories
package util
