// Package main provides the bytesized command-line interface.
//
// bytesized bundles a set of small utilities behind one binary:
//   - regmv, regcp: rename or copy files by regular expression
//   - hash: hash files and verify digests
//   - hexdump, bcols, colors: terminal helpers
//   - markdown, wifiqr, notify, clearclip: desktop helpers
//   - label, install, shell: shell navigation and setup
//
// Each utility is also built as a standalone binary under cmd/.
package main
