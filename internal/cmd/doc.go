// Package cmd provides the command-line interface of the bytesized
// utilities.
//
// Each utility is implemented as a separate file with its own constructor
// function that returns a *cobra.Command:
//   - regmv, regcp: regular expression batch rename and copy
//   - hash: digests and digest verification (bhash)
//   - hexdump: offset, hex and character dumps (bhex)
//   - bcols: column alignment
//   - colors: color chart, escape codes and an interactive picker (bcolors)
//   - markdown: rendering through the GitHub API (bmarkdown)
//   - wifiqr: Wi-Fi join QR codes
//   - notify: desktop notifications (bnotify)
//   - clearclip: clipboard clearing
//   - label: named directories used by the shell profile
//   - install, shell: installer and shell profile
//
// NewRootCmd groups them under the bytesized binary. Standalone wraps a
// single constructor so it can run as its own binary under cmd/.
package cmd
