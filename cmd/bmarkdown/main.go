// Command bmarkdown renders markdown through the GitHub API.
package main

import "github.com/bytesized/utilities/internal/cmd"

func main() {
	cmd.Execute(cmd.Standalone("bmarkdown", cmd.NewMarkdownCmd()))
}
