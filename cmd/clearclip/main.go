// Command clearclip clears the system clipboard.
package main

import "github.com/bytesized/utilities/internal/cmd"

func main() {
	cmd.Execute(cmd.Standalone("clearclip", cmd.NewClearClipCmd()))
}
