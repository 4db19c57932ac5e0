// Command bhex prints a hex dump of a file or stdin.
package main

import "github.com/bytesized/utilities/internal/cmd"

func main() {
	cmd.Execute(cmd.Standalone("bhex", cmd.NewHexdumpCmd()))
}
