// Command regcp copies files to names built from a regular expression.
package main

import "github.com/bytesized/utilities/internal/cmd"

func main() {
	cmd.Execute(cmd.Standalone("regcp", cmd.NewRegcpCmd()))
}
