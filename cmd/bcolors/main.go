// Command bcolors shows terminal colors and builds escape sequences.
package main

import "github.com/bytesized/utilities/internal/cmd"

func main() {
	cmd.Execute(cmd.Standalone("bcolors", cmd.NewColorsCmd()))
}
