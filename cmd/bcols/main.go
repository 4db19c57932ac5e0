// Command bcols aligns delimited text into columns.
package main

import "github.com/bytesized/utilities/internal/cmd"

func main() {
	cmd.Execute(cmd.Standalone("bcols", cmd.NewColsCmd()))
}
