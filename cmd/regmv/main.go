// Command regmv renames files by regular expression.
package main

import "github.com/bytesized/utilities/internal/cmd"

func main() {
	cmd.Execute(cmd.Standalone("regmv", cmd.NewRegmvCmd()))
}
