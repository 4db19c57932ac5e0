package main

import "github.com/bytesized/utilities/internal/cmd"

func main() {
	cmd.Execute(cmd.NewRootCmd())
}
