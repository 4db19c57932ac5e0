// Command bnotify shows a desktop notification.
package main

import "github.com/bytesized/utilities/internal/cmd"

func main() {
	cmd.Execute(cmd.Standalone("bnotify", cmd.NewNotifyCmd()))
}
