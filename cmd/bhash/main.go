// Command bhash hashes files and verifies digests.
package main

import "github.com/bytesized/utilities/internal/cmd"

func main() {
	cmd.Execute(cmd.Standalone("bhash", cmd.NewHashCmd()))
}
