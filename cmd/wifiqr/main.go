// Command wifiqr makes a printable QR code for joining a Wi-Fi network.
package main

import "github.com/bytesized/utilities/internal/cmd"

func main() {
	cmd.Execute(cmd.Standalone("wifiqr", cmd.NewWifiQRCmd()))
}
