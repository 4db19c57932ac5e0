// Package wifiqr builds Wi-Fi join QR codes and renders them as a printable
// PNG with the network name and password alongside.
package wifiqr

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingSSID     = errors.New("network name is required")
	ErrMissingPassword = errors.New("password is required for secured networks")
	ErrInvalidSecurity = errors.New("invalid security type")
)

// Security is the authentication type written into the payload.
type Security string

const (
	WPA    Security = "WPA"
	WEP    Security = "WEP"
	NoPass Security = "nopass"
)

// ParseSecurity accepts wpa (also wpa2, wpa3), wep, and nopass (also none,
// open) in any case.
func ParseSecurity(s string) (Security, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "wpa", "wpa2", "wpa3":
		return WPA, nil
	case "wep":
		return WEP, nil
	case "nopass", "none", "open":
		return NoPass, nil
	}
	return "", fmt.Errorf("%w: %q (want WPA, WEP or nopass)", ErrInvalidSecurity, s)
}

// Network describes the network encoded in the QR code.
type Network struct {
	SSID     string
	Password string
	Security Security
	Hidden   bool
}

// Validate checks that the fields needed for the payload are present.
func (n Network) Validate() error {
	if n.SSID == "" {
		return ErrMissingSSID
	}
	switch n.Security {
	case WPA, WEP:
		if n.Password == "" {
			return ErrMissingPassword
		}
	case NoPass:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidSecurity, n.Security)
	}
	return nil
}

var escaper = strings.NewReplacer(`\`, `\\`, `;`, `\;`, `,`, `\,`, `"`, `\"`, `:`, `\:`)

// Escape backslash-escapes the characters that are special in the payload.
func Escape(s string) string { return escaper.Replace(s) }

// Payload is the WIFI: string phones recognise.
func (n Network) Payload() string {
	var b strings.Builder
	fmt.Fprintf(&b, "WIFI:T:%s;S:%s;", n.Security, Escape(n.SSID))
	if n.Security != NoPass {
		fmt.Fprintf(&b, "P:%s;", Escape(n.Password))
	}
	if n.Hidden {
		b.WriteString("H:true;")
	}
	b.WriteString(";")
	return b.String()
}
