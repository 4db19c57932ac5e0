// Package version reports which build of the bytesized utilities is running.
//
// Version, Commit and Date are set at link time:
//
//	-ldflags "-X github.com/bytesized/utilities/version.Version=v1.0.0"
//
// Anything left empty is read from the VCS stamp in the binary's build info.
package version
