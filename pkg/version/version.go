// Package version exposes the build version of the footprint binary.
package version

// Version is overridden at build time via
// -ldflags "-X github.com/greendilt/footprint/pkg/version.Version=v1.2.3".
var Version = "dev" //nolint:gochecknoglobals // Set by the linker.

// GetVersion returns the build version string.
func GetVersion() string {
	return Version
}
