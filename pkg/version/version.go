package version

// version is overridden at build time:
//
//	go build -ldflags "-X github.com/cbodonnell/pixelbattles/pkg/version.version=v0.1.0" ./cmd/server
var version = "dev"

// Get returns the version the binary was built with.
func Get() string {
	return version
}
