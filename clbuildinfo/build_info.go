// Package clbuildinfo provides the version the binary was built as.
package clbuildinfo

import (
	"go.uber.org/fx"
)

// DevVersion is reported by binaries that were built without a version.
const DevVersion = "v0.0.0-dev"

// Info provides build-time information to the rest of the application.
type Info struct {
	version string
}

// New initializes the build info, an empty version is reported as the dev version.
func New(version string) *Info {
	if version == "" {
		version = DevVersion
	}

	return &Info{version: version}
}

// Version as determined at build time.
func (in *Info) Version() string {
	return in.version
}

// moduleName for naming conventions.
const moduleName = "clbuildinfo"

// Provide the build info for 'version' as a dependency.
func Provide(version string) fx.Option {
	return fx.Module(moduleName,
		fx.Supply(New(version)),
	)
}

// Test provides di for testing where no specific version is required to be provided.
func Test() fx.Option {
	return Provide("v0.0.0-test")
}
