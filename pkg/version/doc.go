// Package version reports the build version and VCS revision of rpathgen.
//
// Both values may be injected at link time; otherwise they are read from the
// module build information embedded by the Go toolchain.
package version
