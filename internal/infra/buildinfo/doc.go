// Package buildinfo reports the kernbench version and the Go toolchain and
// platform the binary was built for.
//
// Version, Commit and BuildTime are injected via ldflags:
//
//	go build -ldflags "-X .../buildinfo.Version=1.0.0 -X .../buildinfo.Commit=abc123"
package buildinfo
