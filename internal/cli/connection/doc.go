// Package connection is the HTTP client the CLI uses when --server points
// at a running "kernbench serve".
package connection
