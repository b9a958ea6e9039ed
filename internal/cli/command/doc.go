// Package command defines the kernbench command line.
//
// Commands work against local storage by default. With --server they
// talk to a running "kernbench serve" instead, so results from a remote
// machine can be listed and compared with the same commands.
package command
