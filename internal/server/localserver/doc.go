// Package localserver serves the kernbench API on a Unix domain socket.
//
// The socket is created with owner-only permissions, so file system access
// controls who may start runs. Clients reach it with
// --server unix:///path/to/kernbench.sock.
package localserver
