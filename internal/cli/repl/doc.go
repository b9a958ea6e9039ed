// Package repl implements "kernbench shell", a line-oriented loop that
// executes CLI commands without restarting the process, so the storage
// and runner stay warm between runs.
//
// Built-ins: exit, quit, history, "!!" (repeat last line), and a trailing
// "?" to list the commands starting with what precedes it.
package repl
