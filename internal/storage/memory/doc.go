// Package memory provides a run store that lives only as long as the process.
package memory
