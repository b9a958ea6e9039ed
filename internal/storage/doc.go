// Package storage persists benchmark runs.
//
// BadgerStore keeps each run as a JSON value under run/<id>. Run IDs are
// ULIDs, so key order is creation order and List walks the keyspace in
// reverse to return the newest runs first. With no directory configured
// the store runs Badger in memory and nothing survives the process.
//
// The memory subpackage provides a map-backed store used by tests and by
// runs started with history disabled.
package storage
