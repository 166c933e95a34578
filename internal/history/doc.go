// Package history records executed pipelines so they can be listed,
// searched and replayed. SQLiteStore persists runs in a WAL-mode SQLite
// database; MemoryStore keeps them in process.
package history
