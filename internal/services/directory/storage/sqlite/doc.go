// Package sqlite provides the SQLite-backed directory store.
package sqlite
