// Package usertable holds the state behind the console's users table: the
// loaded row collection, which rows are checked, and which page is shown.
//
// A Snapshot is an immutable value. Every operation returns a new Snapshot,
// so views can derive what to render from plain function calls without a UI
// harness. The Loader is the only code path that replaces the row collection.
package usertable
