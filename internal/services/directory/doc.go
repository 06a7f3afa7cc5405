// Package directory serves the users collection that the console reads.
//
// It is a small development backend: users live in SQLite, are seeded on
// first start, and are exposed as a JSON array on GET /users.
package directory
