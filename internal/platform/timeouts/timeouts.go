// Package timeouts defines shared timeout constants used across console
// processes so the HTTP boundaries agree on their durations.
package timeouts

import "time"

// UsersRequest caps the time allowed for one GET /users call from a view to
// the users API.
const UsersRequest = 5 * time.Second

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// ViewSession is how long an idle console view session keeps its state.
const ViewSession = 30 * time.Minute
