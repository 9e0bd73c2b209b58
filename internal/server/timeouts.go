package server

import "time"

const (
	readTimeout = 10 * time.Second
	// An admin refresh holds the connection for a full pipeline cycle.
	writeTimeout = 2 * time.Minute
	idleTimeout  = 60 * time.Second
)

// shutdownTimeout is a var so tests can shorten it.
var shutdownTimeout = 10 * time.Second
