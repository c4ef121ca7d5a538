// Package timeouts holds the fixed durations shared by festival servers and
// commands. Unit loads have no timeout.
package timeouts

import "time"

const (
	// ReadHeader bounds how long a client may take to send request headers.
	ReadHeader = 5 * time.Second
	// Idle closes keep-alive connections with no traffic.
	Idle = 2 * time.Minute
	// Shutdown bounds the drain of in-flight requests on stop.
	Shutdown = 10 * time.Second
	// StoreOpen bounds the startup ping against the SQLite store.
	StoreOpen = 5 * time.Second
)
