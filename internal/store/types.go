package store

import "time"

// Scan is one completed scan cycle.
type Scan struct {
	ID           int64
	StartedAt    time.Time
	ProjectCount int
}
