package dbjson

import (
	"sync"
	"time"
)

var (
	stampMu   sync.Mutex
	lastStamp int64
)

// NewStamp returns the current time in milliseconds, bumped past the
// previous value when two ids are minted within the same millisecond.
// Ids stay timestamp-derived and sortable by recency without colliding.
func NewStamp() int64 {
	stampMu.Lock()
	defer stampMu.Unlock()
	now := time.Now().UnixMilli()
	if now <= lastStamp {
		now = lastStamp + 1
	}
	lastStamp = now
	return now
}
