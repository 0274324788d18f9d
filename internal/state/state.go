package state

import (
	"sync"
	"time"
)

// ServerState holds the global server state
type ServerState struct {
	StartedAt  time.Time `json:"startedAt"`
	FileCount  int       `json:"fileCount"`
	LastChange time.Time `json:"lastChange"`
	mutex      sync.RWMutex
}

var globalState = &ServerState{
	StartedAt: time.Now(),
}

// GetFiles returns the static root file count and the time of the last change
func GetFiles() (int, time.Time) {
	globalState.mutex.RLock()
	defer globalState.mutex.RUnlock()
	return globalState.FileCount, globalState.LastChange
}

// SetFiles records a new static root snapshot
func SetFiles(count int) {
	globalState.mutex.Lock()
	defer globalState.mutex.Unlock()
	globalState.FileCount = count
	globalState.LastChange = time.Now()
}

// GetStartedAt returns when the process started serving
func GetStartedAt() time.Time {
	globalState.mutex.RLock()
	defer globalState.mutex.RUnlock()
	return globalState.StartedAt
}
