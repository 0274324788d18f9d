package types

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Message types sent over the live-reload channel
const (
	MessageHello  = "hello"
	MessageReload = "reload"
)

// WSMessage represents a live-reload WebSocket message
type WSMessage struct {
	Type       string     `json:"type"`
	Message    string     `json:"message,omitempty"`
	Files      []string   `json:"files,omitempty"`
	FileCount  int        `json:"fileCount,omitempty"`
	LastChange *time.Time `json:"lastChange,omitempty"`
}

// WSClientMessage represents a message from the browser
type WSClientMessage struct {
	Action string `json:"action"`
}

// WSClient represents a WebSocket client connection
type WSClient struct {
	Conn *websocket.Conn
	Mu   sync.Mutex
}

// FileStamp identifies one version of a file in the static root
type FileStamp struct {
	Size    int64
	ModTime time.Time
}

// Snapshot maps a slash-separated path relative to the static root to its stamp
type Snapshot map[string]FileStamp
