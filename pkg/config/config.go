package config

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"static-server/internal/types"
)

// Constants
const (
	Host       = "0.0.0.0"
	Port       = 8888
	StaticRoot = "."
	IndexFile  = "index.html"
	Debug      = true

	ReloadPath       = "/_dev/reload"
	ReloadScriptPath = "/_dev/reload.js"
	WatchInterval    = time.Second
	ShutdownTimeout  = 5 * time.Second
)

// Global variables for the application
var (
	// Live-reload client management
	reloadClients      = make(map[*types.WSClient]bool)
	reloadClientsMutex sync.RWMutex
	upgrader           = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true // Dev-only endpoint, pages may be opened from any host name
		},
	}
)

// Addr returns the listen address
func Addr() string {
	return net.JoinHostPort(Host, strconv.Itoa(Port))
}

// GetReloadClients returns a copy of the live-reload clients map (thread-safe)
func GetReloadClients() map[*types.WSClient]bool {
	reloadClientsMutex.RLock()
	defer reloadClientsMutex.RUnlock()

	clients := make(map[*types.WSClient]bool, len(reloadClients))
	for k, v := range reloadClients {
		clients[k] = v
	}
	return clients
}

// AddReloadClient registers a live-reload client (thread-safe)
func AddReloadClient(client *types.WSClient) {
	reloadClientsMutex.Lock()
	reloadClients[client] = true
	reloadClientsMutex.Unlock()
}

// RemoveReloadClient unregisters a live-reload client (thread-safe)
func RemoveReloadClient(client *types.WSClient) {
	reloadClientsMutex.Lock()
	delete(reloadClients, client)
	reloadClientsMutex.Unlock()
}

// GetUpgrader returns the WebSocket upgrader
func GetUpgrader() websocket.Upgrader {
	return upgrader
}
