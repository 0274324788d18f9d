package websocket

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"static-server/internal/state"
	"static-server/internal/types"
	"static-server/pkg/config"
)

const writeTimeout = 5 * time.Second

// ReloadHandler handles live-reload WebSocket connections
func ReloadHandler(w http.ResponseWriter, r *http.Request) {
	upgrader := config.GetUpgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logrus.WithError(err).Error("Failed to upgrade WebSocket connection")
		return
	}
	defer conn.Close()

	client := &types.WSClient{
		Conn: conn,
		Mu:   sync.Mutex{},
	}

	config.AddReloadClient(client)
	defer config.RemoveReloadClient(client)

	logrus.WithField("remote", r.RemoteAddr).Debug("Live-reload client connected")

	fileCount, lastChange := state.GetFiles()
	hello := types.WSMessage{
		Type:      types.MessageHello,
		Message:   "live reload enabled",
		FileCount: fileCount,
	}
	if !lastChange.IsZero() {
		hello.LastChange = &lastChange
	}
	if err := send(client, hello); err != nil {
		logrus.WithError(err).Warn("Failed to send hello to live-reload client")
		return
	}

	// The browser never needs to talk back; reading only detects the close.
	for {
		var msg types.WSClientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logrus.WithError(err).Debug("Live-reload connection closed")
			}
			break
		}
		logrus.WithField("action", msg.Action).Debug("Live-reload message received")
	}

	logrus.WithField("remote", r.RemoteAddr).Debug("Live-reload client disconnected")
}

// BroadcastToAll sends a message to all live-reload clients
func BroadcastToAll(msg types.WSMessage) {
	clients := config.GetReloadClients()

	logrus.WithFields(logrus.Fields{
		"message_type": msg.Type,
		"client_count": len(clients),
	}).Debug("Broadcasting message to live-reload clients")

	if len(clients) == 0 {
		return
	}

	var wg sync.WaitGroup
	for client := range clients {
		wg.Add(1)
		go func(c *types.WSClient) {
			defer wg.Done()
			if err := send(c, msg); err != nil {
				logrus.WithError(err).Warn("Failed to send message to live-reload client")
			}
		}(client)
	}
	wg.Wait()
}

// BroadcastReload tells every browser to reload after the given files changed
func BroadcastReload(files []string) {
	logrus.WithField("files", files).Info("Static root changed, reloading clients")
	BroadcastToAll(types.WSMessage{
		Type:  types.MessageReload,
		Files: files,
	})
}

func send(c *types.WSClient, msg types.WSMessage) error {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	c.Conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.Conn.WriteJSON(msg)
}
