package websockets

import (
	"sync"

	"resumehub/config"
	"resumehub/internal/database"
	"resumehub/internal/events"
	"resumehub/internal/logger"

	"github.com/gofiber/websocket/v2"
)

// Client is the part of a websocket connection the manager writes to.
type Client interface {
	WriteJSON(v any) error
}

// Manager pushes integration and admin events to the connected clients of
// the user they concern. Events without a user go to everyone.
type Manager struct {
	clients map[string]map[Client]struct{}
	mu      sync.RWMutex
	log     logger.Logger
}

func New(db database.DB, eventBus *events.EventBus, config config.Config) (*Manager, error) {
	log := logger.New("websockets").Function("New")

	if eventBus == nil {
		return nil, log.ErrMsg("event bus is nil")
	}

	manager := &Manager{
		clients: map[string]map[Client]struct{}{},
		log:     logger.New("websockets"),
	}

	eventBus.Subscribe(events.ChannelIntegration, manager.forward)
	eventBus.Subscribe(events.ChannelAdmin, manager.forward)

	log.Info("Websocket manager ready", "distributed", db.Cache.Events != nil)
	return manager, nil
}

func (m *Manager) Register(userID string, client Client) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.clients[userID] == nil {
		m.clients[userID] = map[Client]struct{}{}
	}
	m.clients[userID][client] = struct{}{}
}

func (m *Manager) Unregister(userID string, client Client) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.clients[userID], client)
	if len(m.clients[userID]) == 0 {
		delete(m.clients, userID)
	}
}

func (m *Manager) ClientCount(userID string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients[userID])
}

func (m *Manager) forward(event events.Event) error {
	log := m.log.Function("forward")

	m.mu.RLock()
	var targets []Client
	if event.UserID == "" {
		for _, clients := range m.clients {
			for client := range clients {
				targets = append(targets, client)
			}
		}
	} else {
		for client := range m.clients[event.UserID] {
			targets = append(targets, client)
		}
	}
	m.mu.RUnlock()

	for _, client := range targets {
		if err := client.WriteJSON(event); err != nil {
			log.Warn("failed to write to websocket client", "userID", event.UserID, "error", err)
		}
	}
	return nil
}

// HandleWebSocket keeps the connection registered until the client goes away.
func (m *Manager) HandleWebSocket(c *websocket.Conn) {
	log := m.log.Function("HandleWebSocket")

	userID, _ := c.Locals("userID").(string)
	if userID == "" {
		log.Warn("rejecting websocket without user")
		_ = c.Close()
		return
	}

	client := &connClient{conn: c}
	m.Register(userID, client)
	defer func() {
		m.Unregister(userID, client)
		_ = c.Close()
	}()

	log.Info("Websocket connected", "userID", userID)
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			log.Debug("Websocket closed", "userID", userID, "error", err)
			return
		}
	}
}

// connClient serializes writes; the underlying connection allows one writer.
type connClient struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *connClient) WriteJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}
