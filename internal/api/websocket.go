package api

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"brigade/internal/conversation"
	"brigade/internal/models"
)

// WebSocket upgrader configuration
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

// WSConnection maintains one chat connection. Each connection owns its
// conversation session, so follow-ups resolve against that client's own
// last question.
type WSConnection struct {
	conn    *websocket.Conn
	send    chan []byte
	mu      sync.Mutex
	session *conversation.Session
	api     *RosterAPI
}

// wsQuestion is an incoming chat message.
type wsQuestion struct {
	Question string `json:"question"`
}

// wsAnswer is the reply sent back to the client.
type wsAnswer struct {
	Answer string `json:"answer"`
}

// HandleWebSocket upgrades the connection and starts the pumps.
func (a *RosterAPI) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		a.log.Error("failed to upgrade connection", zap.Error(err))
		return
	}

	wsConn := &WSConnection{
		conn:    conn,
		send:    make(chan []byte, 256),
		session: &conversation.Session{},
		api:     a,
	}

	// Start the read and write pumps
	go wsConn.writePump()
	go wsConn.readPump()
}

// readPump pumps messages from the WebSocket connection to the handler
func (c *WSConnection) readPump() {
	defer func() {
		c.conn.Close()
	}()

	c.conn.SetReadLimit(64 * 1024)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.api.log.Warn("websocket error", zap.Error(err))
			}
			break
		}

		c.handleMessage(message)
	}
}

// writePump pumps messages from the server to the WebSocket connection
func (c *WSConnection) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				// The channel was closed
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleMessage answers one duty question over the connection's session.
func (c *WSConnection) handleMessage(message []byte) {
	var q wsQuestion
	if err := json.Unmarshal(message, &q); err != nil {
		// Bare text is accepted as the question itself.
		q.Question = string(message)
	}
	if q.Question == "" {
		c.sendError("empty question")
		return
	}

	var staff []models.Employee
	snap, err := c.api.Store.LoadLatest()
	if err != nil {
		c.api.log.Warn("failed to load roster snapshot for websocket", zap.Error(err))
	} else if snap != nil {
		staff = snap.Staff
	}

	followUp := c.session.IsFollowUp(q.Question)
	answer := c.api.Engine.Answer(q.Question, staff, c.session)
	c.api.Monitor.RecordQuery(followUp)
	c.sendAnswer(answer)
}

// sendAnswer sends a reply to the client.
func (c *WSConnection) sendAnswer(answer string) {
	data, err := json.Marshal(wsAnswer{Answer: answer})
	if err != nil {
		c.api.log.Error("failed to marshal answer", zap.Error(err))
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	select {
	case c.send <- data:
	default:
		c.api.log.Warn("websocket buffer full, dropping message")
	}
}

// sendError sends an error message to the client.
func (c *WSConnection) sendError(message string) {
	data, _ := json.Marshal(map[string]string{"error": message})

	c.mu.Lock()
	defer c.mu.Unlock()

	select {
	case c.send <- data:
	default:
		c.api.log.Warn("websocket buffer full, dropping error message")
	}
}
