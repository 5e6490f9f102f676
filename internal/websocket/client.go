package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8 * 1024
	sendBufferSize = 64
)

// Client is one websocket connection, identified by a participant id that lives
// exactly as long as the connection.
type Client struct {
	ID   string
	IP   string
	conn *websocket.Conn

	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

func newClient(id, ip string, conn *websocket.Conn) *Client {
	return &Client{
		ID:   id,
		IP:   ip,
		conn: conn,
		send: make(chan []byte, sendBufferSize),
		done: make(chan struct{}),
	}
}

func (c *Client) enqueue(payload []byte) {
	select {
	case <-c.done:
		return
	default:
	}
	select {
	case c.send <- payload:
	default:
		log.Printf("[Client %s] Send buffer full, dropping message", c.ID)
	}
}

func (c *Client) sendJSON(v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		log.Printf("[Client %s] Failed to encode message: %v", c.ID, err)
		return
	}
	c.enqueue(payload)
}

func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}

// writePump drains the send queue onto the connection and keeps it alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("[Client %s] Write error: %v", c.ID, err)
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}
