package websocket

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	writeWait = 10 * time.Second

	// pongWait bounds the silence tolerated from a subscriber; pings go out at 90% of it
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// Subscribers never send payloads, only control frames
	maxInboundSize = 512

	eventBuffer = 64
)

// ErrSlowClient is returned when a subscriber's event buffer is full
var ErrSlowClient = errors.New("client event buffer full")

// Client is one subscriber to a company's event feed. The feed is one-way: the
// connection is only read to keep control frames flowing and to notice the peer leaving.
type Client struct {
	id        string
	companyID uuid.UUID
	conn      *websocket.Conn
	events    chan []byte
	done      chan struct{}
	closeOnce sync.Once
	logger    zerolog.Logger
}

// NewClient wraps an upgraded connection subscribed to companyID
func NewClient(conn *websocket.Conn, companyID uuid.UUID) *Client {
	id := uuid.NewString()
	return &Client{
		id:        id,
		companyID: companyID,
		conn:      conn,
		events:    make(chan []byte, eventBuffer),
		done:      make(chan struct{}),
		logger: log.With().
			Str("company_id", companyID.String()).
			Str("client_id", id).
			Logger(),
	}
}

// ID returns the client's unique identifier
func (c *Client) ID() string {
	return c.id
}

// CompanyID returns the company whose events the client receives
func (c *Client) CompanyID() uuid.UUID {
	return c.companyID
}

// Send queues an encoded event without blocking
func (c *Client) Send(data []byte) error {
	select {
	case <-c.done:
		return ErrClientClosed
	default:
	}

	select {
	case c.events <- data:
		return nil
	case <-c.done:
		return ErrClientClosed
	default:
		return ErrSlowClient
	}
}

// Close ends the feed with a normal closure naming the company. Safe to call repeatedly.
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.done)
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "company "+c.companyID.String()+" feed closed")
		_ = c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
		err = c.conn.Close()
	})
	return err
}

// IsClosed reports whether the feed has ended
func (c *Client) IsClosed() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

// Serve registers the client with hub and streams queued events until the
// subscriber disconnects or the client is closed. It blocks.
func (c *Client) Serve(hub *Hub) {
	hub.Register(c)
	defer func() {
		hub.Unregister(c)
		c.Close()
	}()

	go c.watchPeer()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case data := <-c.events:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				c.logger.Warn().Err(err).Msg("Failed to write event to subscriber")
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.logger.Debug().Err(err).Msg("Subscriber ping failed")
				return
			}
		}
	}
}

// watchPeer discards inbound frames and closes the client once the peer is gone
func (c *Client) watchPeer() {
	defer c.Close()

	c.conn.SetReadLimit(maxInboundSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.NextReader(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.logger.Warn().Err(err).Msg("Subscriber connection lost")
			}
			return
		}
	}
}
