// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/SoftbearStudios/tilegen/logger"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 5 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 8) / 10

	// Replies that may queue before the client is considered unresponsive.
	socketBufferSize = 16

	// Maximum message size allowed from peer.
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	HandshakeTimeout: time.Second,
	ReadBufferSize:   maxMessageSize,
	WriteBufferSize:  2048,
}

// outbound is one websocket message.
type outbound struct {
	messageType int
	data        []byte
}

// socketError is the reply to a request that could not be rendered.
type socketError struct {
	Error string `json:"error"`
}

// SocketClient answers each JSON Request with a binary PNG message,
// or a text message holding a socketError.
type SocketClient struct {
	server *Server
	conn   *websocket.Conn
	send   chan outbound
	once   sync.Once
}

// Create a SocketClient from a connection
func NewSocketClient(server *Server, conn *websocket.Conn) *SocketClient {
	return &SocketClient{
		server: server,
		conn:   conn,
		send:   make(chan outbound, socketBufferSize),
	}
}

func (client *SocketClient) Init() {
	go client.writePump()
	go client.readPump()
}

func (client *SocketClient) Destroy() {
	client.once.Do(func() {
		_ = client.conn.Close()
	})
}

func (client *SocketClient) Send(message outbound) bool {
	select {
	case client.send <- message:
		return true
	default:
		// Not responsive
		logger.Warning("socket client is not responsive", "remote", client.conn.RemoteAddr().String())
		client.Destroy()
		return false
	}
}

// handle renders one request into a reply.
func (client *SocketClient) handle(data []byte) outbound {
	var request Request
	if err := json.Unmarshal(data, &request); err != nil {
		return client.errorMessage(err)
	}

	png, err := client.server.Render(request)
	if err != nil {
		return client.errorMessage(err)
	}
	return outbound{messageType: websocket.BinaryMessage, data: png}
}

func (client *SocketClient) errorMessage(err error) outbound {
	buf, marshalErr := json.Marshal(socketError{Error: err.Error()})
	if marshalErr != nil {
		// Unreachable for a struct of one string
		buf = []byte(`{"error":"internal error"}`)
	}
	return outbound{messageType: websocket.TextMessage, data: buf}
}

func (client *SocketClient) readPump() {
	defer func() {
		close(client.send)
	}()
	client.conn.SetReadLimit(maxMessageSize)
	_ = client.conn.SetReadDeadline(time.Now().Add(pongWait))
	client.conn.SetPongHandler(func(string) error {
		_ = client.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		messageType, data, err := client.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warning("close error", "error", err)
			}
			break
		}

		if messageType != websocket.TextMessage {
			logger.Debug("ignoring non-text socket message", "type", messageType)
			continue
		}

		if !client.Send(client.handle(data)) {
			break
		}
	}
}

func (client *SocketClient) writePump() {
	pingTicker := time.NewTicker(pingPeriod)

	defer func() {
		pingTicker.Stop()
		client.Destroy()
	}()

	for {
		select {
		case out, ok := <-client.send:
			_ = client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The read pump closed the channel.
				_ = client.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}

			if err := client.conn.WriteMessage(out.messageType, out.data); err != nil {
				logger.Debug("send error", "error", err)
				return
			}
		case <-pingTicker.C:
			_ = client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
