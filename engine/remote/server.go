// Package remote bridges browser input to the camera controls over a WebSocket.
//
// A browser page forwards its DOM keyboard, pointer, wheel and touch events as JSON
// envelopes. The first client to connect drives the camera; later clients are spectators
// until the controller leaves. Pointer lock lives in the browser, so lock requests are sent
// to the controller and its lock reports come back as LockEvents.
package remote

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"log"
	"net"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-fly/engine/input"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

//go:embed assets/index.html
var clientPage embed.FS

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMessage = 4096
)

// Server is the remote host. It implements input.Source and input.PointerCapture for the
// controlling client, and the engine's host contract through ProcessEvents and Close.
type Server struct {
	bus      *input.Bus
	logger   *log.Logger
	path     string
	origins  []string
	sendSize int
	serveUI  bool
	upgrader websocket.Upgrader

	mu         sync.Mutex
	clients    map[string]*client
	order      []string
	controller string
	closed     bool

	httpServer *http.Server
}

var (
	_ input.Source         = &Server{}
	_ input.PointerCapture = &Server{}
)

type client struct {
	id   string
	conn *websocket.Conn
	send chan []byte

	mu     sync.Mutex
	closed bool

	// held is only touched by the client's read goroutine.
	held map[uint32]bool
}

// NewServer creates a Server.
//
// Parameters:
//   - options: functional options to configure the server
//
// Returns:
//   - *Server: the server, serving through Handler or Start
func NewServer(options ...ServerOption) *Server {
	s := &Server{
		path:     "/ws",
		sendSize: 16,
		serveUI:  true,
		clients:  make(map[string]*client),
	}
	for _, option := range options {
		option(s)
	}
	if s.bus == nil {
		s.bus = input.NewBus()
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}
	if len(s.origins) > 0 {
		s.upgrader.CheckOrigin = s.checkOrigin
	}
	return s
}

func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	return slices.Contains(s.origins, "*") || slices.Contains(s.origins, origin)
}

// Handler returns the HTTP handler that upgrades requests on the configured path and, unless
// disabled, serves the browser client page at "/".
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(s.path, s.handleWebSocket)
	if s.serveUI {
		mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/" {
				http.NotFound(w, r)
				return
			}
			http.ServeFileFS(w, r, clientPage, "assets/index.html")
		})
	}
	return mux
}

// Start listens on addr and serves in the background until Close.
//
// Parameters:
//   - addr: the listen address, e.g. ":8090"
//
// Returns:
//   - net.Addr: the bound address
//   - error: the listen error, if any
func (s *Server) Start(addr string) (net.Addr, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.httpServer = &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}
	srv := s.httpServer
	s.mu.Unlock()

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logf("[Remote] serve error: %v", err)
		}
	}()
	s.logf("[Remote] listening on %s%s", ln.Addr(), s.path)
	return ln.Addr(), nil
}

func (s *Server) Subscribe(handler input.Handler) input.Subscription {
	return s.bus.Subscribe(handler)
}

func (s *Server) RequestLock() {
	s.sendController(MsgRequestLock)
}

func (s *Server) ReleaseLock() {
	s.sendController(MsgReleaseLock)
}

// ProcessEvents reports whether the server is still open. Client input is already queued
// on the bus, which the engine flushes after this call.
func (s *Server) ProcessEvents() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.closed
}

// Clients returns the ids of connected clients in connection order.
func (s *Server) Clients() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.order)
}

// Controller returns the id of the controlling client, or "" when none is connected.
func (s *Server) Controller() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.controller
}

// Close disconnects every client and stops the listener started by Start.
func (s *Server) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	srv := s.httpServer
	clients := make([]*client, 0, len(s.clients))
	for _, c := range s.clients {
		clients = append(clients, c)
	}
	s.mu.Unlock()

	for _, c := range clients {
		c.conn.Close()
	}
	if srv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		http.Error(w, "server closed", http.StatusServiceUnavailable)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logf("[Remote] upgrade error: %v", err)
		return
	}

	c := &client{
		id:   uuid.New().String(),
		conn: conn,
		send: make(chan []byte, s.sendSize),
		held: make(map[uint32]bool),
	}

	s.mu.Lock()
	s.clients[c.id] = c
	s.order = append(s.order, c.id)
	controller := s.controller == ""
	if controller {
		s.controller = c.id
	}
	s.mu.Unlock()

	s.logf("[Remote] client %s connected (controller=%t)", c.id, controller)
	c.sendMessage(MsgHello, HelloPayload{ClientID: c.id, Controller: controller})

	go c.writePump()
	go s.readPump(c)
}

func (s *Server) readPump(c *client) {
	defer s.disconnect(c)

	c.conn.SetReadLimit(maxMessage)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				s.logf("[Remote] client %s read error: %v", c.id, err)
			}
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			s.logf("[Remote] client %s invalid message: %v", c.id, err)
			continue
		}
		s.handleMessage(c, msg)
	}
}

func (s *Server) handleMessage(c *client, msg Message) {
	if s.Controller() != c.id {
		return
	}
	ev, err := Decode(msg)
	if err != nil {
		if !errors.Is(err, errUnmapped) {
			s.logf("[Remote] client %s: %v", c.id, err)
		}
		return
	}
	if k, ok := ev.(input.KeyEvent); ok {
		if k.Action == input.KeyDown {
			c.held[k.Code] = true
		} else {
			delete(c.held, k.Code)
		}
	}
	s.bus.Enqueue(ev)
}

// disconnect removes c. When c was the controller, its held input is released on the bus
// and the oldest remaining client is promoted.
func (s *Server) disconnect(c *client) {
	c.close()

	s.mu.Lock()
	delete(s.clients, c.id)
	if i := slices.Index(s.order, c.id); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}
	wasController := s.controller == c.id
	var next *client
	if wasController {
		s.controller = ""
		if len(s.order) > 0 {
			s.controller = s.order[0]
			next = s.clients[s.controller]
		}
	}
	s.mu.Unlock()

	s.logf("[Remote] client %s disconnected", c.id)
	if !wasController {
		return
	}

	held := make([]uint32, 0, len(c.held))
	for code := range c.held {
		held = append(held, code)
	}
	slices.Sort(held)
	for _, code := range held {
		s.bus.Enqueue(input.KeyEvent{Code: code, Action: input.KeyUp})
	}
	s.bus.Enqueue(input.TouchEvent{Phase: input.TouchCancel})
	s.bus.Enqueue(input.LockEvent{Locked: false})

	if next != nil {
		s.logf("[Remote] client %s promoted to controller", next.id)
		next.sendMessage(MsgControl, ControlPayload{Controller: true})
	}
}

func (s *Server) sendController(t MessageType) {
	s.mu.Lock()
	c := s.clients[s.controller]
	s.mu.Unlock()
	if c != nil {
		c.sendMessage(t, nil)
	}
}

func (s *Server) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}

func (c *client) sendMessage(t MessageType, payload any) {
	data, err := encode(t, payload)
	if err != nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- data:
	default:
		// A client that cannot keep up is dropped.
		c.closed = true
		close(c.send)
	}
}

func (c *client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
