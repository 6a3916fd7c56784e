// Package viewer serves live world state over websocket, for debugging a
// running simulation from a browser or a small inspection client. It is
// an observability surface only: clients receive snapshots and cannot
// mutate the world.
package viewer

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gorilla/websocket"

	"github.com/akmonengine/marble"
)

// BallView is the broadcast state of one ball.
type BallView struct {
	P mgl32.Vec3 `json:"p"`
	V mgl32.Vec3 `json:"v"`
	R float32    `json:"r"`
}

// BodyView is the broadcast state of one body.
type BodyView struct {
	P mgl32.Vec3 `json:"p"`
	V mgl32.Vec3 `json:"v"`
}

// StateMessage is one snapshot of the world.
type StateMessage struct {
	Type   string     `json:"type"`
	Tick   uint64     `json:"tick"`
	Bounce float32    `json:"bounce"`
	Rest   int        `json:"rest"`
	Balls  []BallView `json:"balls"`
	Bodies []BodyView `json:"bodies"`
}

// Server steps a world at a fixed rate and broadcasts a snapshot to
// every connected websocket client after each tick. All world access is
// serialized through the server mutex; the simulation itself stays
// single-threaded.
type Server struct {
	world   *marble.World
	gravity mgl32.Vec3
	dt      float32

	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]bool
	tick    uint64
	bounce  float32
	rest    int

	done chan struct{}
}

// NewServer wraps a world for viewing, stepping ball 0 by dt under g on
// every tick.
func NewServer(w *marble.World, g mgl32.Vec3, dt float32) *Server {
	return &Server{
		world:   w,
		gravity: g,
		dt:      dt,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]bool),
		done:    make(chan struct{}),
	}
}

// Handler upgrades an HTTP request to a websocket connection and
// registers the client. The client immediately receives the current
// snapshot, then one message per tick.
func (s *Server) Handler(rw http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(rw, r, nil)
	if err != nil {
		log.Printf("viewer: upgrade: %v", err)
		return
	}

	s.mu.Lock()
	s.clients[conn] = true
	err = conn.WriteJSON(s.snapshot())
	s.mu.Unlock()

	if err != nil {
		s.drop(conn)
		return
	}

	// Drain incoming control frames; unregister on close.
	go func() {
		defer s.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// Run steps and broadcasts until Stop is called.
func (s *Server) Run() {
	ticker := time.NewTicker(time.Duration(float64(s.dt) * float64(time.Second)))
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.Tick()
		}
	}
}

// Stop terminates Run.
func (s *Server) Stop() {
	close(s.done)
}

// Tick advances the world one step and broadcasts the result.
func (s *Server) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.bounce = s.world.Step(s.gravity, s.dt, 0, &s.rest)
	s.tick++

	msg := s.snapshot()
	for conn := range s.clients {
		if err := conn.WriteJSON(msg); err != nil {
			conn.Close()
			delete(s.clients, conn)
		}
	}
}

// snapshot builds the current state message. Callers hold s.mu.
func (s *Server) snapshot() StateMessage {
	msg := StateMessage{
		Type:   "state",
		Tick:   s.tick,
		Bounce: s.bounce,
		Rest:   s.rest,
		Balls:  make([]BallView, 0, len(s.world.Balls)),
		Bodies: make([]BodyView, 0, len(s.world.Bodies)),
	}

	for i := range s.world.Balls {
		u := &s.world.Balls[i]
		msg.Balls = append(msg.Balls, BallView{P: u.P, V: u.V, R: u.R})
	}
	for i := range s.world.Bodies {
		b := &s.world.Bodies[i]
		msg.Bodies = append(msg.Bodies, BodyView{
			P: s.world.BodyPos(b),
			V: s.world.BodyVel(b),
		})
	}
	return msg
}

func (s *Server) drop(conn *websocket.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conn.Close()
	delete(s.clients, conn)
}
