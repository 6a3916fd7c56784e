package viewer

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gorilla/websocket"

	"github.com/akmonengine/marble"
)

func testWorld() *marble.World {
	w := marble.NewWorld()
	w.AddPlaneBody(mgl32.Vec3{0, 1, 0}, 0, -1)
	w.AddBall(mgl32.Vec3{0, 2, 0}, 0.25)
	return w
}

func dial(t *testing.T, s *Server) *websocket.Conn {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(s.Handler))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	return conn
}

func TestHandlerSendsInitialSnapshot(t *testing.T) {
	s := NewServer(testWorld(), mgl32.Vec3{0, -9.8, 0}, 1.0/60)
	conn := dial(t, s)

	var msg StateMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}

	if msg.Type != "state" {
		t.Errorf("message type = %q, want \"state\"", msg.Type)
	}
	if msg.Tick != 0 {
		t.Errorf("initial tick = %d, want 0", msg.Tick)
	}
	if len(msg.Balls) != 1 {
		t.Fatalf("snapshot has %d balls, want 1", len(msg.Balls))
	}
	if msg.Balls[0].P != (mgl32.Vec3{0, 2, 0}) {
		t.Errorf("ball position = %v, want (0 2 0)", msg.Balls[0].P)
	}
	if len(msg.Bodies) != 1 {
		t.Errorf("snapshot has %d bodies, want 1", len(msg.Bodies))
	}
}

func TestTickBroadcastsUpdatedState(t *testing.T) {
	s := NewServer(testWorld(), mgl32.Vec3{0, -9.8, 0}, 1.0/60)
	conn := dial(t, s)

	var first StateMessage
	if err := conn.ReadJSON(&first); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}

	s.Tick()

	var second StateMessage
	if err := conn.ReadJSON(&second); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}

	if second.Tick != 1 {
		t.Errorf("tick = %d, want 1", second.Tick)
	}
	if second.Balls[0].P.Y() >= first.Balls[0].P.Y() {
		t.Errorf("ball did not fall: %v -> %v",
			first.Balls[0].P.Y(), second.Balls[0].P.Y())
	}
}

func TestTickWithoutClients(t *testing.T) {
	s := NewServer(testWorld(), mgl32.Vec3{0, -9.8, 0}, 1.0/60)

	// Stepping with no connections must not panic or block.
	for i := 0; i < 10; i++ {
		s.Tick()
	}

	if s.tick != 10 {
		t.Errorf("tick counter = %d, want 10", s.tick)
	}
}
