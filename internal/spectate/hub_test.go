package spectate

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vovakirdan/towerrun/internal/core"
	"github.com/vovakirdan/towerrun/internal/games/towerrun/engine"
)

func dial(t *testing.T, h *Hub) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	deadline := time.Now().Add(2 * time.Second)
	for h.Clients() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("spectator was never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}
	return conn
}

type received struct {
	Type   string          `json:"type"`
	Player string          `json:"player"`
	Data   json.RawMessage `json:"data"`
}

func read(t *testing.T, conn *websocket.Conn) received {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg received
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("ReadJSON() failed: %v", err)
	}
	return msg
}

func TestHubBroadcastsEvents(t *testing.T) {
	h := NewHub(nil)
	conn := dial(t, h)

	sink := h.Sink("alice")
	sink.Emit(engine.StateChangedEvent{From: engine.StateMenu, To: engine.StateChoosing})

	msg := read(t, conn)
	if msg.Type != "state" || msg.Player != "alice" {
		t.Fatalf("got %s from %q, want state from alice", msg.Type, msg.Player)
	}
	var data stateData
	if err := json.Unmarshal(msg.Data, &data); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if data.From != "menu" || data.To != "choosing" {
		t.Errorf("state = %+v, want menu -> choosing", data)
	}
}

func TestHubThinsFrames(t *testing.T) {
	h := NewHub(nil)
	h.FrameInterval = 3
	conn := dial(t, h)

	sink := h.Sink("bob")
	for i := 0; i < 6; i++ {
		sink.Emit(engine.FrameEvent{DamageTaken: i})
	}
	sink.Emit(engine.GameOverEvent{Score: 10})

	var damages []int
	for {
		msg := read(t, conn)
		if msg.Type == "gameover" {
			break
		}
		var f frameData
		if err := json.Unmarshal(msg.Data, &f); err != nil {
			t.Fatalf("decode frame: %v", err)
		}
		damages = append(damages, f.DamageTaken)
	}
	if len(damages) != 2 || damages[0] != 0 || damages[1] != 3 {
		t.Errorf("frames sent = %v, want [0 3]", damages)
	}
}

func TestHubClose(t *testing.T) {
	h := NewHub(nil)
	conn := dial(t, h)

	h.Close()
	if h.Clients() != 0 {
		t.Errorf("Clients() after Close = %d, want 0", h.Clients())
	}
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Error("connection should be closed")
	}
	if err := h.Broadcast(Message{Type: "hud"}); err != nil {
		t.Errorf("Broadcast with no clients failed: %v", err)
	}
}

func TestEncode(t *testing.T) {
	opt := engine.FloorOption{
		Template: engine.FloorTemplate{ID: "pulse_gates", Name: "Pulse Gates", Icon: "🚪", Mechanic: engine.MechanicTiming},
		Risk:     engine.RiskLevel{Level: engine.RiskDangerous, Label: "Dangerous", Multiplier: 2},
	}

	tests := []struct {
		name  string
		event engine.Event
		want  string
	}{
		{"tower", engine.TowerMapEvent{Rows: []engine.TierRow{{Tier: 1, Options: []engine.FloorOption{opt}}}}, "tower"},
		{"hud", engine.HUDEvent{Tier: 2}, "hud"},
		{"countdown", engine.CountdownEvent{Floor: opt.Template, Risk: opt.Risk, Remaining: 2}, "countdown"},
		{"frame", engine.FrameEvent{}, "frame"},
		{"result", engine.FloorResultEvent{}, "result"},
		{"summary", engine.RunSummaryEvent{}, "summary"},
		{"gameover", engine.GameOverEvent{}, "gameover"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, ok := Encode("p", tt.event)
			if !ok || msg.Type != tt.want {
				t.Errorf("Encode() = %q, %v; want %q", msg.Type, ok, tt.want)
			}
		})
	}

	msg, _ := Encode("p", engine.TowerMapEvent{Rows: []engine.TierRow{{Tier: 1, Options: []engine.FloorOption{opt}}}})
	tower := msg.Data.(towerData)
	got := tower.Rows[0].Options[0]
	if got.Risk != "dangerous" || got.Multiplier != 2 || got.Mechanic != "timing" {
		t.Errorf("option = %+v", got)
	}
}

func TestEncodeFrameSkipsCollected(t *testing.T) {
	ev := engine.FrameEvent{
		Arena:  engine.Arena{Width: 800, Height: 500},
		Player: core.NewRect(10, 20, 40, 40),
		Obstacles: []engine.Obstacle{
			{Kind: engine.KindGate, GapX: 100, GapWidth: 80},
			{Kind: engine.KindBlinking, Visible: false},
			{Kind: engine.KindMoving},
		},
		Collectibles: []engine.Collectible{
			{Pos: core.Vec{X: 1, Y: 1}, Radius: 15},
			{Pos: core.Vec{X: 2, Y: 2}, Radius: 15, Collected: true},
		},
	}
	f := encodeFrame(ev)
	if len(f.Collectibles) != 1 {
		t.Errorf("collectibles = %d, want 1", len(f.Collectibles))
	}
	if f.Obstacles[0].GapWidth != 80 || f.Obstacles[0].Kind != "gate" {
		t.Errorf("gate = %+v", f.Obstacles[0])
	}
	if f.Obstacles[1].Visible {
		t.Error("hidden tile should be invisible")
	}
	if !f.Obstacles[2].Visible {
		t.Error("moving bars are always visible")
	}
	if f.Player.W != 40 || f.Width != 800 {
		t.Errorf("frame geometry = %+v", f)
	}
}
