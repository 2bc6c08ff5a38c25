package display

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	mirrorSendBuffer = 64
	mirrorWriteWait  = 10 * time.Second
	mirrorPingPeriod = 54 * time.Second
	mirrorPongWait   = 60 * time.Second
)

// Op is one drawing operation as sent to viewers.
type Op struct {
	Op    string `json:"op"` // "clear", "text" or "line"
	X     int    `json:"x"`
	Y     int    `json:"y"`
	W     int    `json:"w,omitempty"`
	H     int    `json:"h,omitempty"`
	X1    int    `json:"x1,omitempty"`
	Y1    int    `json:"y1,omitempty"`
	Text  string `json:"text,omitempty"`
	Color string `json:"color,omitempty"`
	Size  int    `json:"size,omitempty"`
}

// Frame is one WebSocket message: the operations applied since the previous
// frame. A replay frame carries the full screen for a newly joined viewer.
type Frame struct {
	Seq    uint64 `json:"seq"`
	Replay bool   `json:"replay,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	Ops    []Op   `json:"ops"`
}

// Mirror is a Display that streams draw operations to WebSocket viewers.
// Viewers only watch; anything they send is discarded. Safe for concurrent
// use: the renderer draws while HTTP handlers join and leave.
type Mirror struct {
	mu      sync.Mutex
	canvas  *Canvas
	pending []Op
	seq     uint64
	viewers map[*viewer]struct{}

	upgrader websocket.Upgrader
	logger   *slog.Logger
}

type viewer struct {
	conn *websocket.Conn
	send chan []byte
}

// NewMirror creates a w×h mirror surface.
func NewMirror(w, h int, logger *slog.Logger) *Mirror {
	if logger == nil {
		logger = slog.Default()
	}
	return &Mirror{
		canvas:  NewCanvas(w, h),
		viewers: make(map[*viewer]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

// ClearRegion implements Display.
func (m *Mirror) ClearRegion(r Rect) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.canvas.ClearRegion(r)
	m.pending = append(m.pending, Op{Op: "clear", X: r.X, Y: r.Y, W: r.W, H: r.H})
}

// DrawText implements Display.
func (m *Mirror) DrawText(x, y int, text string, c Color, size int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.canvas.DrawText(x, y, text, c, size)
	m.pending = append(m.pending, Op{Op: "text", X: x, Y: y, Text: text, Color: c.String(), Size: size})
}

// DrawLine implements Display.
func (m *Mirror) DrawLine(x0, y0, x1, y1 int, c Color) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.canvas.DrawLine(x0, y0, x1, y1, c)
	m.pending = append(m.pending, Op{Op: "line", X: x0, Y: y0, X1: x1, Y1: y1, Color: c.String()})
}

// Flush broadcasts pending operations as one frame. Viewers whose send
// buffer is full are dropped.
func (m *Mirror) Flush() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.pending) == 0 {
		return nil
	}
	m.seq++
	data, err := json.Marshal(Frame{Seq: m.seq, Ops: m.pending})
	m.pending = nil
	if err != nil {
		return err
	}

	for v := range m.viewers {
		select {
		case v.send <- data:
		default:
			m.logger.Warn("dropping slow mirror viewer", "remote", v.conn.RemoteAddr().String())
			m.removeLocked(v)
		}
	}
	return nil
}

// Viewers returns the number of connected viewers.
func (m *Mirror) Viewers() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.viewers)
}

// ServeHTTP upgrades the request to a WebSocket and streams frames to it
// until the viewer disconnects.
func (m *Mirror) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := m.upgrader.Upgrade(w, r, nil)
	if err != nil {
		m.logger.Warn("mirror upgrade failed", "error", err)
		return
	}

	v := &viewer{conn: conn, send: make(chan []byte, mirrorSendBuffer)}

	m.mu.Lock()
	replay, err := json.Marshal(m.replayLocked())
	if err == nil {
		v.send <- replay
	}
	m.viewers[v] = struct{}{}
	count := len(m.viewers)
	m.mu.Unlock()

	m.logger.Info("mirror viewer connected", "remote", conn.RemoteAddr().String(), "viewers", count)

	go m.writePump(v)
	m.readPump(v)
}

// Close disconnects every viewer.
func (m *Mirror) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for v := range m.viewers {
		m.removeLocked(v)
	}
}

// replayLocked describes the current screen as a single frame.
func (m *Mirror) replayLocked() Frame {
	w, h := m.canvas.Size()
	ops := []Op{{Op: "clear", X: 0, Y: 0, W: w, H: h}}
	for y := 0; y < h; y++ {
		cells := m.canvas.Row(y)
		for i := 0; i < len(cells); {
			j := i
			runes := make([]rune, 0, len(cells)-i)
			for j < len(cells) && cells[j].Color == cells[i].Color {
				runes = append(runes, cells[j].Ch)
				j++
			}
			if cells[i].Color != Black {
				ops = append(ops, Op{Op: "text", X: i, Y: y, Text: string(runes), Color: cells[i].Color.String(), Size: 1})
			}
			i = j
		}
	}
	return Frame{Seq: m.seq, Replay: true, Width: w, Height: h, Ops: ops}
}

func (m *Mirror) removeLocked(v *viewer) {
	if _, ok := m.viewers[v]; !ok {
		return
	}
	delete(m.viewers, v)
	close(v.send)
}

func (m *Mirror) writePump(v *viewer) {
	ticker := time.NewTicker(mirrorPingPeriod)
	defer func() {
		ticker.Stop()
		v.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-v.send:
			v.conn.SetWriteDeadline(time.Now().Add(mirrorWriteWait))
			if !ok {
				v.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := v.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			v.conn.SetWriteDeadline(time.Now().Add(mirrorWriteWait))
			if err := v.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump drains control frames so pongs and closes are processed.
func (m *Mirror) readPump(v *viewer) {
	defer func() {
		m.mu.Lock()
		m.removeLocked(v)
		count := len(m.viewers)
		m.mu.Unlock()
		v.conn.Close()
		m.logger.Info("mirror viewer disconnected", "viewers", count)
	}()

	v.conn.SetReadLimit(512)
	v.conn.SetReadDeadline(time.Now().Add(mirrorPongWait))
	v.conn.SetPongHandler(func(string) error {
		v.conn.SetReadDeadline(time.Now().Add(mirrorPongWait))
		return nil
	})

	for {
		if _, _, err := v.conn.ReadMessage(); err != nil {
			return
		}
	}
}
