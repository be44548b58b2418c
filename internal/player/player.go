package player

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// ErrUnknownAction is returned for transport commands the player does not
// understand.
var ErrUnknownAction = errors.New("unknown player action")

// Action is a transport command for the local player.
type Action string

const (
	ActionPause  Action = "pause"
	ActionResume Action = "resume"
	ActionSkip   Action = "skip"
)

// State mirrors what the local player is currently doing.
type State struct {
	ActiveDirectory string   `json:"activeDirectory"`
	Playlist        []string `json:"playlist"`
	Playing         bool     `json:"playing"`
	Current         string   `json:"current,omitempty"`
}

// Event is one message pushed to the local player over its channel.
type Event struct {
	Type     string   `json:"type"` // "playlist" or "command"
	Playlist []string `json:"playlist,omitempty"`
	Action   Action   `json:"action,omitempty"`
}

// stateReport is what the player sends back over the same socket.
type stateReport struct {
	Playing bool   `json:"playing"`
	Current string `json:"current"`
}

// Hub holds the player state and the WebSocket channel the local player
// listens on. Playlist updates and transport commands are broadcast to every
// connected player; in practice there is exactly one.
type Hub struct {
	mu       sync.Mutex
	state    State
	clients  map[*websocket.Conn]bool
	upgrader websocket.Upgrader
	log      zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The player runs on the same machine; the remote UI never
			// connects here.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		log: log,
	}
}

// Status returns a copy of the current player state.
func (h *Hub) Status() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	st := h.state
	st.Playlist = append([]string(nil), h.state.Playlist...)
	return st
}

// SetActiveDirectory replaces the playlist and pushes it to the player.
func (h *Hub) SetActiveDirectory(dir string, files []string) {
	h.mu.Lock()
	h.state.ActiveDirectory = dir
	h.state.Playlist = append([]string(nil), files...)
	h.state.Playing = len(files) > 0
	h.state.Current = ""
	h.mu.Unlock()

	h.broadcast(Event{Type: "playlist", Playlist: files})
	h.log.Info().Str("dir", dir).Int("videos", len(files)).Msg("playlist updated")
}

// Command forwards a transport command to the player.
func (h *Hub) Command(a Action) error {
	switch a {
	case ActionPause, ActionResume, ActionSkip:
	default:
		return ErrUnknownAction
	}
	h.mu.Lock()
	switch a {
	case ActionPause:
		h.state.Playing = false
	case ActionResume:
		h.state.Playing = true
	}
	h.mu.Unlock()

	h.broadcast(Event{Type: "command", Action: a})
	return nil
}

// ServeWS upgrades the connection of the local player and keeps it
// subscribed until it disconnects. State reports from the player update the
// hub's view of what is playing.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("player websocket upgrade failed")
		return
	}

	h.mu.Lock()
	h.clients[conn] = true
	playlist := append([]string(nil), h.state.Playlist...)
	h.mu.Unlock()

	// A player connecting mid-session catches up on the current playlist.
	if len(playlist) > 0 {
		h.send(conn, Event{Type: "playlist", Playlist: playlist})
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			break
		}
		var report stateReport
		if err := json.Unmarshal(data, &report); err != nil {
			h.log.Warn().Err(err).Msg("bad player state report")
			continue
		}
		h.mu.Lock()
		h.state.Playing = report.Playing
		h.state.Current = report.Current
		h.mu.Unlock()
	}

	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	conn.Close()
}

// ClientCount reports how many player processes are connected.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) broadcast(ev Event) {
	h.mu.Lock()
	clients := make([]*websocket.Conn, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		h.send(c, ev)
	}
}

func (h *Hub) send(conn *websocket.Conn, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
		conn.Close()
	}
}
