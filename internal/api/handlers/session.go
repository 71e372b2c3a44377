package handlers

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/wonny/readytrade/internal/analyzer"
	"github.com/wonny/readytrade/internal/contracts"
	"github.com/wonny/readytrade/internal/scoring"
	"github.com/wonny/readytrade/internal/selection"
	"github.com/wonny/readytrade/pkg/logger"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 4096

	// Buffer size for outbound messages
	sendBufferSize = 64
)

// Client actions
const (
	ActionSettings = "settings"
	ActionSearch   = "search"
	ActionAdd      = "add"
	ActionRemove   = "remove"
	ActionReset    = "reset"
	ActionState    = "state"
)

// Server message types
const (
	MessageState   = "state"
	MessageResults = "results"
	MessageError   = "error"
)

// ClientMessage is a request sent over the session socket
type ClientMessage struct {
	Action   string                    `json:"action"`
	Side     string                    `json:"side,omitempty"`
	PlayerID int                       `json:"playerId,omitempty"`
	Query    string                    `json:"query,omitempty"`
	Settings *contracts.LeagueSettings `json:"settings,omitempty"`
}

// SearchResults are the filtered players of one side
type SearchResults struct {
	Side    selection.SideName `json:"side"`
	Query   string             `json:"query"`
	Players []contracts.Player `json:"players"`
}

// ServerMessage is pushed to the client
type ServerMessage struct {
	Type    string          `json:"type"`
	State   *analyzer.State `json:"state,omitempty"`
	Results *SearchResults  `json:"results,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// SessionHandler runs live trade sessions over websockets
type SessionHandler struct {
	catalog  analyzer.Catalog
	engine   *scoring.Engine
	debounce time.Duration
	cooldown time.Duration
	upgrader websocket.Upgrader
	logger   *logger.Logger
}

// NewSessionHandler creates a session handler. An empty allowedOrigins
// accepts any origin.
func NewSessionHandler(catalog analyzer.Catalog, engine *scoring.Engine, debounce, cooldown time.Duration, allowedOrigins []string, log *logger.Logger) *SessionHandler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return &SessionHandler{
		catalog:  catalog,
		engine:   engine,
		debounce: debounce,
		cooldown: cooldown,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return len(allowed) == 0 || origin == "" || allowed[origin] || allowed["*"]
			},
		},
		logger: log,
	}
}

// Serve upgrades the request and runs the session until the peer disconnects
// GET /ws/session
func (h *SessionHandler) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Warn("WebSocket upgrade failed")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := &sessionConn{
		id:      uuid.New().String(),
		conn:    conn,
		session: analyzer.NewSession(h.catalog, h.engine, h.logger),
		send:    make(chan ServerMessage, sendBufferSize),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	c.logger = h.logger.WithField("session", c.id)
	c.searchers = map[selection.SideName]*selection.Searcher{}
	for _, side := range []selection.SideName{selection.Giving, selection.Getting} {
		side := side
		c.searchers[side] = selection.NewSearcher(h.debounce, h.cooldown, func(q string) {
			c.pushResults(side, c.session.Search(side, q))
		})
	}

	c.logger.Info("Session opened")

	go c.writePump(ctx)

	c.readPump(ctx)

	close(c.done)
	for _, s := range c.searchers {
		s.Close()
	}
	cancel()
	c.wg.Wait()
	<-c.stopped

	c.logger.Info("Session closed")
}

// sessionConn is one websocket peer and its trade session
type sessionConn struct {
	id        string
	conn      *websocket.Conn
	session   *analyzer.Session
	searchers map[selection.SideName]*selection.Searcher
	send      chan ServerMessage
	done      chan struct{} // closed when readPump returns
	stopped   chan struct{} // closed when writePump returns
	wg        sync.WaitGroup
	logger    *logger.Logger
}

func (c *sessionConn) readPump(ctx context.Context) {
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg ClientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.WithError(err).Warn("Session closed unexpectedly")
			}
			return
		}
		c.handle(ctx, msg)
	}
}

func (c *sessionConn) writePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
		close(c.stopped)
	}()

	for {
		select {
		case <-ctx.Done():
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return

		case msg := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(msg); err != nil {
				c.logger.WithError(err).Debug("Session write failed")
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

func (c *sessionConn) handle(ctx context.Context, msg ClientMessage) {
	switch msg.Action {
	case ActionSettings:
		if msg.Settings == nil {
			c.pushError("settings required")
			return
		}
		settings := *msg.Settings
		c.wg.Add(1)
		go func() {
			defer c.wg.Done()
			c.applySettings(ctx, settings)
		}()

	case ActionSearch:
		side, err := selection.ParseSideName(msg.Side)
		if err != nil {
			c.pushError(err.Error())
			return
		}
		c.searchers[side].Input(msg.Query)

	case ActionAdd:
		side, err := selection.ParseSideName(msg.Side)
		if err != nil {
			c.pushError(err.Error())
			return
		}
		if _, err := c.session.Add(side, msg.PlayerID); err != nil {
			c.pushError(err.Error())
			return
		}
		c.pushState()
		c.pushResults(side, c.session.Results(side))

	case ActionRemove:
		side, err := selection.ParseSideName(msg.Side)
		if err != nil {
			c.pushError(err.Error())
			return
		}
		c.session.Remove(side, msg.PlayerID)
		c.pushState()
		c.pushResults(side, c.session.Results(side))

	case ActionReset:
		c.session.Reset()
		c.pushState()
		c.pushAllResults()

	case ActionState:
		c.pushState()

	default:
		c.pushError("unknown action: " + msg.Action)
	}
}

// applySettings loads a catalog and pushes the new state. Responses
// superseded by a later settings message are dropped silently.
func (c *sessionConn) applySettings(ctx context.Context, settings contracts.LeagueSettings) {
	err := c.session.SetSettings(ctx, settings)
	if errors.Is(err, analyzer.ErrStaleSettings) {
		return
	}
	if err != nil {
		c.pushError(err.Error())

		// invalid settings leave the session untouched
		var se contracts.SettingsError
		if errors.As(err, &se) {
			return
		}
	}

	c.pushState()
	c.pushAllResults()
}

func (c *sessionConn) push(msg ServerMessage) {
	select {
	case c.send <- msg:
	case <-c.done:
	case <-c.stopped:
	}
}

func (c *sessionConn) pushState() {
	st := c.session.Snapshot()
	c.push(ServerMessage{Type: MessageState, State: &st})
}

func (c *sessionConn) pushResults(side selection.SideName, players []contracts.Player) {
	st := c.session.Snapshot()
	query := st.GivingQuery
	if side == selection.Getting {
		query = st.GettingQuery
	}
	if players == nil {
		players = []contracts.Player{}
	}
	c.push(ServerMessage{Type: MessageResults, Results: &SearchResults{Side: side, Query: query, Players: players}})
}

func (c *sessionConn) pushAllResults() {
	c.pushResults(selection.Giving, c.session.Results(selection.Giving))
	c.pushResults(selection.Getting, c.session.Results(selection.Getting))
}

func (c *sessionConn) pushError(message string) {
	c.push(ServerMessage{Type: MessageError, Error: message})
}
