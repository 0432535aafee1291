// Package transport is the external collaborator spec.md §1 excludes from
// the hard core: a thin WebSocket gateway that decodes client messages
// into world.Intent values via world.State.SubmitIntent, and broadcasts
// drained world.Event values back out as JSON. It owns no simulation
// state and makes no decisions the engine doesn't already make — every
// rejection, damage number, and status change it forwards came from the
// core; this package only marshals the boundary (§6 "Commands"/"Events").
//
// Grounded on the teacher's server/websocket.go Client/Server hub, with
// the Netrek-specific message types (MsgTypePhaser, MsgTypeBeam, ...)
// replaced by HYPERION's typed intents.
package transport

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/hyperion-sim/hyperion/world"
)

// ClientMessage is one command frame from a connected client.
type ClientMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// ServerMessage is one event frame sent to connected clients.
type ServerMessage struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Intent type strings, the wire-level counterpart of the world.Intent
// Go types (§6 "Commands").
const (
	MsgThrust          = "thrust"
	MsgRotate          = "rotate"
	MsgFullStop        = "full_stop"
	MsgEngageWarp      = "engage_warp"
	MsgEngageJump      = "engage_jump"
	MsgDockRequest     = "dock_request"
	MsgUndock          = "undock"
	MsgTarget          = "target"
	MsgFire            = "fire"
	MsgAutoFire        = "auto_fire"
	MsgConfigureWeapon = "configure_weapon"
	MsgLoadAmmo        = "load_ammo"
	MsgShield          = "shield"
	MsgCountermeasure  = "countermeasure"
	MsgPointDefense    = "point_defense"
	MsgAllocatePower   = "allocate_power"
	MsgAllocateCooling = "allocate_cooling"
	MsgRepair          = "repair"
	MsgScan            = "scan"
	MsgAnalyze         = "analyze"
	MsgHail            = "hail"
	MsgJam             = "jam"
)

func isValidOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	originURL, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if r.Host == originURL.Host {
		return true
	}
	return strings.HasPrefix(originURL.Host, "localhost:") ||
		strings.HasPrefix(originURL.Host, "127.0.0.1:") ||
		originURL.Host == "localhost" || originURL.Host == "127.0.0.1"
}

var upgrader = websocket.Upgrader{
	CheckOrigin:       isValidOrigin,
	EnableCompression: true,
}

// Client is one connected WebSocket session, bound to a single ship.
type Client struct {
	ID   int
	Ship world.ShipID
	conn *websocket.Conn
	send chan ServerMessage
	gw   *Gateway
}

// Gateway owns client registration and fans world events out to every
// connected client. The World it wraps is exclusively engine-owned during
// a tick (§5); the gateway only calls SubmitIntent (thread-safe) and
// DrainEvents (from BroadcastTick, which cmd/hyperiond's tick loop calls
// once per tick, matching §5 "single-consumer outside").
type Gateway struct {
	mu       sync.RWMutex
	clients  map[int]*Client
	nextID   int
	World    *world.State
	Log      zerolog.Logger
	stopChan chan struct{}
}

func NewGateway(w *world.State, log zerolog.Logger) *Gateway {
	return &Gateway{
		clients:  make(map[int]*Client),
		World:    w,
		Log:      log,
		stopChan: make(chan struct{}),
	}
}

// HandleWebSocket upgrades an HTTP request and registers a new client
// bound to shipID (already spawned by the blueprint compiler).
func (g *Gateway) HandleWebSocket(shipID world.ShipID) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			g.Log.Error().Err(err).Msg("websocket upgrade failed")
			return
		}

		g.mu.Lock()
		g.nextID++
		id := g.nextID
		client := &Client{ID: id, Ship: shipID, conn: conn, send: make(chan ServerMessage, 64), gw: g}
		g.clients[id] = client
		g.mu.Unlock()

		go client.writePump()
		client.readPump()
	}
}

func (c *Client) readPump() {
	defer c.close()
	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var msg ClientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.gw.Log.Warn().Err(err).Msg("malformed client message")
			continue
		}
		intent, ok := decodeIntent(c.Ship, msg)
		if !ok {
			c.gw.Log.Warn().Str("type", msg.Type).Msg("unknown or malformed intent")
			continue
		}
		c.gw.World.SubmitIntent(intent)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) close() {
	c.gw.mu.Lock()
	delete(c.gw.clients, c.ID)
	c.gw.mu.Unlock()
	close(c.send)
}

// BroadcastTick drains the world's event queue and fans every event out
// to every connected client as a ServerMessage. cmd/hyperiond's
// runTickLoop calls this once per tick, after RunTick returns (§5 "the broadcaster
// wakes at ~60 Hz to flush events").
func (g *Gateway) BroadcastTick() {
	events := g.World.DrainEvents()
	if len(events) == 0 {
		return
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	for _, ev := range events {
		msg := ServerMessage{Type: string(ev.Kind), Data: ev}
		for _, c := range g.clients {
			select {
			case c.send <- msg:
			default:
				g.Log.Warn().Int("client", c.ID).Msg("dropping event: send buffer full")
			}
		}
	}
}

// Shutdown closes every connected client's send channel, stopping their
// writePump goroutines.
func (g *Gateway) Shutdown() {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, c := range g.clients {
		close(c.send)
	}
	g.clients = make(map[int]*Client)
}

// parseShipID decodes a client-supplied uuid string into a world.ShipID.
func parseShipID(s string) (world.ShipID, bool) {
	u, err := uuid.Parse(s)
	if err != nil {
		return world.ShipID{}, false
	}
	return world.ShipID(u), true
}

func parseStationID(s string) (world.StationID, bool) {
	u, err := uuid.Parse(s)
	if err != nil {
		return world.StationID{}, false
	}
	return world.StationID(u), true
}

func parsePlayerID(s string) (world.PlayerID, bool) {
	u, err := uuid.Parse(s)
	if err != nil {
		return world.PlayerID{}, false
	}
	return world.PlayerID(u), true
}
