// Guess Who
//
// One player faces the computer. Each game lives at its own URL and can be
// shared with a QR code; whoever opens it first plays, anyone else watches.
//
// Features:
// - WebSockets per game ID: /guesswho/:gameid and /guesswho/:gameid/ws
// - Three modes: the computer guesses your character, you guess the
//   computer's character, or both take turns
// - The computer asks the question that splits its remaining candidates most
//   evenly (or walks a trained decision tree, with --strategy tree)
// - Players identified by cookie (playerID); first cookie owns the game
// - Games auto-reaped after configurable idle timeout
// - Random 8-char game IDs via crypto/rand, with server-side collision check
// - In-browser QR button to share the current session, backed by go-qrcode

package main

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/Seednode/guesswho/guesswho"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
)

// Messages coming from clients
type ClientMessage struct {
	Type      string         `json:"type"`                // "start", "answer", "ask", "guess", "reset"
	Mode      Mode           `json:"mode,omitempty"`      // start
	Character string         `json:"character,omitempty"` // start / guess
	Trait     string         `json:"trait,omitempty"`     // ask
	Value     guesswho.Value `json:"value"`               // ask
	Yes       *bool          `json:"yes,omitempty"`       // answer
}

// SessionInfoMessage is sent immediately on connect so the client knows
// whether it controls the game.
type SessionInfoMessage struct {
	Type     string `json:"type"`     // "session_info"
	GameID   string `json:"game_id"`  // this game
	IsOwner  bool   `json:"is_owner"` // true if this cookie plays, false if it spectates
	Strategy string `json:"strategy"` // question strategy of the computer
}

// ErrorMessage is sent only to the client whose command was rejected.
type ErrorMessage struct {
	Type    string `json:"type"` // "error"
	Message string `json:"message"`
}

type Client struct {
	conn     *websocket.Conn
	send     chan any
	playerID string
}

type command struct {
	client *Client
	msg    ClientMessage
	err    error // set when the frame could not be decoded
}

type Hub struct {
	id       string
	strategy string
	clients  map[*Client]bool
	match    *Match

	register chan *Client
	unreg    chan *Client
	commands chan command
	done     chan struct{}
	stopOnce sync.Once

	mu sync.RWMutex

	createdAt  time.Time
	lastActive time.Time
	ownerID    string // cookie/playerID of the player; everyone else spectates
}

func newHub(gameID string, match *Match, strategy string) *Hub {
	now := time.Now()
	return &Hub{
		id:         gameID,
		strategy:   strategy,
		clients:    make(map[*Client]bool),
		match:      match,
		register:   make(chan *Client),
		unreg:      make(chan *Client),
		commands:   make(chan command),
		done:       make(chan struct{}),
		createdAt:  now,
		lastActive: now,
	}
}

func (h *Hub) run(cfg *Config) {
	for {
		select {
		case <-h.done:
			return

		case c := <-h.register:
			h.mu.Lock()
			h.lastActive = time.Now()

			// First connection owns the game
			if h.ownerID == "" {
				h.ownerID = c.playerID
			}

			h.clients[c] = true

			h.sendLocked(c, SessionInfoMessage{
				Type:     "session_info",
				GameID:   h.id,
				IsOwner:  h.ownerID == c.playerID,
				Strategy: h.strategy,
			})
			h.sendLocked(c, h.match.state())

			h.mu.Unlock()

		case c := <-h.unreg:
			h.mu.Lock()
			h.lastActive = time.Now()

			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			h.mu.Unlock()

		case cmd := <-h.commands:
			h.handleCommand(cfg, cmd)
		}
	}
}

// handleCommand applies one player command to the match and broadcasts the
// resulting state. Rejected commands are reported to the sender only.
func (h *Hub) handleCommand(cfg *Config, cmd command) {
	c := cmd.client
	msg := cmd.msg

	h.mu.Lock()
	defer h.mu.Unlock()

	h.lastActive = time.Now()

	if cmd.err != nil {
		h.sendErrorLocked(c, cmd.err)
		return
	}

	if c.playerID == "" || c.playerID != h.ownerID {
		h.sendErrorLocked(c, ErrNotOwner)
		return
	}

	var err error

	switch msg.Type {
	case "start":
		err = h.match.start(msg.Mode, msg.Character)
		if err == nil {
			logf(cfg, "GAMES: Started %s game %s", msg.Mode, h.id)
		}

	case "answer":
		if msg.Yes == nil {
			err = errors.New("answer requires yes to be true or false")
			break
		}
		err = h.match.answer(*msg.Yes)

	case "ask":
		trait, ok := guesswho.ParseTrait(msg.Trait)
		if !ok {
			err = ErrUnknownTrait
			break
		}
		_, err = h.match.ask(guesswho.Question{Trait: trait, Value: msg.Value})

	case "guess":
		var correct bool
		correct, err = h.match.guess(msg.Character)
		if err == nil {
			logf(cfg, "GAMES: Player guessed %q (correct: %t) in %s", msg.Character, correct, h.id)
		}

	case "reset":
		h.match.reset()

	default:
		err = errors.New("unknown message type")
	}

	if err != nil {
		h.sendErrorLocked(c, err)
		return
	}

	state := h.match.state()
	if state.Phase == PhaseOver {
		logf(cfg, "GAMES: Game %s over (winner: %q)", h.id, state.Winner)
	}

	h.broadcastLocked(state)
}

// sendLocked queues msg for c, dropping the client if its buffer is full.
// Assumes h.mu is held.
func (h *Hub) sendLocked(c *Client, msg any) {
	if _, ok := h.clients[c]; !ok {
		return
	}

	select {
	case c.send <- msg:
	default:
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *Hub) sendErrorLocked(c *Client, err error) {
	h.sendLocked(c, ErrorMessage{
		Type:    "error",
		Message: err.Error(),
	})
}

func (h *Hub) broadcastLocked(msg any) {
	for client := range h.clients {
		h.sendLocked(client, msg)
	}
}

// closeAll disconnects all clients of this hub and stops it (used by reaper).
func (h *Hub) closeAll() {
	h.stopOnce.Do(func() {
		close(h.done)
	})

	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		close(c.send)
		_ = c.conn.Close()
		delete(h.clients, c)
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const playerCookieName = "guesswho_id"

func getOrSetPlayerID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(playerCookieName); err == nil && c.Value != "" {
		return c.Value
	}

	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		log.Println("rand.Read error:", err)
		return ""
	}
	id := hex.EncodeToString(buf)

	http.SetCookie(w, &http.Cookie{
		Name:     playerCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return id
}

// GameManager holds a set of hubs keyed by game ID, so each $path/$gameid
// is its own isolated session. The roster and strategy are shared; every
// hub gets its own Match and engines.
type GameManager struct {
	mu          sync.Mutex
	hubs        map[string]*Hub
	idleTimeout time.Duration

	roster       *guesswho.Roster
	strategy     guesswho.Strategy
	strategyName string
}

func newGameManager(idleTimeout time.Duration, roster *guesswho.Roster, strategy guesswho.Strategy, strategyName string) *GameManager {
	gm := &GameManager{
		hubs:         make(map[string]*Hub),
		idleTimeout:  idleTimeout,
		roster:       roster,
		strategy:     strategy,
		strategyName: strategyName,
	}
	if idleTimeout > 0 {
		go gm.reaperLoop()
	}
	return gm
}

func (gm *GameManager) getHub(cfg *Config, gameID string) *Hub {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if hub, ok := gm.hubs[gameID]; ok {
		return hub
	}

	hub := newHub(gameID, newMatch(gm.roster, gm.strategy), gm.strategyName)
	gm.hubs[gameID] = hub
	go hub.run(cfg)
	return hub
}

// newGameID generates a crypto-random game ID and ensures it doesn't
// collide with existing games.
func (gm *GameManager) newGameID() string {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	for {
		buf := make([]byte, 8)
		if _, err := rand.Read(buf); err != nil {
			panic("crypto/rand failure: " + err.Error())
		}
		out := make([]byte, 8)
		for i := range out {
			out[i] = letters[int(buf[i])%len(letters)]
		}
		id := string(out)

		gm.mu.Lock()
		_, exists := gm.hubs[id]
		gm.mu.Unlock()

		if !exists {
			return id
		}
	}
}

// reap removes hubs idle since before cutoff.
func (gm *GameManager) reap(cutoff time.Time) int {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	reaped := 0
	for id, hub := range gm.hubs {
		hub.mu.RLock()
		last := hub.lastActive
		hub.mu.RUnlock()

		if last.Before(cutoff) {
			delete(gm.hubs, id)
			go hub.closeAll()
			reaped++
		}
	}
	return reaped
}

// reaperLoop periodically removes hubs that have been idle longer than idleTimeout.
func (gm *GameManager) reaperLoop() {
	ticker := time.NewTicker(gm.idleTimeout / 2)
	for range ticker.C {
		gm.reap(time.Now().Add(-gm.idleTimeout))
	}
}

// WebSocket handler that picks the hub based on :gameid
func serveWSForManager(cfg *Config, gm *GameManager) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		gameID := ps.ByName("gameid")
		if gameID == "" {
			http.Error(w, "missing game id", http.StatusBadRequest)
			return
		}

		playerID := getOrSetPlayerID(w, r)
		if playerID == "" {
			http.Error(w, "unable to assign player id", http.StatusInternalServerError)
			return
		}

		hub := gm.getHub(cfg, gameID)

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("upgrade error:", err)
			return
		}

		// Clear the http.Server deadlines, which outlive the hijack.
		_ = conn.SetReadDeadline(time.Time{})
		_ = conn.SetWriteDeadline(time.Time{})

		client := &Client{
			conn:     conn,
			send:     make(chan any, 8),
			playerID: playerID,
		}

		select {
		case hub.register <- client:
		case <-hub.done:
			_ = conn.Close()
			return
		}

		go client.writePump()
		client.readPump(hub)
	}
}

func (c *Client) readPump(h *Hub) {
	defer func() {
		select {
		case h.unreg <- c:
		case <-h.done:
		}
		_ = c.conn.Close()
	}()

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		cmd := command{client: c}
		if err := json.Unmarshal(data, &cmd.msg); err != nil {
			cmd.err = fmt.Errorf("%w: %v", ErrMalformedMessage, err)
		}

		select {
		case h.commands <- cmd:
		case <-h.done:
			return
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}

// QR handler: generates a PNG QR code for the current game URL using go-qrcode.
func qrHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	gameID := ps.ByName("gameid")
	if gameID == "" {
		http.Error(w, "missing game id", http.StatusBadRequest)
		return
	}

	// Derive scheme (respecting TLS and X-Forwarded-Proto if present).
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	// We are at /.../:gameid/qr; strip trailing "/qr" to get the game URL.
	path := strings.TrimSuffix(r.URL.Path, "/qr")

	url := scheme + "://" + r.Host + path

	const qrSize = 320 // mobile-friendly size
	png, err := qrcode.Encode(url, qrcode.Medium, qrSize)
	if err != nil {
		http.Error(w, "qr generation failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

func getIndexHandler(cfg *Config) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		data, err := assets.ReadFile("assets/guesswho/index.html")
		if err != nil {
			http.Error(w, "missing client", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache")
		securityHeaders(cfg, w)

		_ = getOrSetPlayerID(w, r)

		_, _ = w.Write(data)
	}
}

// redirectNewGame handles GET /path by generating a new random game ID
// (with server-side collision detection) and redirecting to /path/:gameid.
func redirectNewGame(cfg *Config, path string, gm *GameManager) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		gameID := gm.newGameID()
		logf(cfg, "GAMES: Created game %s/%s", path, gameID)
		http.Redirect(w, r, cfg.prefix+path+"/"+gameID, http.StatusTemporaryRedirect)
	}
}

// registerGuessWhoGame sets up routes so that:
//   - $path                  → redirects to new random game (8-char ID)
//   - $path/:gameid          → HTML client
//   - $path/:gameid/ws       → WebSocket for that game
//   - $path/:gameid/qr       → PNG QR code for that game URL
func registerGuessWhoGame(cfg *Config, path string, mux *httprouter.Router, gm *GameManager) {
	mux.GET(cfg.prefix+path, redirectNewGame(cfg, path, gm))

	mux.GET(cfg.prefix+path+"/:gameid", getIndexHandler(cfg))

	mux.GET(cfg.prefix+path+"/:gameid/ws", serveWSForManager(cfg, gm))

	mux.GET(cfg.prefix+path+"/:gameid/qr", qrHandler)
}
