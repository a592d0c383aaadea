package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Seednode/guesswho/guesswho"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*httptest.Server, *GameManager) {
	t.Helper()

	cfg := &Config{strategy: "balance"}

	roster, err := loadRoster(cfg)
	require.NoError(t, err)

	errs := make(chan error, 64)
	mux, gm := newRouter(cfg, roster, guesswho.SplitBalance{}, errs)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return srv, gm
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()

	client := &http.Client{
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	resp, err := client.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, string(body)
}

func TestRoutes(t *testing.T) {
	srv, _ := newTestServer(t)

	t.Run("health check", func(t *testing.T) {
		resp, body := get(t, srv.URL+"/healthz")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Ok\n", body)
		assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	})

	t.Run("version", func(t *testing.T) {
		_, body := get(t, srv.URL+"/version")
		assert.Equal(t, "guesswho v"+releaseVersion+"\n", body)
	})

	t.Run("home page links to a new game", func(t *testing.T) {
		resp, body := get(t, srv.URL+"/")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body, `href="/guesswho"`)
	})

	t.Run("roster api", func(t *testing.T) {
		resp, body := get(t, srv.URL+"/api/roster")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

		var got struct {
			Characters []struct {
				Name     string         `json:"name"`
				Filename string         `json:"filename"`
				Traits   map[string]any `json:"traits"`
			} `json:"characters"`
			Questions []struct {
				Trait string `json:"trait"`
				Value any    `json:"value"`
				Text  string `json:"text"`
			} `json:"questions"`
		}
		require.NoError(t, json.Unmarshal([]byte(body), &got))

		require.Len(t, got.Characters, 24)
		assert.Equal(t, "Alex", got.Characters[0].Name)
		assert.Equal(t, "alex.png", got.Characters[0].Filename)
		assert.Len(t, got.Characters[0].Traits, 9)
		assert.Equal(t, false, got.Characters[0].Traits["glasses"])

		require.NotEmpty(t, got.Questions)
		assert.Equal(t, "gender", got.Questions[0].Trait)
		for _, q := range got.Questions {
			assert.NotEmpty(t, q.Text, "%s=%v", q.Trait, q.Value)
		}
	})

	t.Run("new game redirect", func(t *testing.T) {
		resp, _ := get(t, srv.URL+"/guesswho")
		require.Equal(t, http.StatusTemporaryRedirect, resp.StatusCode)

		loc := resp.Header.Get("Location")
		require.True(t, strings.HasPrefix(loc, "/guesswho/"), loc)
		assert.Len(t, strings.TrimPrefix(loc, "/guesswho/"), 8)
	})

	t.Run("game page sets a player cookie", func(t *testing.T) {
		resp, body := get(t, srv.URL+"/guesswho/abcdefgh")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body, "<html")

		var found bool
		for _, c := range resp.Cookies() {
			if c.Name == playerCookieName && c.Value != "" {
				found = true
			}
		}
		assert.True(t, found)
	})

	t.Run("qr code", func(t *testing.T) {
		resp, body := get(t, srv.URL+"/guesswho/abcdefgh/qr")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
		assert.True(t, strings.HasPrefix(body, "\x89PNG"))
	})

	t.Run("assets", func(t *testing.T) {
		resp, _ := get(t, srv.URL+"/assets/guesswho/app.js")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "text/javascript; charset=utf-8", resp.Header.Get("Content-Type"))

		resp, _ = get(t, srv.URL+"/assets/guesswho/missing.js")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("favicon", func(t *testing.T) {
		resp, _ := get(t, srv.URL+"/favicon.svg")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"))
	})
}

func dial(t *testing.T, srv *httptest.Server, gameID, playerID string) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/guesswho/" + gameID + "/ws"

	header := http.Header{}
	header.Set("Cookie", playerCookieName+"="+playerID)

	conn, resp, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	resp.Body.Close()
	t.Cleanup(func() { _ = conn.Close() })

	return conn
}

func read(t *testing.T, conn *websocket.Conn) map[string]any {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var msg map[string]any
	require.NoError(t, conn.ReadJSON(&msg))

	return msg
}

func TestWebSocketGame(t *testing.T) {
	srv, gm := newTestServer(t)

	owner := dial(t, srv, "game0001", "owner")

	info := read(t, owner)
	assert.Equal(t, "session_info", info["type"])
	assert.Equal(t, "game0001", info["game_id"])
	assert.Equal(t, true, info["is_owner"])
	assert.Equal(t, "balance", info["strategy"])

	state := read(t, owner)
	assert.Equal(t, "state", state["type"])
	assert.Equal(t, "setup", state["phase"])

	require.NoError(t, owner.WriteJSON(map[string]any{
		"type":      "start",
		"mode":      "ai_guesses",
		"character": "Alex",
	}))

	state = read(t, owner)
	assert.Equal(t, "ai_asks", state["phase"])
	assert.Equal(t, "Alex", state["player"])
	assert.NotEmpty(t, state["question_text"])
	assert.Nil(t, state["secret"])

	spectator := dial(t, srv, "game0001", "spectator")

	info = read(t, spectator)
	assert.Equal(t, false, info["is_owner"])
	assert.Equal(t, "ai_asks", read(t, spectator)["phase"])

	require.NoError(t, spectator.WriteJSON(map[string]any{"type": "reset"}))
	msg := read(t, spectator)
	assert.Equal(t, "error", msg["type"])
	assert.Equal(t, ErrNotOwner.Error(), msg["message"])

	require.NoError(t, owner.WriteJSON(map[string]any{"type": "answer"}))
	msg = read(t, owner)
	assert.Equal(t, "error", msg["type"])

	require.NoError(t, owner.WriteMessage(websocket.TextMessage, []byte(`{"type":"answer","yes":"true"}`)))
	msg = read(t, owner)
	assert.Equal(t, "error", msg["type"])
	assert.Contains(t, msg["message"], ErrMalformedMessage.Error())

	require.NoError(t, owner.WriteMessage(websocket.TextMessage, []byte(`{"type":"ask","trait":"hair","value":{"colour":"red"}}`)))
	assert.Equal(t, "error", read(t, owner)["type"])

	require.NoError(t, owner.WriteJSON(map[string]any{"type": "answer", "yes": true}))
	state = read(t, owner)
	assert.Equal(t, "state", state["type"])
	assert.Len(t, state["history"], 1)
	assert.Equal(t, state["history"], read(t, spectator)["history"])

	t.Run("games are isolated", func(t *testing.T) {
		other := dial(t, srv, "game0002", "owner")
		assert.Equal(t, true, read(t, other)["is_owner"])
		assert.Equal(t, "setup", read(t, other)["phase"])
	})

	t.Run("idle games are reaped", func(t *testing.T) {
		assert.Equal(t, 2, gm.reap(time.Now().Add(time.Hour)))
		assert.Zero(t, gm.reap(time.Now().Add(time.Hour)))

		require.NoError(t, owner.SetReadDeadline(time.Now().Add(5*time.Second)))
		_, _, err := owner.ReadMessage()
		assert.Error(t, err)
	})
}
