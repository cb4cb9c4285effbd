// Package web serves the game to browsers: an embedded page whose canvas is
// driven over a WebSocket by a server-side session.
package web

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/tomz197/snake/internal/config"
	"github.com/tomz197/snake/internal/game"
	"github.com/tomz197/snake/internal/input"
)

const (
	writeWait      = 5 * time.Second
	maxMessageSize = 512
)

//go:embed static/index.html
var indexHTML []byte

// Options configures the handler.
type Options struct {
	Settings config.Settings // Zero value means config.Default()
	Logger   *log.Logger
	// NewRand seeds each connection's session. Defaults to a time-seeded source.
	NewRand func() *rand.Rand
}

type handler struct {
	opts     Options
	log      *log.Logger
	upgrader websocket.Upgrader
}

// NewHandler returns the page at / and the game socket at /ws.
func NewHandler(opts Options) http.Handler {
	if opts.Settings == (config.Settings{}) {
		opts.Settings = config.Default()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	h := &handler{
		opts:     opts,
		log:      opts.Logger,
		upgrader: websocket.Upgrader{CheckOrigin: sameOrigin},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.serveIndex)
	mux.HandleFunc("GET /ws", h.serveWS)
	return mux
}

// sameOrigin accepts requests without an Origin header (non-browser clients)
// and browser requests coming from the page this handler serves.
func sameOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, r.Host)
}

func (h *handler) serveIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

func (h *handler) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	defer conn.Close()

	logger := h.log.With("remote", r.RemoteAddr)
	logger.Info("client connected")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	keys := make(chan input.Key, 16)
	go readKeys(ctx, conn, keys, logger)

	send := func(m Message) error {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(m); err != nil {
			return fmt.Errorf("send %s: %w", m.GetEvent(), err)
		}
		return nil
	}
	surface := newFrameSurface(h.opts.Settings.CanvasSize, send)

	sessionOpts := game.OptionsFromSettings(h.opts.Settings, logger)
	if h.opts.NewRand != nil {
		sessionOpts.Rand = h.opts.NewRand()
	}
	session := game.NewSession(surface, surface, sessionOpts)

	if err := session.Run(ctx, keys); err != nil {
		logger.Info("client disconnected", "err", err, "score", session.Score())
		return
	}
	logger.Info("client disconnected", "score", session.Score())
}

// readKeys forwards key messages until the connection fails, then closes keys.
func readKeys(ctx context.Context, conn *websocket.Conn, keys chan<- input.Key, logger *log.Logger) {
	defer close(keys)
	conn.SetReadLimit(maxMessageSize)

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug("read error", "err", err)
			}
			return
		}

		var m KeyMessage
		if err := json.Unmarshal(msg, &m); err != nil {
			logger.Debug("bad message", "err", err)
			continue
		}
		if m.GetEvent() != EventKey {
			logger.Debug("unknown event", "event", m.GetEvent())
			continue
		}

		select {
		case keys <- input.Key(m.Key):
		case <-ctx.Done():
			return
		}
	}
}
