// Package admin serves the server's operational HTTP API: health, metrics,
// a character listing and a websocket feed of character poses.
package admin

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/automoto/netcharacon/logging"
	"github.com/automoto/netcharacon/server/core"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Source is what the admin API reads from the game server.
type Source interface {
	Characters() []core.CharacterView
	PlayerCount() int
	Metrics() *core.Metrics
}

var upgrader = websocket.Upgrader{
	CheckOrigin:     func(r *http.Request) bool { return true },
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

const wsWriteDeadline = 5 * time.Second

// NewRouter builds the gin engine. observeRate is the number of frames per
// second pushed to /observe clients.
func NewRouter(src Source, serverName string, observeRate int) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"name":    serverName,
			"players": src.PlayerCount(),
		})
	})

	r.GET("/metrics", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"players": src.PlayerCount(),
			"metrics": src.Metrics().Snapshot(),
		})
	})

	r.GET("/characters", func(c *gin.Context) {
		c.JSON(http.StatusOK, src.Characters())
	})

	r.GET("/observe", func(c *gin.Context) {
		observe(c, src, observeRate)
	})

	return r
}

// observe streams the character list as JSON text frames until the client
// goes away.
func observe(c *gin.Context, src Source, rate int) {
	log := logging.Named("admin")

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Debugw("observe upgrade failed", "err", err)
		return
	}
	defer ws.Close()

	if rate <= 0 {
		rate = 1
	}

	// The read side only exists to notice the client closing.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(rate))
	defer ticker.Stop()

	for {
		if err := writeFrame(ws, src.Characters()); err != nil {
			log.Debugw("observe write failed", "err", err)
			return
		}
		select {
		case <-closed:
			return
		case <-c.Request.Context().Done():
			return
		case <-ticker.C:
		}
	}
}

// writeFrame sends v as one JSON text frame under the write deadline.
func writeFrame(ws *websocket.Conn, v any) error {
	if err := ws.SetWriteDeadline(time.Now().Add(wsWriteDeadline)); err != nil {
		return fmt.Errorf("set write deadline: %w", err)
	}
	if err := ws.WriteJSON(v); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

// Serve runs the admin API on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
