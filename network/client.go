package network

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/automoto/netcharacon/logging"
	"github.com/automoto/netcharacon/shared/messages"
	"github.com/automoto/netcharacon/shared/netconfig"
	"github.com/coder/websocket"
	"github.com/leap-fish/necs/esync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
	"go.uber.org/zap"
)

// ErrNotConnected is returned when sending without a live connection.
var ErrNotConnected = errors.New("not connected")

// Client manages a WebSocket connection to the game server.
// All shared fields are protected by mu (router callbacks run on necs goroutines).
type Client struct {
	mu sync.RWMutex

	state       netconfig.ConnState
	lastError   error
	networkID   esync.NetworkId
	serverName  string
	tickRate    int
	physicsRate int
	substeps    int
	conn        *websocket.Conn

	joinOnce sync.Once
	joinedCh chan struct{} // closed once the join is accepted or has failed

	snapshotCh chan esync.WorldSnapshot // size-1 buffered; latest wins

	log *zap.SugaredLogger
}

func NewClient() *Client {
	return &Client{
		state:      netconfig.Connecting,
		joinedCh:   make(chan struct{}),
		snapshotCh: make(chan esync.WorldSnapshot, 1),
		log:        logging.Named("client"),
	}
}

// Connect dials the server in a background goroutine and sends req once the
// transport is up.
func (c *Client) Connect(address string, req messages.JoinRequest) {
	router.OnConnect(func(_ *router.NetworkClient) {
		c.log.Infow("connected to server", "addr", address)
		if err := c.SendMessage(req); err != nil {
			c.fail(fmt.Errorf("send join request: %w", err))
		}
	})

	router.On(func(_ *router.NetworkClient, msg messages.JoinAccepted) {
		c.onJoinAccepted(msg)
	})

	router.On(func(_ *router.NetworkClient, msg messages.JoinRejected) {
		c.fail(fmt.Errorf("join rejected: %s", msg.Reason))
	})

	router.On(func(_ *router.NetworkClient, snapshot esync.WorldSnapshot) {
		c.onSnapshot(snapshot)
	})

	router.OnDisconnect(func(_ *router.NetworkClient, err error) {
		c.onDisconnect(err)
	})

	router.OnError(func(_ *router.NetworkClient, err error) {
		c.log.Warnw("transport error", "err", err)
	})

	go func() {
		transport := transports.NewWsClientTransport("ws://" + address)
		err := transport.Start(func(conn *websocket.Conn) {
			c.mu.Lock()
			c.conn = conn
			c.mu.Unlock()
		})
		if err != nil {
			c.fail(fmt.Errorf("connection failed: %w", err))
		}
	}()
}

// WaitJoined blocks until the server accepted or refused the join, or ctx
// ends.
func (c *Client) WaitJoined(ctx context.Context) error {
	select {
	case <-c.joinedCh:
	case <-ctx.Done():
		return fmt.Errorf("waiting for join: %w", ctx.Err())
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.state != netconfig.Connected {
		return c.lastError
	}
	return nil
}

func (c *Client) Disconnect() {
	c.mu.Lock()
	conn := c.conn
	c.state = netconfig.Disconnected
	c.conn = nil
	c.mu.Unlock()
	c.joinOnce.Do(func() { close(c.joinedCh) })

	if conn != nil {
		_ = conn.CloseNow()
	}

	router.ResetRouter()
}

func (c *Client) onJoinAccepted(msg messages.JoinAccepted) {
	c.log.Infow("join accepted", "networkId", msg.NetworkID, "server", msg.ServerName,
		"tickRate", msg.TickRate, "physicsRate", msg.PhysicsRate, "substeps", msg.Substeps)
	c.mu.Lock()
	if !c.state.CanTransition(netconfig.Connected) {
		c.mu.Unlock()
		return
	}
	c.networkID = msg.NetworkID
	c.serverName = msg.ServerName
	c.tickRate = msg.TickRate
	c.physicsRate = msg.PhysicsRate
	c.substeps = msg.Substeps
	c.state = netconfig.Connected
	c.mu.Unlock()
	c.joinOnce.Do(func() { close(c.joinedCh) })
}

func (c *Client) onSnapshot(snapshot esync.WorldSnapshot) {
	select { // drain stale, push latest
	case <-c.snapshotCh:
	default:
	}
	select {
	case c.snapshotCh <- snapshot:
	default:
	}
}

func (c *Client) onDisconnect(err error) {
	c.log.Infow("disconnected", "err", err)
	c.mu.Lock()
	c.state = netconfig.Disconnected
	if c.lastError == nil && err != nil {
		c.lastError = err
	}
	c.conn = nil
	c.mu.Unlock()
	c.joinOnce.Do(func() { close(c.joinedCh) })
}

func (c *Client) fail(err error) {
	c.log.Warnw("client failed", "err", err)
	c.mu.Lock()
	c.state = netconfig.Disconnected
	c.lastError = err
	c.mu.Unlock()
	c.joinOnce.Do(func() { close(c.joinedCh) })
}

func (c *Client) State() netconfig.ConnState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Client) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastError
}

func (c *Client) NetworkID() esync.NetworkId {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.networkID
}

func (c *Client) ServerName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.serverName
}

// Rates returns the network tick rate, physics tick rate and substep count
// announced by the server.
func (c *Client) Rates() (tickRate, physicsRate, substeps int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tickRate, c.physicsRate, c.substeps
}

// LatestSnapshot returns the most recent WorldSnapshot, or nil. Non-blocking.
func (c *Client) LatestSnapshot() *esync.WorldSnapshot {
	select {
	case snap := <-c.snapshotCh:
		return &snap
	default:
		return nil
	}
}

// SendMessage serializes msg and writes it without waiting for delivery
// guarantees beyond the socket write.
func (c *Client) SendMessage(msg any) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()

	if conn == nil {
		return ErrNotConnected
	}

	payload, err := router.Serialize(msg)
	if err != nil {
		return fmt.Errorf("serialize: %w", err)
	}

	return conn.Write(context.Background(), websocket.MessageBinary, payload)
}
