// Package server is the hub shared by every connected player. Each player
// runs their own engine; the hub tracks who is connected, ranks their live
// scores, caches the persisted leaderboard and forwards final scores to the
// store.
package server

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/invaders/internal/clock"
	"github.com/tomz197/invaders/internal/loop"
	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/score"
)

// GameServer is the interface clients use to communicate with the hub.
// Decouples the Client from the concrete Server implementation, enabling
// testing.
type GameServer interface {
	RegisterClient(username string) *ClientHandle
	UnregisterClient(clientID int)
	ReportScore(clientID int, points int)
	GetSnapshot() *Snapshot
	SessionContext(ctx context.Context, handle *ClientHandle) loop.SessionContext
}

// Config wires the hub to its backends. Every backend is optional.
type Config struct {
	Leaderboard score.Leaderboard
	Cosmetics   score.Cosmetics
	Bridge      *score.Bridge
	Clock       clock.Clock
	Logger      *log.Logger
}

// Server tracks connected clients and publishes snapshots for them.
type Server struct {
	leaderboard score.Leaderboard
	cosmetics   score.Cosmetics
	bridge      *score.Bridge
	clock       clock.Clock
	logger      *log.Logger

	snapshot     atomic.Pointer[Snapshot]
	clients      map[int]*ClientHandle
	nextClientID int
	scoreCh      chan clientScore
	registerCh   chan *ClientHandle
	unregisterCh chan int
	submittedCh  chan struct{}
	mu           sync.RWMutex

	top         atomic.Pointer[[]score.Record]
	topStale    atomic.Bool
	refreshing  atomic.Bool
	nextRefresh time.Time
}

// Compile-time check that Server implements GameServer.
var _ GameServer = (*Server)(nil)

// ClientHandle represents a client's connection to the hub.
type ClientHandle struct {
	ID       int
	Username string // display name, as given at connect time
	Identity string // normalized username used for scores; empty when anonymous
	Best     int
	EventsCh chan ClientEvent
}

type clientScore struct {
	clientID int
	points   int
}

// ClientEvent represents an event sent from the hub to a client.
type ClientEvent struct {
	Type ClientEventType
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventServerShutdown ClientEventType = iota
	EventLeaderboardUpdated
)

// NewServer creates a new hub.
func NewServer(cfg Config) *Server {
	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	bridge := cfg.Bridge
	if bridge == nil {
		bridge = score.NewBridge(score.BridgeConfig{Logger: logger})
	}

	s := &Server{
		leaderboard:  cfg.Leaderboard,
		cosmetics:    cfg.Cosmetics,
		bridge:       bridge,
		clock:        c,
		logger:       logger.WithPrefix("server"),
		clients:      make(map[int]*ClientHandle),
		nextClientID: 1,
		scoreCh:      make(chan clientScore, 256),
		registerCh:   make(chan *ClientHandle, 16),
		unregisterCh: make(chan int, 16),
		submittedCh:  make(chan struct{}, 1),
	}

	s.snapshot.Store(&Snapshot{UpdatedAt: c.Now()})
	return s
}

// Run starts the hub loop. Blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context) {
	ticker := time.NewTicker(config.HubTickTime)
	defer ticker.Stop()

	s.nextRefresh = s.clock.Now()
	for {
		s.tick(ctx)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// tick runs one hub update.
func (s *Server) tick(ctx context.Context) {
	now := s.clock.Now()

	s.processRegistrations()
	s.collectScores()

	select {
	case <-s.submittedCh:
		if settle := now.Add(config.LeaderboardSettle); settle.Before(s.nextRefresh) {
			s.nextRefresh = settle
		}
	default:
	}
	if !now.Before(s.nextRefresh) {
		s.nextRefresh = now.Add(config.LeaderboardRefresh)
		s.refreshLeaderboard(ctx)
	}

	s.createSnapshot(now)
}

// Shutdown gracefully shuts down the hub by notifying all connected clients
// and waiting for them to disconnect (up to the given timeout).
// The caller should cancel the hub context after Shutdown returns.
func (s *Server) Shutdown(timeout time.Duration) {
	s.broadcast(ClientEvent{Type: EventServerShutdown})

	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			s.logger.Warn("shutdown timed out", "remaining", s.clientCount())
			s.bridge.Wait()
			return
		case <-ticker.C:
			if s.clientCount() == 0 {
				s.bridge.Wait()
				return
			}
		}
	}
}

func (s *Server) clientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

func (s *Server) broadcast(ev ClientEvent) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, handle := range s.clients {
		select {
		case handle.EventsCh <- ev:
		default:
		}
	}
}

// RegisterClient registers a new client with the given username and returns
// its handle. Usernames that fail validation play anonymously.
func (s *Server) RegisterClient(username string) *ClientHandle {
	s.mu.Lock()
	id := s.nextClientID
	s.nextClientID++
	s.mu.Unlock()

	identity, err := score.NormalizeUsername(username)
	if err != nil {
		s.logger.Info("playing anonymously", "client", id, "username", username, "reason", err)
		identity = ""
	}

	handle := &ClientHandle{
		ID:       id,
		Username: username,
		Identity: identity,
		EventsCh: make(chan ClientEvent, 16),
	}

	s.registerCh <- handle
	return handle
}

// UnregisterClient removes a client from the hub.
func (s *Server) UnregisterClient(clientID int) {
	s.unregisterCh <- clientID
}

// ReportScore records a client's current score. It never blocks.
func (s *Server) ReportScore(clientID int, points int) {
	select {
	case s.scoreCh <- clientScore{clientID: clientID, points: points}:
	default:
		// Score channel full, drop update
	}
}

// GetSnapshot returns the current hub snapshot.
func (s *Server) GetSnapshot() *Snapshot {
	return s.snapshot.Load()
}

// SessionContext builds what an engine needs to start a session for the
// client: its identity, equipped cosmetic and the score submitter.
func (s *Server) SessionContext(ctx context.Context, handle *ClientHandle) loop.SessionContext {
	sc := loop.SessionContext{
		Cosmetic: string(score.CosmeticDefault),
		Submit:   s.Submit,
	}
	if handle == nil || handle.Identity == "" {
		return sc
	}
	sc.Identity = handle.Identity

	if s.cosmetics == nil {
		return sc
	}
	ctx, cancel := context.WithTimeout(ctx, config.StoreCallTimeout)
	defer cancel()
	c, err := s.cosmetics.Equipped(ctx, handle.Identity)
	if err != nil {
		s.logger.Warn("failed to load cosmetic", "identity", handle.Identity, "err", err)
		return sc
	}
	sc.Cosmetic = string(c)
	return sc
}

// Submit forwards a final score to the store and schedules a leaderboard
// refresh shortly after.
func (s *Server) Submit(sessionID, identity string, finalScore int) {
	s.bridge.Dispatch(sessionID, identity, finalScore)
	select {
	case s.submittedCh <- struct{}{}:
	default:
	}
}

// processRegistrations handles pending client registrations/unregistrations.
func (s *Server) processRegistrations() {
	for {
		select {
		case handle := <-s.registerCh:
			s.mu.Lock()
			s.clients[handle.ID] = handle
			s.mu.Unlock()
			s.logger.Debug("client registered", "client", handle.ID, "identity", handle.Identity)
		case clientID := <-s.unregisterCh:
			s.mu.Lock()
			if handle, ok := s.clients[clientID]; ok {
				close(handle.EventsCh)
				delete(s.clients, clientID)
			}
			s.mu.Unlock()
			s.logger.Debug("client unregistered", "client", clientID)
		default:
			return
		}
	}
}

// collectScores keeps each client's best reported score.
func (s *Server) collectScores() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for {
		select {
		case cs := <-s.scoreCh:
			if handle, ok := s.clients[cs.clientID]; ok && cs.points > handle.Best {
				handle.Best = cs.points
			}
		default:
			return
		}
	}
}

// refreshLeaderboard reloads the persisted top scores on a background
// goroutine. At most one refresh runs at a time; on failure the previous
// list is kept and marked stale.
func (s *Server) refreshLeaderboard(ctx context.Context) {
	if s.leaderboard == nil || !s.refreshing.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer s.refreshing.Store(false)

		ctx, cancel := context.WithTimeout(ctx, config.StoreCallTimeout)
		defer cancel()

		records, err := s.leaderboard.Top(ctx, config.LeaderboardSize)
		if err != nil {
			s.topStale.Store(true)
			s.logger.Warn("failed to refresh leaderboard", "err", err)
			return
		}
		s.top.Store(&records)
		s.topStale.Store(false)
		s.broadcast(ClientEvent{Type: EventLeaderboardUpdated})
	}()
}

// createSnapshot publishes an immutable snapshot of the hub.
func (s *Server) createSnapshot(now time.Time) {
	s.mu.RLock()
	live := make([]LiveEntry, 0, len(s.clients))
	for _, handle := range s.clients {
		if handle.Identity == "" || handle.Best == 0 {
			continue
		}
		live = append(live, LiveEntry{Username: handle.Identity, Score: handle.Best, clientID: handle.ID})
	}
	players := len(s.clients)
	s.mu.RUnlock()

	snap := &Snapshot{
		Players:   players,
		Live:      rankLive(live, config.LiveBoardSize),
		TopStale:  s.topStale.Load(),
		UpdatedAt: now,
	}
	if top := s.top.Load(); top != nil {
		snap.Top = *top
	}
	s.snapshot.Store(snap)
}

// ConfigForStore wires every backend of the hub to store. A nil store leaves
// the hub without persistence: games still run but nothing is saved.
func ConfigForStore(store score.Store, logger *log.Logger) Config {
	cfg := Config{Logger: logger}
	if store == nil {
		return cfg
	}
	cfg.Leaderboard = store
	cfg.Cosmetics = store
	cfg.Bridge = score.NewBridge(score.BridgeConfig{
		Submitter: store,
		Logger:    logger,
		Timeout:   config.StoreCallTimeout,
	})
	return cfg
}
