package score

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultSubmitTimeout bounds a single submission.
const DefaultSubmitTimeout = 5 * time.Second

// DefaultRemember is how many recent sessions a bridge remembers for
// duplicate suppression.
const DefaultRemember = 4096

// BridgeConfig configures a Bridge.
type BridgeConfig struct {
	Submitter Submitter
	Logger    *log.Logger
	Timeout   time.Duration
	Remember  int // recent sessions kept for duplicate suppression; 0 means DefaultRemember
}

// Bridge hands final scores to a Submitter at most once per session.
// Dispatch returns immediately; the store call runs on its own goroutine,
// failures are logged and never retried.
type Bridge struct {
	submitter Submitter
	logger    *log.Logger
	timeout   time.Duration

	mu       sync.Mutex
	sent     map[string]struct{}
	order    []string // sent session IDs, oldest first
	remember int
	wg       sync.WaitGroup
}

// NewBridge creates a bridge. A nil Submitter makes every dispatch a no-op.
func NewBridge(cfg BridgeConfig) *Bridge {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultSubmitTimeout
	}
	remember := cfg.Remember
	if remember <= 0 {
		remember = DefaultRemember
	}
	return &Bridge{
		submitter: cfg.Submitter,
		logger:    logger.WithPrefix("bridge"),
		timeout:   timeout,
		sent:      make(map[string]struct{}, remember),
		remember:  remember,
	}
}

// Dispatch submits the final score for a session. Repeated calls for one of
// the last Remember sessions do nothing. Anonymous players (empty identity) are never submitted.
func (b *Bridge) Dispatch(sessionID, identity string, finalScore int) {
	b.mu.Lock()
	if _, done := b.sent[sessionID]; done {
		b.mu.Unlock()
		b.logger.Debug("duplicate dispatch ignored", "session", sessionID)
		return
	}
	b.sent[sessionID] = struct{}{}
	b.order = append(b.order, sessionID)
	if len(b.order) > b.remember {
		delete(b.sent, b.order[0])
		b.order = b.order[1:]
	}
	b.mu.Unlock()

	if identity == "" {
		b.logger.Debug("anonymous session, score not submitted", "session", sessionID, "score", finalScore)
		return
	}
	if b.submitter == nil {
		b.logger.Debug("no score store configured", "session", sessionID, "score", finalScore)
		return
	}

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
		defer cancel()

		rec, err := b.submitter.SubmitScore(ctx, identity, finalScore)
		if err != nil {
			b.logger.Error("failed to save score", "session", sessionID, "identity", identity, "score", finalScore, "err", err)
			return
		}
		b.logger.Info("score saved", "session", sessionID, "identity", rec.Username, "score", rec.Score, "coins", rec.Coins)
	}()
}

// Wait blocks until in-flight submissions have finished.
func (b *Bridge) Wait() {
	b.wg.Wait()
}
