package server

import (
	"sort"
	"time"

	"github.com/tomz197/invaders/internal/score"
)

// LiveEntry is one connected player's best score this visit.
type LiveEntry struct {
	Username string
	Score    int
	clientID int // Used for deterministic tie-break when scores are equal
}

// Snapshot is an immutable view of the hub for rendering.
type Snapshot struct {
	Players   int
	Live      []LiveEntry    // best scores among connected players
	Top       []score.Record // persisted leaderboard
	TopStale  bool           // the last leaderboard refresh failed
	UpdatedAt time.Time
}

// rankLive sorts by score, then by connection order, and keeps the first n.
func rankLive(entries []LiveEntry, n int) []LiveEntry {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].clientID < entries[j].clientID
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
