// Package cache holds discovery results for the lifetime of the process.
// The pipeline is otherwise stateless between runs; this is the one piece of
// session state, injected explicitly so tests and callers control its
// lifetime and invalidation.
package cache

import (
	"sort"
	"strings"
	"sync"
	"time"

	"grid-scout/internal/domain"
)

type tournamentsEntry struct {
	tournaments []domain.Tournament
	storedAt    time.Time
}

type teamsEntry struct {
	teams    []domain.TeamIdentity
	storedAt time.Time
}

// Discovery is a fixed-TTL cache for tournament listings and per-scope team
// discovery results.
type Discovery struct {
	mu          sync.RWMutex
	ttl         time.Duration
	tournaments *tournamentsEntry
	teams       map[string]teamsEntry
}

func NewDiscovery(ttl time.Duration) *Discovery {
	return &Discovery{
		ttl:   ttl,
		teams: make(map[string]teamsEntry),
	}
}

// Key builds a stable cache key from a set of tournament ids.
func Key(tournamentIDs []string) string {
	ids := make([]string, len(tournamentIDs))
	copy(ids, tournamentIDs)
	sort.Strings(ids)
	return strings.Join(ids, ",")
}

func (d *Discovery) Tournaments() ([]domain.Tournament, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.tournaments == nil || d.expired(d.tournaments.storedAt) {
		return nil, false
	}
	return d.tournaments.tournaments, true
}

func (d *Discovery) SetTournaments(tournaments []domain.Tournament) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tournaments = &tournamentsEntry{tournaments: tournaments, storedAt: time.Now()}
}

func (d *Discovery) Teams(key string) ([]domain.TeamIdentity, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	entry, ok := d.teams[key]
	if !ok || d.expired(entry.storedAt) {
		return nil, false
	}
	return entry.teams, true
}

func (d *Discovery) SetTeams(key string, teams []domain.TeamIdentity) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.teams[key] = teamsEntry{teams: teams, storedAt: time.Now()}
}

// Invalidate drops everything; the next lookups go back to the gateway.
func (d *Discovery) Invalidate() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tournaments = nil
	d.teams = make(map[string]teamsEntry)
}

func (d *Discovery) expired(storedAt time.Time) bool {
	return d.ttl > 0 && time.Since(storedAt) > d.ttl
}
