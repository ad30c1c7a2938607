package constants

import "time"

const (
	ExternalAPITimeout = 10 * time.Second
	RequestTimeout     = 90 * time.Second
)

const (
	// TournamentScanLimit caps the recent-tournament listing; the upstream
	// API rejects page sizes above 50.
	TournamentScanLimit = 50

	DefaultSeriesLimit      = 20
	DefaultMaxMatches       = 10
	DefaultFetchConcurrency = 4

	TopPlayerCount = 5
)

const (
	DiscoveryCacheTTL = 15 * time.Minute
	ShutdownTimeout   = 5 * time.Second
)
