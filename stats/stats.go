// Package stats provides recent game logs for athletes.
//
// The game logs are only used to derive highlight search terms, so every failure
// here is recoverable: callers are expected to carry on without them.
package stats

import (
	"context"
	"errors"

	"github.com/hoopreel/hoopreel/source"
)

var (
	// ErrProviderUnavailable is returned when the provider is not configured or cannot be reached.
	ErrProviderUnavailable = errors.New("statistics provider unavailable")

	// ErrPlayerNotFound is returned when no player matches the requested name.
	ErrPlayerNotFound = errors.New("player not found")
)

// Provider returns recent game records for an athlete.
type Provider interface {
	// RecentGames returns up to limit games, most recent first.
	RecentGames(ctx context.Context, subject string, limit int) ([]*source.Game, error)
}
