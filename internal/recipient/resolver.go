package recipient

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/dikacakep/stock-bridge/internal/platform/observability"
)

const (
	lookupStatusHit   = "hit"
	lookupStatusMiss  = "miss"
	lookupStatusError = "error"
)

// ErrResolveMembers indicates a group-membership lookup failed.
var ErrResolveMembers = errors.New("resolve group members")

// MemberSource performs the external group-membership lookup.
type MemberSource interface {
	GroupMembers(ctx context.Context, groupID string) ([]string, error)
}

// Resolver caches group membership for the process lifetime. Entries
// are populated lazily on first need and never invalidated; membership
// staleness is accepted. Concurrent lookups for the same uncached
// group coalesce into a single upstream call, and failures are never
// cached.
type Resolver struct {
	source MemberSource
	logger *zerolog.Logger

	mu      sync.RWMutex
	members map[string][]string
	flight  singleflight.Group
}

func NewResolver(source MemberSource, logger *zerolog.Logger) *Resolver {
	return &Resolver{
		source:  source,
		logger:  logger,
		members: make(map[string][]string),
	}
}

// GroupMembers returns the ordered member identifiers for a group.
func (r *Resolver) GroupMembers(ctx context.Context, groupID string) ([]string, error) {
	if cached, ok := r.cached(groupID); ok {
		observability.GroupLookups.WithLabelValues(lookupStatusHit).Inc()

		return cached, nil
	}

	v, err, _ := r.flight.Do(groupID, func() (interface{}, error) {
		// A coalesced caller may have populated the cache already.
		if cached, ok := r.cached(groupID); ok {
			return cached, nil
		}

		members, err := r.source.GroupMembers(ctx, groupID)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		r.members[groupID] = members
		r.mu.Unlock()

		observability.GroupLookups.WithLabelValues(lookupStatusMiss).Inc()
		r.logger.Info().Str("group_id", groupID).Int("members", len(members)).Msg("group membership resolved")

		return members, nil
	})
	if err != nil {
		observability.GroupLookups.WithLabelValues(lookupStatusError).Inc()

		return nil, fmt.Errorf("%w: group %s: %w", ErrResolveMembers, groupID, err)
	}

	return v.([]string), nil
}

func (r *Resolver) cached(groupID string) ([]string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members, ok := r.members[groupID]

	return members, ok
}
