package web

import (
	"context"
	"time"
)

const pruneInterval = time.Hour

// PruneUpdates drops dedup entries older than ttl once an hour until ctx is
// cancelled. It does nothing when the server has no update log.
func (s *Server) PruneUpdates(ctx context.Context, ttl time.Duration) {
	if s.updates == nil {
		return
	}
	ticker := time.NewTicker(pruneInterval)
	defer ticker.Stop()

	s.pruneOnce(ctx, ttl)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.pruneOnce(ctx, ttl)
		}
	}
}

func (s *Server) pruneOnce(ctx context.Context, ttl time.Duration) {
	removed, err := s.updates.Prune(ctx, s.now().Add(-ttl))
	if err != nil {
		s.logger.Warn("pruning processed updates failed", "error", err)
		return
	}
	if removed > 0 {
		s.logger.Debug("pruned processed updates", "removed", removed)
	}
}
