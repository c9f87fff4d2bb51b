package service

import (
	"context"
	"errors"
	"time"

	"bitwise74/reelhub-api/internal/store"

	"go.uber.org/zap"
)

// OrphanCleanup periodically removes ratings and comments whose author no
// longer exists, finishing cascades the account deletion couldn't.
// It stops when ctx is done. t <= 0 disables it.
func OrphanCleanup(ctx context.Context, t time.Duration, s *store.Store) {
	if t <= 0 {
		zap.L().Debug("Orphan cleanup disabled")
		return
	}

	ticker := time.NewTicker(t)

	zap.L().Debug("Orphan cleanup attached", zap.Duration("tick_every", t))

	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := SweepOrphans(ctx, s); err != nil {
					zap.L().Error("Orphan cleanup failed, retrying next tick", zap.Error(err))
				}
			}
		}
	}()
}

// SweepOrphans runs a single cleanup pass. Both collections are always
// attempted.
func SweepOrphans(ctx context.Context, s *store.Store) error {
	ratings, rErr := s.Ratings.DeleteOrphans(ctx)
	comments, cErr := s.Comments.DeleteOrphans(ctx)

	if ratings > 0 || comments > 0 {
		zap.L().Info("Removed orphaned documents",
			zap.Int64("ratings", ratings),
			zap.Int64("comments", comments),
		)
	}

	return errors.Join(rErr, cErr)
}
