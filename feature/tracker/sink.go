package tracker

import (
	"context"
	"fmt"

	"rank-tracker/feature/tracker/models"
	"rank-tracker/feature/tracker/moderation"

	"go.uber.org/zap"
)

// ModerationSink is the action taken when a tracked user no longer resolves
// upstream. The engine calls Handle once per vanished user and never touches
// the row afterwards in the same pass.
type ModerationSink interface {
	// Name identifies the sink in logs and pass summaries.
	Name() string
	// NeedsAdmin reports whether the engine must load the admin row
	// before the pass starts.
	NeedsAdmin() bool
	// Handle applies the sink's action. adminHash is empty unless
	// NeedsAdmin returned true.
	Handle(ctx context.Context, user *models.TrackedUser, adminHash string) error
}

// banAPI is the slice of the moderation client the ban sink uses.
type banAPI interface {
	Ban(ctx context.Context, osuID int64, adminHash string) error
}

// NewBanSink returns a sink that bans vanished users through the moderation
// API. Users already flagged is_banned are skipped; the flag itself is never
// written here, the moderation service reflects it on its own.
func NewBanSink(api banAPI, logger *zap.Logger) ModerationSink {
	return &banSink{api: api, logger: logger}
}

type banSink struct {
	api    banAPI
	logger *zap.Logger
}

func (s *banSink) Name() string     { return moderation.ModeBan }
func (s *banSink) NeedsAdmin() bool { return true }

func (s *banSink) Handle(ctx context.Context, user *models.TrackedUser, adminHash string) error {
	if user.IsBanned {
		s.logger.Debug("User already banned, skipping",
			zap.Int64("osu_id", user.OsuID),
			zap.String("osu_username", user.OsuUsername),
		)
		return nil
	}

	s.logger.Info("Banning user",
		zap.Int64("osu_id", user.OsuID),
		zap.String("osu_username", user.OsuUsername),
	)
	if err := s.api.Ban(ctx, user.OsuID, adminHash); err != nil {
		return fmt.Errorf("failed to ban user %d: %w", user.OsuID, err)
	}
	return nil
}

// NewDeleteSink returns a sink that removes vanished users from the store.
func NewDeleteSink(store UserStore, logger *zap.Logger) ModerationSink {
	return &deleteSink{store: store, logger: logger}
}

type deleteSink struct {
	store  UserStore
	logger *zap.Logger
}

func (s *deleteSink) Name() string     { return moderation.ModeDelete }
func (s *deleteSink) NeedsAdmin() bool { return false }

func (s *deleteSink) Handle(ctx context.Context, user *models.TrackedUser, _ string) error {
	s.logger.Info("Removing vanished user",
		zap.Int64("osu_id", user.OsuID),
		zap.String("osu_username", user.OsuUsername),
	)
	return s.store.Delete(ctx, user.OsuID)
}
