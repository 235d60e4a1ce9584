package tracker

import (
	"context"
	"fmt"
	"time"

	applog "rank-tracker/core/logger"
	"rank-tracker/feature/tracker/models"
	"rank-tracker/feature/tracker/osu"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RankSource yields the current upstream state of a tracked player.
type RankSource interface {
	LookupUser(ctx context.Context, osuID int64) (osu.Outcome, error)
}

// Engine runs reconciliation passes over the tracked users.
//
// A pass is strictly sequential: the rank source's rate limiter is the only
// blocking point and it stalls the whole pass. The engine never inserts
// rows, never touches badges or is_banned, and leaves iteration order to
// the store.
type Engine struct {
	store           UserStore
	source          RankSource
	sink            ModerationSink
	logger          *zap.Logger
	continueOnError bool

	// injectable for deterministic tests
	now func() time.Time
}

// NewEngine wires a reconciliation engine. continueOnError selects the
// error policy: false aborts the pass on the first fetch/store/sink
// failure, true logs per-user failures and keeps going.
func NewEngine(store UserStore, source RankSource, sink ModerationSink, logger *zap.Logger, continueOnError bool) *Engine {
	return &Engine{
		store:           store,
		source:          source,
		sink:            sink,
		logger:          logger,
		continueOnError: continueOnError,
		now:             time.Now,
	}
}

// RunPass reconciles every tracked user once.
//
// Under the fail-fast policy the returned summary reflects progress up to
// the failing user; the error carries the user's identity. The next
// scheduled pass retries everyone from scratch; there is no per-user
// retry and no checkpoint.
func (e *Engine) RunPass(ctx context.Context) (*models.PassSummary, error) {
	summary := &models.PassSummary{
		PassID:    uuid.NewString(),
		Mode:      e.sink.Name(),
		StartedAt: e.now(),
	}
	l := applog.WithPass(e.logger, summary.PassID)

	defer func() {
		summary.Elapsed = e.now().Sub(summary.StartedAt)
	}()

	users, err := e.store.ListAll(ctx)
	if err != nil {
		return summary, err
	}
	summary.Total = len(users)

	// The admin credential is loaded once per pass, not per ban.
	var adminHash string
	if e.sink.NeedsAdmin() {
		admin, err := e.store.GetAdmin(ctx)
		if err != nil {
			return summary, err
		}
		adminHash = admin.UserHash
	}

	for i := range users {
		user := &users[i]
		userStart := e.now()

		updated, err := e.reconcileUser(ctx, l, user, adminHash, summary)
		if err != nil {
			if !e.continueOnError {
				return summary, fmt.Errorf("pass aborted at user %d (%s): %w", user.OsuID, user.OsuUsername, err)
			}
			summary.Failed++
			l.Warn("Skipping user after failure",
				zap.Int64("osu_id", user.OsuID),
				zap.String("osu_username", user.OsuUsername),
				zap.Error(err),
			)
			continue
		}

		if updated {
			l.Info("Updated a single user",
				zap.Int64("osu_id", user.OsuID),
				zap.Float64("elapsed_seconds", e.now().Sub(userStart).Seconds()),
			)
		}
	}

	l.Info("Updated all users",
		zap.Int("total", summary.Total),
		zap.Int("updated", summary.Updated),
		zap.Int("missing", summary.Missing),
		zap.Int("failed", summary.Failed),
		zap.Float64("elapsed_seconds", e.now().Sub(summary.StartedAt).Seconds()),
	)
	return summary, nil
}

// reconcileUser handles one tracked user: fetch, classify, then either a
// single rank update or the moderation sink. A vanished user short-circuits;
// no score is computed and no update is issued for that row.
func (e *Engine) reconcileUser(ctx context.Context, l *zap.Logger, user *models.TrackedUser, adminHash string, summary *models.PassSummary) (bool, error) {
	outcome, err := e.source.LookupUser(ctx, user.OsuID)
	if err != nil {
		return false, err
	}

	if !outcome.Found {
		l.Info("Errored upstream for user",
			zap.Int64("osu_id", user.OsuID),
			zap.String("osu_username", user.OsuUsername),
			zap.String("discord_tag", user.DiscordTag),
		)
		if err := e.sink.Handle(ctx, user, adminHash); err != nil {
			return false, err
		}
		summary.Missing++
		return false, nil
	}

	bws := BwsRank(outcome.GlobalRank, user.Badges)
	if err := e.store.UpdateRank(ctx, user.OsuID, outcome.GlobalRank, bws, outcome.Username); err != nil {
		return false, err
	}
	summary.Updated++
	return true, nil
}
