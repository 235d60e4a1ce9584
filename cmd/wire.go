package cmd

import (
	"rank-tracker/core/config"
	"rank-tracker/feature/tracker"
	"rank-tracker/feature/tracker/moderation"
	"rank-tracker/feature/tracker/osu"

	"go.uber.org/zap"
)

// The feature clients take plain constructor inputs; only cmd knows about
// the central configuration and maps its sections here.

func osuClient(cfg *config.Config) *osu.Client {
	return osu.NewClient(osu.Config{
		ApiURL:            cfg.Osu.ApiURL,
		TokenURL:          cfg.Osu.TokenURL,
		ClientID:          cfg.Osu.ClientID,
		ClientSecret:      cfg.Osu.ClientSecret,
		RequestIntervalMs: cfg.Osu.RequestIntervalMs,
	})
}

// buildSink picks the moderation behavior for vanished users. Ban mode
// notifies the external moderation service; delete mode removes the row.
func buildSink(cfg *config.Config, store tracker.UserStore, logg *zap.Logger) tracker.ModerationSink {
	if cfg.Moderation.Mode == moderation.ModeBan {
		client := moderation.NewClient(moderation.Config{
			ApiURL:         cfg.Moderation.ApiURL,
			TimeoutSeconds: cfg.Moderation.TimeoutSeconds,
		})
		return tracker.NewBanSink(client, logg)
	}
	return tracker.NewDeleteSink(store, logg)
}
