package models

import "time"

// TrackedUser represents a row in the tournament 'users' table.
// The table is owned by the registration system; the tracker only ever
// writes osu_global_rank, bws_rank and osu_username, and deletes rows in
// delete mode. badges, is_banned, is_admin and user_hash are inputs.
type TrackedUser struct {
	OsuID         int64  `gorm:"column:osu_id;primaryKey" json:"osu_id"`
	OsuUsername   string `gorm:"column:osu_username" json:"osu_username"`
	DiscordTag    string `gorm:"column:discord_tag" json:"discord_tag"`
	Badges        int    `gorm:"column:badges" json:"badges"`
	OsuGlobalRank int    `gorm:"column:osu_global_rank" json:"osu_global_rank"`
	BwsRank       int    `gorm:"column:bws_rank" json:"bws_rank"`
	IsBanned      bool   `gorm:"column:is_banned" json:"is_banned"`
	IsAdmin       bool   `gorm:"column:is_admin" json:"-"`
	UserHash      string `gorm:"column:user_hash" json:"-"`
}

// TableName overrides the default pluralization. The column layout is fixed
// by the registration system's schema.
func (TrackedUser) TableName() string {
	return "users"
}

// Unranked is the osu_global_rank sentinel for players with no current rank.
// The upstream API reports these as a null global_rank.
const Unranked = 0

// PassSummary describes one completed (or aborted) reconciliation pass.
type PassSummary struct {
	// PassID uniquely identifies the pass across logs and archived reports.
	PassID string `json:"pass_id"`
	// Mode is the moderation mode the pass ran under (ban, delete).
	Mode string `json:"mode"`
	// Total is the number of tracked users the pass loaded.
	Total int `json:"total"`
	// Updated is the number of rows written with fresh rank data.
	Updated int `json:"updated"`
	// Missing is the number of users whose upstream record has vanished.
	Missing int `json:"missing"`
	// Failed is the number of per-user failures tolerated under the
	// continue-on-error policy. Always 0 under fail-fast.
	Failed int `json:"failed"`
	// StartedAt is the wall-clock start of the pass.
	StartedAt time.Time `json:"started_at"`
	// Elapsed is the total pass duration.
	Elapsed time.Duration `json:"elapsed"`
}

// ElapsedSeconds returns the pass duration in seconds, the unit used in
// logs and archived reports.
func (s *PassSummary) ElapsedSeconds() float64 {
	return s.Elapsed.Seconds()
}
