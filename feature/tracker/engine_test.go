package tracker

import (
	"context"
	"errors"
	"testing"

	"rank-tracker/core/database"
	"rank-tracker/feature/tracker/models"
	"rank-tracker/feature/tracker/osu"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// fakeSource serves canned outcomes per osu id and records lookup order.
type fakeSource struct {
	outcomes map[int64]osu.Outcome
	errs     map[int64]error
	lookups  []int64
}

func (f *fakeSource) LookupUser(ctx context.Context, osuID int64) (osu.Outcome, error) {
	f.lookups = append(f.lookups, osuID)
	if err, ok := f.errs[osuID]; ok {
		return osu.Outcome{}, err
	}
	return f.outcomes[osuID], nil
}

// fakeBanAPI records ban calls.
type fakeBanAPI struct {
	calls []banCall
	err   error
}

type banCall struct {
	osuID     int64
	adminHash string
}

func (f *fakeBanAPI) Ban(ctx context.Context, osuID int64, adminHash string) error {
	f.calls = append(f.calls, banCall{osuID, adminHash})
	return f.err
}

func setupEngineDB(t *testing.T, users ...models.TrackedUser) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)

	err = db.Exec(`CREATE TABLE users (
		osu_id INTEGER PRIMARY KEY,
		osu_username TEXT,
		discord_tag TEXT,
		badges INTEGER DEFAULT 0,
		osu_global_rank INTEGER DEFAULT 0,
		bws_rank INTEGER DEFAULT 0,
		is_banned INTEGER DEFAULT 0,
		is_admin INTEGER DEFAULT 0,
		user_hash TEXT DEFAULT ''
	)`).Error
	require.NoError(t, err)

	for _, u := range users {
		require.NoError(t, db.Create(&u).Error)
	}
	return db
}

func TestRunPass_UpdatesFoundUsers(t *testing.T) {
	db := setupEngineDB(t,
		models.TrackedUser{OsuID: 1, OsuUsername: "old_name", Badges: 2},
	)
	store := NewStore(db)
	source := &fakeSource{outcomes: map[int64]osu.Outcome{
		1: {Found: true, Username: "new_name", GlobalRank: 1000},
	}}

	engine := NewEngine(store, source, NewDeleteSink(store, zap.NewNop()), zap.NewNop(), false)
	summary, err := engine.RunPass(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Total)
	assert.Equal(t, 1, summary.Updated)
	assert.Equal(t, 0, summary.Missing)

	var user models.TrackedUser
	require.NoError(t, db.First(&user, "osu_id = ?", 1).Error)
	assert.Equal(t, 1000, user.OsuGlobalRank)
	assert.Equal(t, 842, user.BwsRank) // 1000 ^ (0.9937 ^ 4)
	assert.Equal(t, "new_name", user.OsuUsername)
}

func TestRunPass_NullRankYieldsZeroScore(t *testing.T) {
	db := setupEngineDB(t,
		models.TrackedUser{OsuID: 1, OsuUsername: "idle", Badges: 3, OsuGlobalRank: 500, BwsRank: 400},
	)
	store := NewStore(db)
	// Normalized unranked outcome from the source
	source := &fakeSource{outcomes: map[int64]osu.Outcome{
		1: {Found: true, Username: "idle", GlobalRank: models.Unranked},
	}}

	engine := NewEngine(store, source, NewDeleteSink(store, zap.NewNop()), zap.NewNop(), false)
	_, err := engine.RunPass(context.Background())
	require.NoError(t, err)

	var user models.TrackedUser
	require.NoError(t, db.First(&user, "osu_id = ?", 1).Error)
	assert.Equal(t, 0, user.OsuGlobalRank)
	assert.Equal(t, 0, user.BwsRank)
}

func TestRunPass_DeleteSink_RemovesVanishedUser(t *testing.T) {
	db := setupEngineDB(t,
		models.TrackedUser{OsuID: 1, OsuUsername: "keeper", Badges: 0},
		models.TrackedUser{OsuID: 2, OsuUsername: "vanished", Badges: 1},
	)
	store := NewStore(db)
	source := &fakeSource{outcomes: map[int64]osu.Outcome{
		1: {Found: true, Username: "keeper", GlobalRank: 10},
		2: {Found: false},
	}}

	engine := NewEngine(store, source, NewDeleteSink(store, zap.NewNop()), zap.NewNop(), false)
	summary, err := engine.RunPass(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 1, summary.Updated)
	assert.Equal(t, 1, summary.Missing)

	var count int64
	require.NoError(t, db.Model(&models.TrackedUser{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// The surviving row is intact
	var user models.TrackedUser
	require.NoError(t, db.First(&user, "osu_id = ?", 1).Error)
	assert.Equal(t, 10, user.OsuGlobalRank)
}

func TestRunPass_BanSink_BansOnceWithAdminHash(t *testing.T) {
	db := setupEngineDB(t,
		models.TrackedUser{OsuID: 1, OsuUsername: "vanished", Badges: 1},
		models.TrackedUser{OsuID: 900, OsuUsername: "staff", IsAdmin: true, UserHash: "admin-hash"},
	)
	store := NewStore(db)
	source := &fakeSource{outcomes: map[int64]osu.Outcome{
		1:   {Found: false},
		900: {Found: true, Username: "staff", GlobalRank: 1},
	}}
	api := &fakeBanAPI{}

	engine := NewEngine(store, source, NewBanSink(api, zap.NewNop()), zap.NewNop(), false)
	summary, err := engine.RunPass(context.Background())
	require.NoError(t, err)

	require.Len(t, api.calls, 1)
	assert.Equal(t, int64(1), api.calls[0].osuID)
	assert.Equal(t, "admin-hash", api.calls[0].adminHash)
	assert.Equal(t, 1, summary.Missing)

	// Ban mode never deletes and never flags the row itself
	var user models.TrackedUser
	require.NoError(t, db.First(&user, "osu_id = ?", 1).Error)
	assert.False(t, user.IsBanned)
}

func TestRunPass_BanSink_SkipsAlreadyBanned(t *testing.T) {
	db := setupEngineDB(t,
		models.TrackedUser{OsuID: 1, OsuUsername: "gone", IsBanned: true},
		models.TrackedUser{OsuID: 900, OsuUsername: "staff", IsAdmin: true, UserHash: "admin-hash"},
	)
	store := NewStore(db)
	source := &fakeSource{outcomes: map[int64]osu.Outcome{
		1:   {Found: false},
		900: {Found: true, Username: "staff", GlobalRank: 1},
	}}
	api := &fakeBanAPI{}

	engine := NewEngine(store, source, NewBanSink(api, zap.NewNop()), zap.NewNop(), false)
	summary, err := engine.RunPass(context.Background())
	require.NoError(t, err)

	assert.Empty(t, api.calls)
	assert.Equal(t, 1, summary.Missing)
}

func TestRunPass_BanSink_MissingAdminFailsBeforeAnyFetch(t *testing.T) {
	db := setupEngineDB(t,
		models.TrackedUser{OsuID: 1, OsuUsername: "someone"},
	)
	store := NewStore(db)
	source := &fakeSource{}

	engine := NewEngine(store, source, NewBanSink(&fakeBanAPI{}, zap.NewNop()), zap.NewNop(), false)
	_, err := engine.RunPass(context.Background())
	assert.ErrorIs(t, err, ErrNoAdmin)
	assert.Empty(t, source.lookups)
}

func TestRunPass_FailFastAbortsRemainingUsers(t *testing.T) {
	db := setupEngineDB(t,
		models.TrackedUser{OsuID: 1, OsuUsername: "first"},
		models.TrackedUser{OsuID: 2, OsuUsername: "second"},
		models.TrackedUser{OsuID: 3, OsuUsername: "third"},
	)
	store := NewStore(db)
	source := &fakeSource{
		outcomes: map[int64]osu.Outcome{
			1: {Found: true, Username: "first", GlobalRank: 100},
			3: {Found: true, Username: "third", GlobalRank: 300},
		},
		errs: map[int64]error{2: errors.New("connection reset")},
	}

	engine := NewEngine(store, source, NewDeleteSink(store, zap.NewNop()), zap.NewNop(), false)
	summary, err := engine.RunPass(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user 2")

	// User 1 was updated, users 2 and 3 were not
	assert.Equal(t, 1, summary.Updated)
	var third models.TrackedUser
	require.NoError(t, db.First(&third, "osu_id = ?", 3).Error)
	assert.Equal(t, 0, third.OsuGlobalRank)
	assert.NotContains(t, source.lookups, int64(3))
}

func TestRunPass_ContinueOnErrorCountsFailures(t *testing.T) {
	db := setupEngineDB(t,
		models.TrackedUser{OsuID: 1, OsuUsername: "first"},
		models.TrackedUser{OsuID: 2, OsuUsername: "second"},
		models.TrackedUser{OsuID: 3, OsuUsername: "third"},
	)
	store := NewStore(db)
	source := &fakeSource{
		outcomes: map[int64]osu.Outcome{
			1: {Found: true, Username: "first", GlobalRank: 100},
			3: {Found: true, Username: "third", GlobalRank: 300},
		},
		errs: map[int64]error{2: errors.New("connection reset")},
	}

	engine := NewEngine(store, source, NewDeleteSink(store, zap.NewNop()), zap.NewNop(), true)
	summary, err := engine.RunPass(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Updated)
	assert.Equal(t, 1, summary.Failed)
	assert.Contains(t, source.lookups, int64(3))
}

func TestRunPass_SummaryCarriesIdentity(t *testing.T) {
	db := setupEngineDB(t)
	store := NewStore(db)

	engine := NewEngine(store, &fakeSource{}, NewDeleteSink(store, zap.NewNop()), zap.NewNop(), false)
	summary, err := engine.RunPass(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, summary.PassID)
	assert.Equal(t, "delete", summary.Mode)
	assert.Equal(t, 0, summary.Total)
	assert.False(t, summary.StartedAt.IsZero())
}
