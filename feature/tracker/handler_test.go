package tracker

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"rank-tracker/feature/tracker/models"
	"rank-tracker/feature/tracker/osu"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T, source RankSource, users ...models.TrackedUser) (*fiber.App, *Service) {
	t.Helper()
	app := fiber.New()
	svc, _ := newTestService(t, source, users...)
	handler := NewHandler(svc, zap.NewNop())
	handler.RegisterRoutes(app)
	return app, svc
}

func TestHandleStatus_NoPassYet(t *testing.T) {
	app, _ := setupTestApp(t, &fakeSource{})

	resp, err := app.Test(httptest.NewRequest("GET", "/tracker/status", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestHandleStatus_AfterPass(t *testing.T) {
	source := &fakeSource{outcomes: map[int64]osu.Outcome{
		1: {Found: true, Username: "alpha", GlobalRank: 100},
	}}
	app, svc := setupTestApp(t, source, models.TrackedUser{OsuID: 1, OsuUsername: "alpha"})

	_, err := svc.RunPass(context.Background())
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest("GET", "/tracker/status", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, false, body["running"])
	assert.NotNil(t, body["last_pass"])
	assert.NotContains(t, body, "last_error")
}

func TestHandleSync_RunsAPass(t *testing.T) {
	source := &fakeSource{outcomes: map[int64]osu.Outcome{
		1: {Found: true, Username: "alpha", GlobalRank: 100},
	}}
	app, _ := setupTestApp(t, source, models.TrackedUser{OsuID: 1, OsuUsername: "alpha"})

	resp, err := app.Test(httptest.NewRequest("POST", "/tracker/sync", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var summary models.PassSummary
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&summary))
	assert.Equal(t, 1, summary.Updated)
}

func TestHandleSync_FailedPassReturns500(t *testing.T) {
	source := &fakeSource{errs: map[int64]error{1: assert.AnError}}
	app, _ := setupTestApp(t, source, models.TrackedUser{OsuID: 1, OsuUsername: "alpha"})

	resp, err := app.Test(httptest.NewRequest("POST", "/tracker/sync", nil))
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)
}

func TestHandleListUsers(t *testing.T) {
	app, _ := setupTestApp(t, &fakeSource{},
		models.TrackedUser{OsuID: 1, OsuUsername: "alpha"},
		models.TrackedUser{OsuID: 2, OsuUsername: "beta"},
	)

	resp, err := app.Test(httptest.NewRequest("GET", "/tracker/users", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var users []models.TrackedUser
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&users))
	assert.Len(t, users, 2)
}

func TestHandleGetUser(t *testing.T) {
	app, _ := setupTestApp(t, &fakeSource{},
		models.TrackedUser{OsuID: 1, OsuUsername: "alpha", Badges: 2},
	)

	t.Run("Found", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/tracker/users/1", nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var user models.TrackedUser
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&user))
		assert.Equal(t, "alpha", user.OsuUsername)
	})

	t.Run("Not Tracked", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/tracker/users/999", nil))
		require.NoError(t, err)
		assert.Equal(t, 404, resp.StatusCode)
	})

	t.Run("Bad ID", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/tracker/users/abc", nil))
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
	})
}
