package tracker

import (
	"context"
	"errors"
	"fmt"

	"rank-tracker/feature/tracker/models"

	"gorm.io/gorm"
)

// ErrNoAdmin is returned when the ban sink needs an admin credential but
// no row is flagged is_admin.
var ErrNoAdmin = errors.New("no admin user found")

// UserStore abstracts the persisted users table.
type UserStore interface {
	// ListAll returns every tracked user, in whatever order the store
	// yields them.
	ListAll(ctx context.Context) ([]models.TrackedUser, error)
	// Get returns a single tracked user by osu id, or gorm.ErrRecordNotFound.
	Get(ctx context.Context, osuID int64) (*models.TrackedUser, error)
	// GetAdmin returns the admin row, or ErrNoAdmin if none is flagged.
	GetAdmin(ctx context.Context) (*models.TrackedUser, error)
	// UpdateRank writes the fields a successful pass refreshes.
	UpdateRank(ctx context.Context, osuID int64, globalRank, bwsRank int, username string) error
	// Delete removes a tracked user's row.
	Delete(ctx context.Context, osuID int64) error
}

// NewStore creates a gorm-backed UserStore.
func NewStore(db *gorm.DB) UserStore {
	return &gormStore{db: db}
}

type gormStore struct {
	db *gorm.DB
}

func (s *gormStore) ListAll(ctx context.Context) ([]models.TrackedUser, error) {
	var users []models.TrackedUser
	if err := s.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list tracked users: %w", err)
	}
	return users, nil
}

func (s *gormStore) Get(ctx context.Context, osuID int64) (*models.TrackedUser, error) {
	var user models.TrackedUser
	if err := s.db.WithContext(ctx).First(&user, "osu_id = ?", osuID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetAdmin takes the first flagged row. The schema promises at most one;
// if several exist anyway, first-wins beats failing every pass.
func (s *gormStore) GetAdmin(ctx context.Context) (*models.TrackedUser, error) {
	var admin models.TrackedUser
	err := s.db.WithContext(ctx).First(&admin, "is_admin = ?", true).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoAdmin
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load admin user: %w", err)
	}
	return &admin, nil
}

func (s *gormStore) UpdateRank(ctx context.Context, osuID int64, globalRank, bwsRank int, username string) error {
	err := s.db.WithContext(ctx).
		Model(&models.TrackedUser{}).
		Where("osu_id = ?", osuID).
		Updates(map[string]any{
			"osu_global_rank": globalRank,
			"bws_rank":        bwsRank,
			"osu_username":    username,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update user %d: %w", osuID, err)
	}
	return nil
}

func (s *gormStore) Delete(ctx context.Context, osuID int64) error {
	err := s.db.WithContext(ctx).
		Where("osu_id = ?", osuID).
		Delete(&models.TrackedUser{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete user %d: %w", osuID, err)
	}
	return nil
}
