package tracker

import (
	"context"
	"errors"
	"sync"

	"rank-tracker/feature/tracker/models"

	"go.uber.org/zap"
)

// ErrPassInProgress is returned when a pass is requested while another is
// still running. Passes never overlap: the upstream rate limit and the
// single store connection both assume serial execution.
var ErrPassInProgress = errors.New("a reconciliation pass is already running")

// Service drives the engine: it serializes passes, remembers the last
// summary for the status endpoint, and archives reports when configured.
type Service struct {
	engine   *Engine
	store    UserStore
	archiver *Archiver // nil when archiving is disabled
	logger   *zap.Logger

	mu      sync.Mutex
	running bool
	last    *models.PassSummary
	lastErr error
}

// NewService creates the tracker service. archiver may be nil.
func NewService(engine *Engine, store UserStore, archiver *Archiver, logger *zap.Logger) *Service {
	return &Service{
		engine:   engine,
		store:    store,
		archiver: archiver,
		logger:   logger,
	}
}

// RunPass executes one reconciliation pass unless one is already running.
// The summary (possibly partial) is recorded either way; the pass error is
// returned as-is so schedulers can decide what to do with it.
func (s *Service) RunPass(ctx context.Context) (*models.PassSummary, error) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil, ErrPassInProgress
	}
	s.running = true
	s.mu.Unlock()

	summary, err := s.engine.RunPass(ctx)

	s.mu.Lock()
	s.running = false
	s.last = summary
	s.lastErr = err
	s.mu.Unlock()

	if s.archiver != nil && summary != nil {
		// Best-effort: a lost report never fails the pass.
		if archiveErr := s.archiver.Archive(ctx, summary); archiveErr != nil {
			s.logger.Warn("Failed to archive pass report",
				zap.String("pass_id", summary.PassID),
				zap.Error(archiveErr),
			)
		}
	}

	return summary, err
}

// LastPass returns the most recent pass summary and its error, or nil when
// no pass has completed yet.
func (s *Service) LastPass() (*models.PassSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last, s.lastErr
}

// Running reports whether a pass is currently executing.
func (s *Service) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// ListUsers exposes the tracked users for the read-only HTTP surface.
func (s *Service) ListUsers(ctx context.Context) ([]models.TrackedUser, error) {
	return s.store.ListAll(ctx)
}

// GetUser exposes a single tracked user for the read-only HTTP surface.
func (s *Service) GetUser(ctx context.Context, osuID int64) (*models.TrackedUser, error) {
	return s.store.Get(ctx, osuID)
}
