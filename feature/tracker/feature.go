package tracker

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature wires the tracker's HTTP surface into the loader.
type Feature struct {
	service *Service
	logger  *zap.Logger
}

// NewFeature creates the tracker feature around an existing service.
func NewFeature(service *Service, l *zap.Logger) *Feature {
	return &Feature{service: service, logger: l}
}

// Name returns the feature identifier.
func (f *Feature) Name() string {
	return "tracker"
}

// IsEnabled reports whether the feature can be served.
func (f *Feature) IsEnabled() bool {
	return f.service != nil
}

// Load registers the tracker routes.
func (f *Feature) Load(app fiber.Router) error {
	handler := NewHandler(f.service, f.logger)
	handler.RegisterRoutes(app)
	return nil
}
