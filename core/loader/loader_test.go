package loader

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

type stubFeature struct {
	name    string
	enabled bool
	loadErr error
	loaded  bool
}

func (f *stubFeature) Name() string    { return f.name }
func (f *stubFeature) IsEnabled() bool { return f.enabled }
func (f *stubFeature) Load(app fiber.Router) error {
	f.loaded = true
	return f.loadErr
}

func TestManager_LoadAll(t *testing.T) {
	t.Run("Loads Enabled Skips Disabled", func(t *testing.T) {
		enabled := &stubFeature{name: "a", enabled: true}
		disabled := &stubFeature{name: "b", enabled: false}

		mgr := NewManager()
		mgr.Register(enabled)
		mgr.Register(disabled)

		err := mgr.LoadAll(fiber.New())
		assert.NoError(t, err)
		assert.True(t, enabled.loaded)
		assert.False(t, disabled.loaded)
	})

	t.Run("Stops On First Error", func(t *testing.T) {
		failing := &stubFeature{name: "bad", enabled: true, loadErr: errors.New("boom")}
		after := &stubFeature{name: "after", enabled: true}

		mgr := NewManager()
		mgr.Register(failing)
		mgr.Register(after)

		err := mgr.LoadAll(fiber.New())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "bad")
		assert.False(t, after.loaded)
	})
}
