// Package theme resolves and persists the light/dark display preference.
// An explicit user choice is persisted and wins; otherwise the controller
// tracks the operating system's color-scheme signal live.
package theme

import (
	"sync"

	"go.uber.org/zap"

	"github.com/yourorg/bragboard-client/internal/localstate"
)

// Mode is a display mode.
type Mode string

const (
	ModeLight Mode = "light"
	ModeDark  Mode = "dark"
)

// SignalSource reports the OS-level color-scheme preference and change
// events. Subscribe returns a cancel function that detaches the listener.
type SignalSource interface {
	Current() Mode
	Subscribe(fn func(Mode)) (cancel func())
}

// Applier propagates the active mode to the presentation layer.
type Applier interface {
	Apply(Mode)
}

// ApplierFunc adapts a function to the Applier interface.
type ApplierFunc func(Mode)

func (f ApplierFunc) Apply(m Mode) { f(m) }

// Controller owns the active display mode. Persistence failures are
// swallowed: the controller then degrades to in-memory preference tracking
// for the rest of its lifetime.
type Controller struct {
	store   localstate.Store
	signal  SignalSource
	applier Applier
	logger  *zap.Logger

	mu       sync.Mutex
	active   Mode
	applied  Mode
	explicit bool
	cancel   func()
}

// NewController resolves the initial mode (persisted preference, else OS
// signal, else light), applies it, and subscribes to OS signal changes for
// the controller's lifetime.
func NewController(store localstate.Store, signal SignalSource, applier Applier, logger *zap.Logger) *Controller {
	c := &Controller{
		store:   store,
		signal:  signal,
		applier: applier,
		logger:  logger,
	}

	if v, ok := store.Get(localstate.KeyTheme); ok && (Mode(v) == ModeLight || Mode(v) == ModeDark) {
		c.active = Mode(v)
		c.explicit = true
	} else if m := signal.Current(); m == ModeLight || m == ModeDark {
		c.active = m
	} else {
		c.active = ModeLight
	}
	c.apply(c.active)

	c.cancel = signal.Subscribe(c.onSignal)
	return c
}

// Active returns the currently applied mode.
func (c *Controller) Active() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// Explicit reports whether an explicit user preference is in effect.
func (c *Controller) Explicit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.explicit
}

// Toggle flips the active mode, applies it, and persists it as an explicit
// preference.
func (c *Controller) Toggle() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active == ModeDark {
		c.active = ModeLight
	} else {
		c.active = ModeDark
	}
	c.explicit = true
	c.apply(c.active)

	if err := c.store.Set(localstate.KeyTheme, string(c.active)); err != nil {
		c.logger.Warn("failed to persist theme preference", zap.Error(err))
	}
	return c.active
}

// ResetToSystem clears the explicit preference and re-applies the current OS
// signal value.
func (c *Controller) ResetToSystem() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.Delete(localstate.KeyTheme); err != nil {
		c.logger.Warn("failed to clear theme preference", zap.Error(err))
	}
	c.explicit = false

	if m := c.signal.Current(); m == ModeLight || m == ModeDark {
		c.active = m
	}
	c.apply(c.active)
	return c.active
}

// Close detaches the OS signal listener.
func (c *Controller) Close() {
	c.mu.Lock()
	cancel := c.cancel
	c.cancel = nil
	c.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (c *Controller) onSignal(m Mode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.explicit {
		return
	}
	if m != ModeLight && m != ModeDark {
		return
	}
	c.active = m
	c.apply(m)
}

// apply forwards the mode to the presentation layer. Re-applying the mode
// that is already active must not re-trigger a transition.
func (c *Controller) apply(m Mode) {
	if m == c.applied {
		return
	}
	c.applied = m
	c.applier.Apply(m)
}
