// Package ads manages interstitial state through an explicit context
// object owned by the process, with a real initialization state machine
// instead of global init flags.
package ads

import (
	"quotefeed/internal/logging"
	"quotefeed/internal/platform"
)

// InitState is the SDK lifecycle.
type InitState int

const (
	Uninitialized InitState = iota
	Initializing
	Ready
	Failed
)

func (s InitState) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Initializing:
		return "initializing"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Context owns interstitial timing against the platform services. One
// Context per process, passed to whichever component needs it.
type Context struct {
	services platform.Services
	state    InitState
	preload  bool // a preload request is outstanding
}

// NewContext creates an uninitialized ad context over the given services.
func NewContext(services platform.Services) *Context {
	return &Context{services: services}
}

// State returns the current initialization state.
func (c *Context) State() InitState { return c.state }

// Init drives Uninitialized→Initializing→Ready|Failed. With no services
// backend the context lands in Failed and every later call is a no-op;
// the feed renders its slots either way.
func (c *Context) Init() {
	if c.state != Uninitialized {
		return
	}
	c.state = Initializing

	if c.services == nil {
		c.state = Failed
		logging.Warn("ad context init failed", "reason", "no platform services")
		return
	}
	c.state = Ready
	logging.Info("ad context ready")
}

// Preload asks the host to start loading the next interstitial. Repeated
// calls while one request is outstanding are collapsed.
func (c *Context) Preload() {
	if c.state != Ready || c.preload {
		return
	}
	c.preload = true
	c.services.PreloadInterstitial()
}

// ShowIfReady requests an interstitial for the slot the viewer just
// reached. Returns whether the host showed one. Showing consumes the
// outstanding preload.
func (c *Context) ShowIfReady() bool {
	if c.state != Ready {
		return false
	}
	c.preload = false
	return c.services.ShowInterstitial()
}
