// Package platform abstracts device capabilities behind a capability
// interface injected into the core, so the engine's logic is testable
// without a device and portable across backends.
package platform

import (
	"encoding/base64"
	"fmt"
	"os"

	"quotefeed/internal/logging"
)

// Pulse is the strength of a haptic tap.
type Pulse int

const (
	PulseLight  Pulse = iota // toggles, switches
	PulseMedium              // favorite double-tap
)

// Services is the outward capability surface the core calls. Absence of a
// capability is a soft failure: implementations log and return, never
// block the caller.
type Services interface {
	// ShowInterstitial asks the host to render a full-screen
	// interstitial now. Returns false when none is ready.
	ShowInterstitial() bool

	// PreloadInterstitial asks the host to start loading the next
	// interstitial so it is ready when the cadence slot arrives.
	PreloadInterstitial()

	// Haptic fires a haptic pulse. Best effort.
	Haptic(p Pulse)

	// Share hands text to the host share sheet.
	Share(text string) error
}

// Terminal implements Services for a plain terminal session: the haptic
// pulse becomes a bell, sharing copies via the OSC 52 clipboard escape,
// and interstitial requests are acknowledged to the log.
type Terminal struct {
	// Out receives escape sequences. Defaults to stderr so the TUI's
	// stdout stream stays untouched.
	Out *os.File
}

// NewTerminal creates the terminal services backend.
func NewTerminal() *Terminal {
	return &Terminal{Out: os.Stderr}
}

func (t *Terminal) ShowInterstitial() bool {
	logging.Debug("interstitial slot shown")
	return true
}

func (t *Terminal) PreloadInterstitial() {
	logging.Debug("interstitial preload requested")
}

func (t *Terminal) Haptic(p Pulse) {
	// The terminal bell is the closest thing to a tap.
	fmt.Fprint(t.Out, "\a")
}

// Share copies text to the system clipboard through OSC 52, which works
// over SSH and in most modern terminals.
func (t *Terminal) Share(text string) error {
	encoded := base64.StdEncoding.EncodeToString([]byte(text))
	if _, err := fmt.Fprintf(t.Out, "\x1b]52;c;%s\x07", encoded); err != nil {
		return fmt.Errorf("share via clipboard: %w", err)
	}
	logging.Info("shared quote", "len", len(text))
	return nil
}
