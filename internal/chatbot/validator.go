package chatbot

import (
	"crypto/subtle"
	"log/slog"
	"strings"
)

// TokenValidator matches a presented credential against the configured
// bots. It is immutable after construction.
type TokenValidator struct {
	bots []Bot
	log  *slog.Logger
}

// NewTokenValidator copies bots, keeping their configuration order.
func NewTokenValidator(bots []Bot, logger *slog.Logger) *TokenValidator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &TokenValidator{
		bots: append([]Bot(nil), bots...),
		log:  logger,
	}
}

// Validate returns the first enabled bot whose credential equals
// credential exactly. An empty credential never validates.
func (v *TokenValidator) Validate(credential string) (*Bot, bool) {
	if credential == "" {
		v.log.Debug("credential absent")
		return nil, false
	}
	for i := range v.bots {
		b := &v.bots[i]
		if !b.Enabled || b.Credential == "" {
			continue
		}
		if subtle.ConstantTimeCompare([]byte(b.Credential), []byte(credential)) == 1 {
			v.log.Debug("credential matched", "bot", b.Name)
			return b, true
		}
	}
	v.log.Debug("credential matched no enabled bot")
	return nil, false
}

// Bots returns a copy of the configured bots.
func (v *TokenValidator) Bots() []Bot {
	return append([]Bot(nil), v.bots...)
}

// Lookup returns the enabled bot with the given name.
func (v *TokenValidator) Lookup(name string) (*Bot, bool) {
	for i := range v.bots {
		if v.bots[i].Name == name && v.bots[i].Enabled {
			return &v.bots[i], true
		}
	}
	return nil, false
}

// MarkerValidator accepts any value containing a fixed marker substring,
// e.g. a User-Agent that must mention the calling platform.
type MarkerValidator struct {
	marker string
	log    *slog.Logger
}

// NewMarkerValidator creates a validator for marker.
func NewMarkerValidator(marker string, logger *slog.Logger) *MarkerValidator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &MarkerValidator{marker: marker, log: logger}
}

// Validate reports whether value is non-empty and contains the marker.
func (v *MarkerValidator) Validate(value string) bool {
	if value == "" {
		v.log.Debug("marker value absent", "marker", v.marker)
		return false
	}
	if !strings.Contains(value, v.marker) {
		v.log.Debug("marker not found", "marker", v.marker, "value", value)
		return false
	}
	return true
}

// Marker returns the substring the validator looks for.
func (v *MarkerValidator) Marker() string { return v.marker }
