// Package config publishes one of the iron core's built-in tip profiles as
// retained bus messages at boot, one message per profile field, so a
// console or UI can read the active profile without a direct reference to
// the running *ironcore.Iron. System settings are not published.
package config

import (
	"context"
	"errors"

	"github.com/andreyvit/tinyjson"

	"ironcore-go/bus"
)

const (
	serviceName  = "config"
	configPrefix = "config"
	// CtxProfileKey selects which embedded tip profile to publish.
	CtxProfileKey = "profile"
)

// EmbeddedProfileLookup allows overriding how profile presets are
// resolved; tests substitute this to avoid depending on the baked-in set.
var EmbeddedProfileLookup = func(profile string) ([]byte, bool) {
	b, ok := embeddedProfiles[profile]
	return b, ok
}

// Service publishes one profile preset's fields as retained messages
// under config/<field>.
type Service struct {
	Name string
}

func NewConfigService() *Service {
	return &Service{Name: serviceName}
}

// publishProfile reads the named profile from embedded data and publishes
// each top-level field as its own retained message.
func (s *Service) publishProfile(ctx context.Context, conn *bus.Connection) error {
	profile, _ := ctx.Value(CtxProfileKey).(string)
	if profile == "" {
		return errors.New("missing profile ID in context")
	}

	raw, ok := EmbeddedProfileLookup(profile)
	if !ok || len(raw) == 0 {
		return errors.New("no embedded profile for: " + profile)
	}

	r := tinyjson.Raw(raw)
	val := r.Value() // should be a map[string]any
	r.EnsureEOF()

	m, ok := val.(map[string]any)
	if !ok {
		return errors.New("embedded profile is not a JSON object")
	}

	for k, v := range m {
		msg := &bus.Message{
			Topic:    bus.T(configPrefix, k),
			Payload:  v,
			Retained: true,
		}
		conn.Publish(msg)
	}

	return nil
}

// Start launches the profile publisher in a goroutine.
func (s *Service) Start(ctx context.Context, conn *bus.Connection) {
	go func() {
		_ = s.publishProfile(ctx, conn) // replace with logging if needed
	}()
}
