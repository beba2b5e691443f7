package config

import (
	"context"
	"testing"
	"time"

	"ironcore-go/bus"
)

func TestConfig_PublishEmbedded_RetainedPerKey(t *testing.T) {
	// Override lookup for this test.
	oldLookup := EmbeddedProfileLookup
	EmbeddedProfileLookup = func(profile string) ([]byte, bool) {
		if profile != "t12" {
			return nil, false
		}
		return []byte(`{
			"user_setpoint": 320,
			"power_limit_w": 60,
			"temp_unit": "celsius"
		}`), true
	}
	t.Cleanup(func() { EmbeddedProfileLookup = oldLookup })

	// Arrange bus and service.
	b := bus.NewBus(16)
	conn := b.NewConnection("test-config")
	svc := NewConfigService()

	// Start publisher with profile ID in context.
	ctx := context.WithValue(context.Background(), CtxProfileKey, "t12")
	svc.Start(ctx, conn)

	// Subscribe; retained messages should arrive immediately.
	sub := conn.Subscribe(bus.Topic{configPrefix, "#"})

	type gotMsg struct {
		key string
		val any
	}

	wantCount := 3 // user_setpoint, power_limit_w, temp_unit
	got := map[string]gotMsg{}

	deadline := time.Now().Add(600 * time.Millisecond)
	for len(got) < wantCount && time.Now().Before(deadline) {
		select {
		case m := <-sub.Channel():
			if m.Topic.Len() < 2 {
				t.Fatalf("unexpected topic length: %#v", m.Topic)
			}
			prefix, ok := m.Topic.At(0).(string)
			if !ok {
				t.Fatalf("topic[0] type %T, want string", m.Topic.At(0))
			}
			if prefix != configPrefix {
				t.Fatalf("unexpected prefix: %q", prefix)
			}
			key, ok := m.Topic.At(1).(string)
			if !ok {
				t.Fatalf("topic[1] type %T, want string", m.Topic.At(1))
			}
			got[key] = gotMsg{key: key, val: m.Payload}
		case <-time.After(10 * time.Millisecond):
		}
	}
	if len(got) != wantCount {
		t.Fatalf("expected %d retained messages, got %d (%v)", wantCount, len(got), got)
	}

	if v, ok := got["user_setpoint"]; !ok {
		t.Fatal("missing 'user_setpoint' message")
	} else if f, ok := v.val.(float64); !ok || f != 320 {
		t.Fatalf("user_setpoint payload = %#v, want 320", v.val)
	}
	if v, ok := got["temp_unit"]; !ok {
		t.Fatal("missing 'temp_unit' message")
	} else if s, ok := v.val.(string); !ok || s != "celsius" {
		t.Fatalf("temp_unit payload = %#v, want \"celsius\"", v.val)
	}
}

func TestConfig_PublishProfile_MissingProfile(t *testing.T) {
	b := bus.NewBus(4)
	conn := b.NewConnection("test-missing-profile")
	svc := NewConfigService()

	// No profile ID in context.
	if err := svc.publishProfile(context.Background(), conn); err == nil {
		t.Fatal("expected error for missing profile ID, got nil")
	}
}

func TestConfig_PublishProfile_NotFound(t *testing.T) {
	oldLookup := EmbeddedProfileLookup
	EmbeddedProfileLookup = func(profile string) ([]byte, bool) { return nil, false }
	t.Cleanup(func() { EmbeddedProfileLookup = oldLookup })

	b := bus.NewBus(4)
	conn := b.NewConnection("test-no-profile")
	svc := NewConfigService()

	ctx := context.WithValue(context.Background(), CtxProfileKey, "unknown")
	if err := svc.publishProfile(ctx, conn); err == nil {
		t.Fatal("expected error for missing embedded profile, got nil")
	}
}
