// Package loop drives the iron core's Tick at a steady rate and lets the
// tick interval be reconfigured live over the bus, the way the bus-based
// services elsewhere in this tree pick up their settings.
package loop

import (
	"context"
	"time"

	"ironcore-go/bus"
	"ironcore-go/ironcore"
)

var topicConfigLoop = bus.Topic{"config", "tick_interval_ms"}

const defaultInterval = 10 * time.Millisecond

// Service ticks an *ironcore.Iron on a timer, translating wall-clock time
// into the millisecond counter Tick expects.
type Service struct {
	ir    *ironcore.Iron
	epoch time.Time
}

func New(ir *ironcore.Iron) *Service {
	return &Service{ir: ir, epoch: time.Now()}
}

func (s *Service) now() ironcore.Millis {
	return ironcore.Millis(time.Since(s.epoch).Milliseconds())
}

func (s *Service) serviceLoop(ctx context.Context, conn *bus.Connection) {
	cfgSub := conn.Subscribe(topicConfigLoop)
	defer conn.Unsubscribe(cfgSub)

	tick := time.NewTicker(defaultInterval)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			s.ir.Tick(s.now())
		case msg := <-cfgSub.Channel():
			if ms, ok := toMillisecondInterval(msg.Payload); ok && ms > 0 {
				tick.Reset(time.Duration(ms) * time.Millisecond)
			}
		}
	}
}

func toMillisecondInterval(payload any) (int64, bool) {
	switch v := payload.(type) {
	case float64:
		return int64(v), true
	case int:
		return int64(v), true
	case int64:
		return v, true
	default:
		return 0, false
	}
}

// Start launches the tick loop in a goroutine.
func (s *Service) Start(ctx context.Context, conn *bus.Connection) {
	go s.serviceLoop(ctx, conn)
}
