// Package diagnostics publishes iron-core events onto the bus so any
// number of observers (console, telemetry, test harnesses) can watch
// mode changes, setpoint-reached events and fatal conditions without
// coupling to the control loop itself.
package diagnostics

import (
	"ironcore-go/bus"
	"ironcore-go/errcode"
	"ironcore-go/ironcore"
)

var (
	topicMode     = bus.T("iron", "mode", "event", "changed")
	topicReached  = bus.T("iron", "temp", "event", "reached")
	topicFatal    = bus.T("iron", "fault", "event", "raised")
	topicPresence = bus.T("iron", "presence", "event", "changed")
)

// Service wires an *ironcore.Iron's callback registry to bus publications.
type Service struct {
	conn *bus.Connection
}

func New(conn *bus.Connection) *Service {
	return &Service{conn: conn}
}

// Attach registers the diagnostic callbacks on ir. Call once at startup,
// before the control loop starts ticking.
func (s *Service) Attach(ir *ironcore.Iron) error {
	if err := ir.AddModeChangedCallback(s.onModeChanged); err != nil {
		return err
	}
	if err := ir.AddSetpointReachedCallback(s.onSetpointReached); err != nil {
		return err
	}
	return nil
}

func (s *Service) onModeChanged(m ironcore.Mode) {
	s.conn.Publish(s.conn.NewMessage(topicMode, m.String(), true))
}

func (s *Service) onSetpointReached(temp uint16) {
	s.conn.Publish(s.conn.NewMessage(topicReached, int(temp), false))
}

// PublishPresence reports a presence transition. The control loop has no
// presence-changed callback of its own (unlike mode/setpoint), so a caller
// that watches ir.GetIronPresence() publishes transitions through this
// method; neither services/loop nor cmd/ironctl calls it.
func (s *Service) PublishPresence(present bool) {
	s.conn.Publish(s.conn.NewMessage(topicPresence, present, true))
}

// FatalHandler adapts a bus connection to ironcore.FatalHandler, publishing
// the code before the caller halts control.
type FatalHandler struct {
	conn *bus.Connection
}

func NewFatalHandler(conn *bus.Connection) *FatalHandler { return &FatalHandler{conn: conn} }

func (h *FatalHandler) Fatal(code errcode.Code) {
	h.conn.Publish(h.conn.NewMessage(topicFatal, string(code), true))
}
