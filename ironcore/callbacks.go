package ironcore

import "ironcore-go/errcode"

// maxCallbacks bounds each observer list. Registration happens once at
// init, so a fixed-size array removes both the allocation-failure path and
// the classic dangling-tail bug of appending to a linked list whose head
// pointer lives in a local variable.
const maxCallbacks = 8

// SetpointReachedFunc is invoked once per band entry with the setpoint
// that was reached, in the active unit.
type SetpointReachedFunc func(temperature uint16)

// ModeChangedFunc is invoked whenever the effective mode changes.
type ModeChangedFunc func(newMode Mode)

// CallbackRegistry holds the two observer lists ControlTick fires
// synchronously: setpoint-reached and mode-changed. Both dispatch paths
// guard against a nil entry — the original guarded only one of the two;
// here neither is a trap.
type CallbackRegistry struct {
	setpointReached    [maxCallbacks]SetpointReachedFunc
	setpointReachedLen int

	modeChanged    [maxCallbacks]ModeChangedFunc
	modeChangedLen int
}

// AddSetpointReachedCallback registers fn to run on every setpoint-reached
// event. Returns CallbackRegistryFull if the fixed-size slot table is
// exhausted — callers treat this as fatal, since registration only happens
// during init.
func (r *CallbackRegistry) AddSetpointReachedCallback(fn SetpointReachedFunc) error {
	if r.setpointReachedLen >= maxCallbacks {
		return errcode.CallbackRegistryFull
	}
	r.setpointReached[r.setpointReachedLen] = fn
	r.setpointReachedLen++
	return nil
}

// AddModeChangedCallback registers fn to run on every mode-changed event.
func (r *CallbackRegistry) AddModeChangedCallback(fn ModeChangedFunc) error {
	if r.modeChangedLen >= maxCallbacks {
		return errcode.CallbackRegistryFull
	}
	r.modeChanged[r.modeChangedLen] = fn
	r.modeChangedLen++
	return nil
}

func (r *CallbackRegistry) fireSetpointReached(temperature uint16) {
	for i := 0; i < r.setpointReachedLen; i++ {
		if fn := r.setpointReached[i]; fn != nil {
			fn(temperature)
		}
	}
}

func (r *CallbackRegistry) fireModeChanged(newMode Mode) {
	for i := 0; i < r.modeChangedLen; i++ {
		if fn := r.modeChanged[i]; fn != nil {
			fn(newMode)
		}
	}
}
