package ironcore

// setCurrentMode is the mode-apply primitive. It always refreshes the mode
// timer from now (callers at construction time, before the first tick,
// pass 0), and applies mode (setpoint, beep, callbacks) only when mode
// differs from the current one or force is set.
func (ir *Iron) setCurrentMode(mode Mode, force bool, now Millis) {
	ir.st.currentModeTimer = now

	if ir.st.currentMode != mode || force {
		ir.st.currentMode = mode
		ir.st.calReachedFlag = false
		ir.collab.Buzzer.ShortBeep()

		switch mode {
		case ModeRun:
			ir.st.currentSetpoint = ir.profile.UserSetpoint
		default:
			mode = ModeSleep
			ir.st.currentMode = ModeSleep
			ir.st.currentSetpoint = 0
		}
		ir.callbacks.fireModeChanged(mode)
	}
}

// SetCurrentMode is the exported form of setCurrentMode, for direct
// operator/UI-driven mode changes (no debounce).
func (ir *Iron) SetCurrentMode(now Millis, mode Mode, force bool) {
	ir.setCurrentMode(mode, force, now)
}

// SetModeFromStand records a debounced external mode-change request (e.g.
// a cradle switch). ControlTick applies it after DebounceWindow of
// continued stability.
func (ir *Iron) SetModeFromStand(now Millis, mode Mode) {
	ir.st.changeMode = mode
	ir.st.lastModeChange = now
	ir.st.updateModePending = true
}

// IronWake processes a wake request. Waking via the handle button is a
// no-op unless settings.WakeOnButton is set; waking via the encoder also
// marks user activity (for a UI activity indicator). Either source then
// requests run without forcing, so an iron already in run only has its
// mode timer refreshed.
func (ir *Iron) IronWake(now Millis, source WakeSource) {
	if source == WakeButton {
		if !ir.settings.WakeOnButton {
			return
		}
	} else {
		ir.st.newActivity = true
		ir.st.lastActivity = now
	}
	ir.setCurrentMode(ModeRun, false, now)
}
