package ironcore

import "ironcore-go/x/mathx"

func round10(v uint16) uint16 { return mathx.Round10(v) }

// Iron is the process-wide controller instance. There is exactly one per
// running system (one iron); callers hold a pointer and drive it via Tick.
type Iron struct {
	collab   Collaborators
	profile  *Profile
	settings *SystemSettings
	callbacks CallbackRegistry

	st state
}

// New constructs a controller bound to profile/settings (owned by the
// caller, mutated by an external UI) and the given collaborators, then
// programs the hardware timers and sets the initial mode. It mirrors
// ironInit: after it returns, the PWM/ADC pair is already running in the
// background and the first Tick can be driven immediately.
func New(profile *Profile, settings *SystemSettings, collab Collaborators) *Iron {
	ir := &Iron{
		collab:   collab,
		profile:  profile,
		settings: settings,
	}
	ir.st.presence = Present // assume present at boot so no ERROR screen flashes
	ir.initTimers()
	ir.setCurrentMode(settings.InitMode, true, 0)
	return ir
}

// GetCurrentMode returns the iron's current operating mode.
func (ir *Iron) GetCurrentMode() Mode { return ir.st.currentMode }

// GetCurrentPower returns the last computed power percentage, in
// [-99, 100]; -99 is the PWM-failure sentinel.
func (ir *Iron) GetCurrentPower() int8 { return ir.st.currentPowerPercent }

// GetIronPresence reports whether a tip is currently attached.
func (ir *Iron) GetIronPresence() bool { return ir.st.presence == Present }

// GetFailState reports whether the controller is latched into failure.
func (ir *Iron) GetFailState() bool { return ir.st.failState == FailOn }

// SetFailState sets (or clears) the failure latch. Setting it on forces
// the PWM output low immediately, independent of the next tick.
func (ir *Iron) SetFailState(on bool) {
	if on {
		ir.st.failState = FailOn
		ir.st.pwmOut = 0
		ir.collab.PWM.SetCompare(0)
	} else {
		ir.st.failState = FailOff
	}
}

// SetCalibrating toggles calibration mode, which suppresses the sleep
// timeout and the settings watcher.
func (ir *Iron) SetCalibrating(on bool) { ir.st.calibrating = on }

// GetSetTemperature returns the active setpoint in the current unit.
func (ir *Iron) GetSetTemperature() uint16 { return ir.st.currentSetpoint }

// SetSetTemperature updates the user setpoint. A change is only applied
// (resetting the reached-band flag) when the requested temperature or the
// active profile actually differs from last time, matching the source's
// profile-change detection.
func (ir *Iron) SetSetTemperature(now Millis, temperature uint16) {
	if ir.profile.UserSetpoint != temperature || ir.st.lastAppliedProfile != ir.settings.CurrentProfile {
		ir.st.lastAppliedProfile = ir.settings.CurrentProfile
		ir.profile.UserSetpoint = temperature
		ir.st.currentSetpoint = temperature
		ir.st.calReachedFlag = false
	}
}

// SetDebugMode toggles debug mode; when on, PID is driven from the debug
// setpoint instead of the profile setpoint.
func (ir *Iron) SetDebugMode(on bool) {
	if on {
		ir.st.debugMode = DebugOn
	} else {
		ir.st.debugMode = DebugOff
	}
}

// SetDebugTemp sets the debug-mode setpoint.
func (ir *Iron) SetDebugTemp(value uint16) { ir.st.debugSetpoint = value }

// SetNoIronValue updates the raw-ADC presence threshold.
func (ir *Iron) SetNoIronValue(v uint16) { ir.profile.NoIronValue = v }

// SetSystemTempUnit changes the active temperature unit for both the
// system settings and the profile, re-expressing the user setpoint in the
// new unit (rounded to the nearest 10, R1) and reloading the active
// setpoint via a forced mode refresh.
func (ir *Iron) SetSystemTempUnit(now Millis, unit TempUnit) {
	if ir.settings.TempUnit != unit {
		ir.settings.TempUnit = unit
	}
	if ir.profile.TempUnit != unit {
		ir.profile.TempUnit = unit
		ir.profile.UserSetpoint = round10(ir.collab.Units.Convert(ir.profile.UserSetpoint, unit))
	}
	ir.setCurrentMode(ir.st.currentMode, true, now)
}

// AddSetpointReachedCallback registers an observer for setpoint-reached
// events. Intended for one-shot use during init.
func (ir *Iron) AddSetpointReachedCallback(fn SetpointReachedFunc) error {
	return ir.callbacks.AddSetpointReachedCallback(fn)
}

// AddModeChangedCallback registers an observer for mode-changed events.
func (ir *Iron) AddModeChangedCallback(fn ModeChangedFunc) error {
	return ir.callbacks.AddModeChangedCallback(fn)
}
