package ironcore

import "ironcore-go/x/timex"

// safePWMPeriod and safePWMDelay are used when the profile hasn't been
// loaded yet (current_profile = None) so the timers still come up in a
// sane state.
const (
	safePWMDelay  = 1999
	safePWMPeriod = 19999
)

// initTimers programs the PWM and delay timers off a shared 10us base
// tick and computes pwmLimit, the ADC-window duty ceiling.
func (ir *Iron) initTimers() {
	delay := uint16(safePWMDelay)
	period := uint16(safePWMPeriod)
	if ir.settings.CurrentProfile != ProfileNone {
		delay = ir.profile.PWMDelay
		period = ir.profile.PWMPeriod
	}

	ir.collab.Delay.SetAutoReload(delay)
	ir.collab.PWM.SetAutoReload(period)

	ir.st.pwmLimit = period - (delay + ADCMeasureTime)
}

// BaseTickPrescaler exposes the shared-base-tick prescaler computation for
// callers that need to program the timer peripherals directly.
func BaseTickPrescaler(coreClockHz uint32) uint32 {
	return timex.BaseTickPrescaler(coreClockHz, 100_000)
}

// SetPwmDelay reprograms the delay-timer period, deferred to the next PID
// recomputation. Returns true if rejected (the new delay would not leave
// room below the current period) — polarity preserved from the firmware
// ABI this core replaces.
func (ir *Iron) SetPwmDelay(delay uint16) bool {
	if ir.profile.PWMPeriod > delay {
		ir.profile.PWMDelay = delay
		ir.st.updatePwmPending = true
		return false
	}
	return true
}

// SetPwmPeriod reprograms the PWM-timer period, deferred to the next PID
// recomputation. Returns true if rejected.
func (ir *Iron) SetPwmPeriod(period uint16) bool {
	if ir.profile.PWMDelay < period {
		ir.profile.PWMPeriod = period
		ir.st.updatePwmPending = true
		return false
	}
	return true
}
