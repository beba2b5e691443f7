package ironcore

import (
	"testing"

	"ironcore-go/errcode"
)

// Scenario 1: cold start to setpoint. Tip stays far below setpoint; pwm_out
// should saturate to pwm_max, and the reached callback must not fire until
// the tip enters the +/-3 band.
func TestColdStartSaturatesAndFiresReachedOnce(t *testing.T) {
	ir, tip, _, _, _, _, pwm := newHarness()

	var reached []uint16
	if err := ir.AddSetpointReachedCallback(func(temp uint16) { reached = append(reached, temp) }); err != nil {
		t.Fatalf("register callback: %v", err)
	}

	now := Millis(1000)
	ir.Tick(now)

	wantPwmMax := uint16(17960) // pwmLimit, since power_limit(60W) >= max_power(18W)
	if ir.st.pwmMax != wantPwmMax {
		t.Fatalf("pwmMax = %d, want %d", ir.st.pwmMax, wantPwmMax)
	}
	if ir.st.pwmOut != wantPwmMax {
		t.Fatalf("pwmOut = %d, want saturated %d", ir.st.pwmOut, wantPwmMax)
	}
	if ir.GetCurrentPower() != 100 {
		t.Fatalf("power percent = %d, want 100", ir.GetCurrentPower())
	}
	if len(reached) != 0 {
		t.Fatalf("reached fired early: %v", reached)
	}

	// Enter the band.
	tip.compensated = 319
	now += Millis(ir.profile.PIDTickPeriodMs)
	ir.Tick(now)
	if len(reached) != 1 || reached[0] != 320 {
		t.Fatalf("expected reached(320) exactly once, got %v", reached)
	}

	// Stays in band on the next tick: must not fire again.
	now += Millis(ir.profile.PIDTickPeriodMs)
	ir.Tick(now)
	if len(reached) != 1 {
		t.Fatalf("reached fired again while still in band: %v", reached)
	}
	_ = pwm
}

// Scenario 2: power-throttle fixed-point math, pinned exactly.
func TestPowerLimiterThrottleMath(t *testing.T) {
	pwmOut, pwmMax, percent := limitPower(1.0, 200, 80, 25, 20000, 17960)
	wantMax := uint16(20000 * 25 / 50) // pwmPeriod/2 = 10000, below pwmLimit
	if pwmMax != wantMax {
		t.Fatalf("pwmMax = %d, want %d", pwmMax, wantMax)
	}
	if pwmOut != wantMax {
		t.Fatalf("pwmOut = %d, want %d (set=1.0)", pwmOut, wantMax)
	}
	if percent != 100 {
		t.Fatalf("percent = %d, want 100", percent)
	}
}

func TestPowerLimiterClampsToLimitWhenThrottleExceedsIt(t *testing.T) {
	// max_power=50W, power_limit=25W => throttled pwmMax would be 10000,
	// but the ADC-window ceiling (pwmLimit=5000) is tighter and must win.
	_, pwmMax, _ := limitPower(1.0, 200, 80, 25, 20000, 5000)
	if pwmMax != 5000 {
		t.Fatalf("pwmMax = %d, want clamp to pwmLimit 5000", pwmMax)
	}
}

// Scenario 3: runaway L75 trips after its time limit and resets if the
// overshoot clears first.
func TestRunawayL75TripsAfterTimeLimit(t *testing.T) {
	ir, tip, _, _, fatal, _, _ := newHarness()
	ir.st.currentSetpoint = 300
	ir.st.pwmOut = 1 // entry condition requires pwm_out > 0
	tip.compensated = 380

	now := Millis(0)
	ir.checkRunaway(now, 380) // first detection, latches prevRunawayLevel=L75

	now = 3001
	ir.checkRunaway(now, 380)

	if len(fatal.codes) != 1 || fatal.codes[0] != errcode.Runaway75 {
		t.Fatalf("expected RUNAWAY75, got %v", fatal.codes)
	}
}

func TestRunawayResetsIfOverrunClearsBeforeLimit(t *testing.T) {
	ir, _, _, _, fatal, _, _ := newHarness()
	ir.st.currentSetpoint = 300
	ir.st.pwmOut = 1

	ir.checkRunaway(0, 380) // first detection

	ir.checkRunaway(2999, 380) // still within the 3s window, no trip yet
	if len(fatal.codes) != 0 {
		t.Fatalf("unexpected early trip: %v", fatal.codes)
	}

	ir.checkRunaway(3000, 310) // drops back under setpoint+25 before the limit
	if len(fatal.codes) != 0 {
		t.Fatalf("unexpected trip after recovery: %v", fatal.codes)
	}
	if ir.st.prevRunawayLevel != RunawayOK {
		t.Fatalf("prevRunawayLevel = %v, want reset to OK", ir.st.prevRunawayLevel)
	}
}

// Scenario 4: debounced mode changes only observe the last request, applied
// ~500ms after it (invariant I5).
func TestDebounceObservesOnlyLastRequest(t *testing.T) {
	ir, _, _, _, _, _, _ := newHarness()
	ir.setCurrentMode(ModeRun, true, 0)

	ir.SetModeFromStand(0, ModeRun)
	ir.SetModeFromStand(200, ModeRun)
	ir.SetModeFromStand(400, ModeSleep)

	// Before 500ms since the *last* request (t=400): must not yet apply.
	ir.Tick(Millis(899))
	if ir.GetCurrentMode() != ModeRun {
		t.Fatalf("mode changed too early: %v", ir.GetCurrentMode())
	}

	ir.Tick(Millis(901))
	if ir.GetCurrentMode() != ModeSleep {
		t.Fatalf("mode = %v, want sleep applied by t=901", ir.GetCurrentMode())
	}
}

// Scenario 5: presence flap — instant disconnect, delayed reconnect.
func TestPresenceFlapInstantDisconnectDelayedReconnect(t *testing.T) {
	ir, tip, _, _, _, buzzer, _ := newHarness()
	ir.setCurrentMode(ModeRun, true, 0)

	tip.rawAvg = ir.profile.NoIronValue + 1
	ir.checkPresence(1000)
	if ir.GetIronPresence() {
		t.Fatal("expected absent immediately on raw-over-threshold tick")
	}
	if ir.GetCurrentMode() != ModeSleep {
		t.Fatalf("mode = %v, want forced sleep on disconnect", ir.GetCurrentMode())
	}
	if buzzer.alarmStarts != 1 {
		t.Fatalf("alarmStarts = %d, want 1", buzzer.alarmStarts)
	}

	tip.rawAvg = 100 // back in range
	ir.checkPresence(1000 + Millis(ir.settings.NoIronDelayMs) - 1)
	if ir.GetIronPresence() {
		t.Fatal("reconnected before no_iron_delay elapsed")
	}

	ir.checkPresence(1000 + Millis(ir.settings.NoIronDelayMs) + 1)
	if !ir.GetIronPresence() {
		t.Fatal("expected present after no_iron_delay elapsed")
	}
	if ir.GetCurrentMode() != ModeRun {
		t.Fatalf("mode = %v, want forced run on reconnect", ir.GetCurrentMode())
	}
	if buzzer.alarmStops != 1 {
		t.Fatalf("alarmStops = %d, want 1", buzzer.alarmStops)
	}
}

// Scenario 6: settings save delay — edits reset the quiet timer, save fires
// once the quiet period elapses.
func TestSettingsWatcherDelayedSave(t *testing.T) {
	ir, _, _, _, _, _, _ := newHarness()
	persister := ir.collab.Persister.(*fakePersister)
	ir.settings.SaveSettingsDelayS = 3
	ir.settings.PersistedSettingsChecksum = 1
	ir.settings.PersistedProfileChecksum = 1

	persister.sysSum = 2 // edit, first checksum pass
	ir.watchSettings(1000)
	if persister.saves != 0 {
		t.Fatalf("unexpected save at t=1000")
	}

	persister.sysSum = 3 // another edit, resets the quiet timer
	ir.watchSettings(3000)
	if persister.saves != 0 {
		t.Fatalf("unexpected save at t=3000")
	}

	ir.watchSettings(3999) // rate-limited, no-op (< 1s since last checksum pass)
	if persister.saves != 0 {
		t.Fatalf("unexpected save at t=3999")
	}

	ir.watchSettings(6001) // quiet period (3s) since t=3000 has elapsed
	if persister.saves != 1 {
		t.Fatalf("saves = %d, want 1 by t=6001", persister.saves)
	}
}

// I1: pwm_out must never exceed pwm_limit.
func TestInvariantPwmOutNeverExceedsLimit(t *testing.T) {
	ir, _, pid, _, fatal, _, _ := newHarness()
	pid.value = 1 // saturate

	ir.Tick(Millis(1000))
	if ir.st.pwmOut > ir.st.pwmLimit {
		t.Fatalf("pwm_out %d exceeds pwm_limit %d", ir.st.pwmOut, ir.st.pwmLimit)
	}
	if len(fatal.codes) != 0 {
		t.Fatalf("unexpected fatal: %v", fatal.codes)
	}
}

// I2: fail state or absence forces pwm_out to zero.
func TestInvariantFailOrAbsentZeroesPower(t *testing.T) {
	ir, _, _, _, _, _, _ := newHarness()
	ir.SetFailState(true)
	ir.Tick(Millis(1000))
	if ir.GetCurrentPower() != -99 {
		t.Fatalf("power = %d, want -99 sentinel", ir.GetCurrentPower())
	}
}

// I3: sleep mode always has a zero setpoint.
func TestInvariantSleepModeZeroSetpoint(t *testing.T) {
	ir, _, _, _, _, _, _ := newHarness()
	ir.setCurrentMode(ModeSleep, true, 0)
	if ir.GetSetTemperature() != 0 {
		t.Fatalf("setpoint = %d in sleep, want 0", ir.GetSetTemperature())
	}
}

// I4: once triggered, runaway status never resets without a restart.
func TestInvariantRunawayTriggeredIsAbsorbing(t *testing.T) {
	ir, _, _, _, _, _, _ := newHarness()
	ir.st.runawayStatus = RunawayStatusTriggered
	ir.st.pwmOut = 1
	ir.st.currentSetpoint = 300
	ir.checkRunaway(0, 25) // even a cool tip must not clear the latch

	if ir.st.runawayStatus != RunawayStatusTriggered {
		t.Fatal("runaway status cleared without restart")
	}
}

// R1: toggling the unit twice restores the setpoint within 10-unit
// granularity rounding.
func TestRoundTripTempUnitToggle(t *testing.T) {
	ir, _, _, _, _, _, _ := newHarness()
	ir.profile.UserSetpoint = 320
	ir.profile.TempUnit = Celsius

	ir.SetSystemTempUnit(0, Fahrenheit)
	ir.SetSystemTempUnit(0, Celsius)

	if d := int(ir.profile.UserSetpoint) - 320; d < -10 || d > 10 {
		t.Fatalf("round-trip setpoint drifted too far: got %d, want within 10 of 320", ir.profile.UserSetpoint)
	}
}

// The mode-changed callback registry fires the first registered callback
// even when it is the only one (regression for the dangling-tail append
// bug in the source this core replaces).
func TestModeChangedCallbackFiresWhenFirstRegistered(t *testing.T) {
	ir, _, _, _, _, _, _ := newHarness()

	var got Mode
	fired := false
	if err := ir.AddModeChangedCallback(func(m Mode) { got = m; fired = true }); err != nil {
		t.Fatalf("register: %v", err)
	}

	ir.setCurrentMode(ModeSleep, true, 0)
	if !fired {
		t.Fatal("first-registered mode-changed callback never fired")
	}
	if got != ModeSleep {
		t.Fatalf("callback saw mode %v, want sleep", got)
	}
}

func TestCallbackRegistryFullIsFatal(t *testing.T) {
	ir, _, _, _, _, _, _ := newHarness()
	var lastErr error
	for i := 0; i < maxCallbacks+1; i++ {
		lastErr = ir.AddModeChangedCallback(func(Mode) {})
	}
	if lastErr != errcode.CallbackRegistryFull {
		t.Fatalf("expected CallbackRegistryFull once slots are exhausted, got %v", lastErr)
	}
}
