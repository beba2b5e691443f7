package ironcore

import "ironcore-go/errcode"

// Tick is the ControlTick entry point: the main loop calls it at a rate
// much higher than the PID tick period. It sequences every other
// component each call. now is the caller's monotonic millisecond clock.
func (ir *Iron) Tick(now Millis) {
	tipT := ir.collab.Tip.ReadCompensated(true)

	if !ir.GetFailState() {
		p := ir.settings.CurrentProfile
		if p != ProfileT12 && p != ProfileC245 && p != ProfileC210 {
			ir.SetFailState(true)
		}
	}

	if !ir.settings.SetupMode && !ir.st.calibrating &&
		ir.settings.SaveSettingsDelayS > 0 && ir.st.failState == FailOff {
		ir.watchSettings(now)
	}

	ir.checkPresence(now)

	if ir.st.failState == FailOn || ir.st.presence == Absent {
		if ir.st.failState == FailOn {
			ir.st.currentPowerPercent = -99
		} else {
			ir.st.currentPowerPercent = 0
		}
		ir.st.runawayTimer = now
		ir.st.prevRunawayLevel = RunawayOK
		return // PWM hardware already quiesced
	}

	if ir.st.updateModePending && now-ir.st.lastModeChange >= DebounceWindow {
		ir.st.updateModePending = false
		ir.setCurrentMode(ir.st.changeMode, false, now)
	}

	if ir.st.currentMode == ModeRun && !ir.st.calibrating && ir.profile.SleepTimeoutMin > 0 &&
		now-ir.st.currentModeTimer > Millis(ir.profile.SleepTimeoutMin)*60000 {
		ir.setCurrentMode(ModeSleep, true, now)
		ir.collab.Buzzer.LongBeep()
	}

	if now-ir.st.pidLast < Millis(ir.profile.PIDTickPeriodMs) || now < BootSettleWindow {
		return
	}
	ir.st.pidLast = now

	if ir.st.updatePwmPending {
		ir.st.updatePwmPending = false
		ir.collab.PWM.SetAutoReload(ir.profile.PWMPeriod)
		ir.collab.Delay.SetAutoReload(ir.profile.PWMDelay)
		ir.st.pwmLimit = ir.profile.PWMPeriod - (ir.profile.PWMDelay + ADCMeasureTime)
	}

	var set float64
	if ir.st.debugMode == DebugOn {
		set = ir.collab.PID.Compute(ir.st.debugSetpoint, ir.collab.Tip.LastAvg())
	} else if ir.st.currentSetpoint > 99 {
		if t := ir.collab.Units.Human2ADC(ir.st.currentSetpoint); t != 0 {
			set = ir.collab.PID.Compute(t, ir.collab.Tip.LastAvg())
		}
	}
	if set < 0 {
		set = 0
	}

	if set > 0 {
		vX10 := ir.collab.Supply.SupplyVoltageX10()
		pwmOut, pwmMax, powerPercent := limitPower(set, vX10, ir.profile.ImpedanceX10, ir.profile.PowerLimitW, ir.profile.PWMPeriod, ir.st.pwmLimit)
		ir.st.pwmMax = pwmMax
		ir.st.pwmOut = pwmOut
		ir.st.currentPowerPercent = powerPercent
	} else {
		ir.st.currentPowerPercent = 0
		ir.st.pwmOut = 0
	}

	if ir.st.pwmOut > ir.st.pwmLimit {
		ir.st.fatal = errcode.PWMOverLimit
		ir.collab.Fatal.Fatal(errcode.PWMOverLimit)
		ir.SetFailState(true)
		return
	}
	// pwm_out is picked up by the PWM-timer update ISR at the next period
	// boundary; the foreground never writes the compare register directly
	// except through the immediate SetFailState override.

	if tipT >= ir.st.currentSetpoint-SetpointBand && tipT <= ir.st.currentSetpoint+SetpointBand && !ir.st.calReachedFlag {
		ir.callbacks.fireSetpointReached(ir.st.currentSetpoint)
		ir.st.calReachedFlag = true
	}

	ir.checkRunaway(now, tipT)
}
