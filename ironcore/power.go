package ironcore

// limitPower converts a PID output set in (0,1] to a timer compare value
// bounded by the instantaneous electrical power budget. The power-budget
// arithmetic (v2, maxPower, pwmMax) is fixed-point to preserve the exact
// integer rounding the original firmware relies on: a single rounding slip
// here shows up as duty drift. The final scaling by set uses float64 and
// truncates to whole percent and whole ticks.
//
// vX10 is supply voltage in volts x10; impedanceX10 is tip impedance in
// ohms x10; powerLimitW/pwmPeriod/pwmLimit come from the active profile
// and the current ADC-window ceiling.
func limitPower(set float64, vX10 uint32, impedanceX10 uint16, powerLimitW uint16, pwmPeriod, pwmLimit uint16) (pwmOut, pwmMax uint16, powerPercent int8) {
	v2 := (vX10 * vX10) / 10 // V^2 x10
	if v2 == 0 {
		v2 = 1
	}
	maxPower := v2 / uint32(impedanceX10) // V^2/R, worst-case delivered watts

	if uint32(powerLimitW) >= maxPower {
		pwmMax = pwmLimit
	} else {
		pm := (uint32(pwmPeriod) * uint32(powerLimitW)) / maxPower
		if pm > uint32(pwmLimit) {
			pm = uint32(pwmLimit)
		}
		pwmMax = uint16(pm)
	}

	powerPercent = int8(set * 100)
	pwmOut = uint16(set * float64(pwmMax))
	return pwmOut, pwmMax, powerPercent
}
