package ironcore

import "ironcore-go/errcode"

// runawayTier pairs an over-setpoint level with its allowed dwell time
// before a trip fires. Lower tiers get generous windows (thermal-mass
// overshoot after a big setpoint drop is expected); higher tiers are
// near-catastrophic and must trip fast.
type runawayTier struct {
	level     RunawayLevel
	limit     Millis
	code      errcode.Code
}

var runawayTiers = [...]runawayTier{
	{RunawayL25, 20000, errcode.Runaway25},
	{RunawayL50, 10000, errcode.Runaway50},
	{RunawayL75, 3000, errcode.Runaway75},
	{RunawayL100, 1000, errcode.Runaway100},
	{RunawayL500, 1000, errcode.Runaway500},
}

func tierLimit(level RunawayLevel) (Millis, errcode.Code, bool) {
	for _, t := range runawayTiers {
		if t.level == level {
			return t.limit, t.code, true
		}
	}
	return 0, errcode.RunawayUnknown, false
}

// checkRunaway implements the tiered over-temperature supervisor. It only
// evaluates tiers while the entry condition holds (heater actively
// driving, not already tripped, not in debug mode, tip hotter than
// setpoint); otherwise it keeps resetting the timer so a transient dip
// can't accumulate dwell time toward a trip.
func (ir *Iron) checkRunaway(now Millis, tipT uint16) {
	entryCond := ir.st.pwmOut > 0 &&
		ir.st.runawayStatus == RunawayStatusOK &&
		ir.st.debugMode == DebugOff &&
		tipT > ir.st.currentSetpoint

	if !entryCond {
		ir.st.runawayTimer = now
		ir.st.prevRunawayLevel = RunawayOK
		return
	}

	step := uint16(25)
	absLimit := uint16(500)
	if ir.profile.TempUnit == Fahrenheit {
		step = 45
		absLimit = 950
	}

	level := RunawayOK
	for c := RunawayL100; c >= RunawayOK; c-- {
		level = c
		if tipT > ir.st.currentSetpoint+step*uint16(c) {
			break
		}
	}
	if tipT > absLimit {
		level = RunawayL500
	}
	ir.st.runawayLevel = level

	if level == RunawayOK {
		ir.st.runawayTimer = now
		ir.st.prevRunawayLevel = RunawayOK
		return
	}

	if ir.st.prevRunawayLevel == RunawayOK {
		ir.st.prevRunawayLevel = level
		ir.st.runawayTimer = now
		return
	}

	// A trip raises the fatal code, then latches the fail state, which
	// forces the PWM output low and stops further control.
	limit, code, known := tierLimit(level)
	if !known {
		ir.st.runawayStatus = RunawayStatusTriggered
		ir.st.fatal = errcode.RunawayUnknown
		ir.collab.Fatal.Fatal(errcode.RunawayUnknown)
		ir.SetFailState(true)
		return
	}
	if now-ir.st.runawayTimer > limit {
		ir.st.runawayStatus = RunawayStatusTriggered
		ir.st.fatal = code
		ir.collab.Fatal.Fatal(code)
		ir.SetFailState(true)
	}
}
