package ironcore

// checkPresence implements the hysteretic attach/detach state machine.
// Disconnection is instant (any tick where the raw tip reading is out of
// range, or the cold-junction reading looks like an open thermocouple,
// flips presence immediately); reconnection is delayed by
// settings.NoIronDelayMs to avoid chatter while re-seating the tip.
func (ir *Iron) checkPresence(now Millis) {
	ambTempX10 := ir.collab.ColdJunc.ReadColdJunctionTempX10(Celsius)

	disconnected := ir.collab.Tip.LastRawAvg() > ir.profile.NoIronValue || ambTempX10 < -600

	if disconnected {
		if ir.st.presence == Present {
			ir.st.lastNoPresent = now
			ir.st.presence = Absent
			ir.setCurrentMode(ModeSleep, true, now)
			ir.st.pwmOut = 0
			ir.collab.Buzzer.AlarmStart()
		}
		return
	}

	if ir.st.presence == Absent {
		if now-ir.st.lastNoPresent > Millis(ir.settings.NoIronDelayMs) {
			ir.collab.Buzzer.AlarmStop()
			ir.st.presence = Present
			ir.setCurrentMode(ModeRun, true, now)
		}
	}
}
