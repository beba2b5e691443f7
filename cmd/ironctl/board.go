package main

import (
	"sync"

	"ironcore-go/ironcore"
	"ironcore-go/x/mathx"
)

// simPlant is a software stand-in for the heater/thermocouple hardware: a
// first-order thermal model driven by the PWM duty it is told to apply,
// read back through the same tinygo.org/x/drivers.I2C Tx shape tcamp
// expects from real silicon. It also doubles as the supply-voltage sensor
// and the PWM-timer collaborator, since on the host there is no separate
// peripheral for either.
type simPlant struct {
	mu sync.Mutex

	tempX16   int32 // hot-junction reading, 1/16 degC
	compareAt uint16
	pwmPeriod uint16
}

func newSimPlant() *simPlant {
	return &simPlant{tempX16: 20 * 16} // ambient start
}

// Tx implements tinygo.org/x/drivers.I2C for the tcamp driver: w[0] selects
// a register, r is filled with its big-endian contents.
func (p *simPlant) Tx(addr uint16, w, r []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.step()

	if len(w) == 0 || len(r) == 0 {
		return nil
	}
	switch w[0] {
	case 0x00: // hot junction
		putBE16(r, uint16(p.tempX16))
	case 0x02: // cold junction
		putBE16(r, uint16(22*16)) // steady room temperature
	case 0x20: // device ID
		putBE16(r, 0x4000)
	default:
		putBE16(r, 0)
	}
	return nil
}

// step advances the simulated tip temperature one tick toward a target set
// by the last commanded PWM duty, clamped so it never exceeds a plausible
// ceiling regardless of duty commanded.
func (p *simPlant) step() {
	if p.pwmPeriod == 0 {
		return
	}
	dutyPct := int32(p.compareAt) * 100 / int32(p.pwmPeriod)
	target := int32(20+dutyPct*4) * 16 // ambient + up to ~400degC at 100%
	p.tempX16 += (target - p.tempX16) / 20
	p.tempX16 = mathx.Clamp(p.tempX16, 20*16, 450*16)
}

func putBE16(dst []byte, v uint16) {
	dst[0] = byte(v >> 8)
	if len(dst) > 1 {
		dst[1] = byte(v)
	}
}

// SetAutoReload implements the PWM-timer half of the collaborator pair.
func (p *simPlant) SetAutoReload(period uint16) {
	p.mu.Lock()
	p.pwmPeriod = period
	p.mu.Unlock()
}

func (p *simPlant) SetCompare(ticks uint16) {
	p.mu.Lock()
	p.compareAt = ticks
	p.mu.Unlock()
}

func (p *simPlant) SupplyVoltageX10() uint32 { return 120 } // 12.0V, simulated

// delayTimer is the ADC-window delay-timer collaborator; kept separate from
// simPlant's own PWM autoreload so the two timers don't alias each other.
type delayTimer struct{ period uint16 }

func (d *delayTimer) SetAutoReload(period uint16) { d.period = period }

// proportionalPID is a minimal stand-in for the external PID block: pure
// proportional control normalized to [0,1], clamped by the caller.
type proportionalPID struct{}

func (proportionalPID) Compute(setpointADC, measuredADC uint16) float64 {
	if measuredADC >= setpointADC {
		return 0
	}
	errTicks := float64(setpointADC - measuredADC)
	return mathx.Clamp(errTicks/100.0, 0, 1)
}

// memPersister checksums settings/profile from a few of their fields and
// only counts saves: it stores no saved copy and does not update the
// persisted checksums in SystemSettings. A real persister would write flash.
type memPersister struct {
	saveCount int
}

func newMemPersister() *memPersister { return &memPersister{} }

func (m *memPersister) ChecksumSettings(s *ironcore.SystemSettings) uint32 {
	return uint32(s.CurrentProfile) + uint32(s.TempUnit)<<8 + s.NoIronDelayMs
}

func (m *memPersister) ChecksumProfile(p *ironcore.Profile) uint32 {
	return uint32(p.UserSetpoint) + uint32(p.PowerLimitW)<<16 + uint32(p.ImpedanceX10)<<8
}

func (m *memPersister) SaveSettings(mode ironcore.SaveMode) {
	m.saveCount++
	println("[persist] settings saved, mode =", int(mode))
}

// consoleBuzzer reports audible feedback as console lines, since the host
// build has no physical buzzer.
type consoleBuzzer struct{}

func (consoleBuzzer) ShortBeep()  { println("[buzzer] beep") }
func (consoleBuzzer) LongBeep()   { println("[buzzer] beeeep") }
func (consoleBuzzer) AlarmStart() { println("[buzzer] alarm on") }
func (consoleBuzzer) AlarmStop()  { println("[buzzer] alarm off") }
