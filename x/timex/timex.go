package timex

import "time"

// NowMs returns Unix milliseconds as int64, matching the HAL_GetTick()
// millisecond counter the control core is clocked from.
func NowMs() int64 { return time.Now().UnixMilli() }

// PeriodFromHz returns a nanosecond period for a requested frequency.
// freqHz==0 is coerced to 1 to avoid division by zero.
func PeriodFromHz(freqHz uint32) uint64 {
	if freqHz == 0 {
		freqHz = 1
	}
	return uint64(1_000_000_000 / uint64(freqHz))
}

// BaseTickPrescaler returns the timer prescaler value that divides
// coreClockHz down to baseTickHz (e.g. 100_000 for a 10µs base tick shared
// by the PWM and delay timers). Matches the original firmware's
// (SystemCoreClock/100000)-1.
func BaseTickPrescaler(coreClockHz, baseTickHz uint32) uint32 {
	if baseTickHz == 0 {
		baseTickHz = 1
	}
	d := coreClockHz / baseTickHz
	if d == 0 {
		return 0
	}
	return d - 1
}
