package tcamp

import "ironcore-go/x/mathx"

// TipFilter wraps a Device with the moving-average filter the iron core's
// collaborator contract expects: a compensated whole-degree reading for the
// setpoint band check, and ADC-domain averages (1/16-degree counts) for the
// PID block and for presence detection.
//
// Both ADC-domain windows are fed the same raw samples, so LastAvg and
// LastRawAvg report the same moving average; the PID input gets no extra
// filtering beyond it.
type TipFilter struct {
	dev *Device

	taps    int
	filtBuf []int32
	rawBuf  []int32
	pos     int
	filled  bool

	lastCompensated uint16
	lastAvg         uint16
	lastRawAvg      uint16
}

// NewTipFilter builds a filter over taps samples (>=1). taps=8 matches the
// averaging window sizing used elsewhere on this bus for noisy ADC inputs.
func NewTipFilter(dev *Device, taps int) *TipFilter {
	if taps < 1 {
		taps = 1
	}
	return &TipFilter{
		dev:     dev,
		taps:    taps,
		filtBuf: make([]int32, taps),
		rawBuf:  make([]int32, taps),
	}
}

// ReadCompensated satisfies ironcore.TipReader. When update is true it pulls
// a fresh sample from the amplifier and folds it into both running windows;
// otherwise it returns the last computed values unchanged.
func (f *TipFilter) ReadCompensated(update bool) uint16 {
	if !update {
		return f.lastCompensated
	}
	raw, err := f.dev.HotJunctionRawX16()
	if err != nil {
		return f.lastCompensated
	}

	f.rawBuf[f.pos] = raw
	f.filtBuf[f.pos] = raw
	f.pos++
	if f.pos == f.taps {
		f.pos = 0
		f.filled = true
	}

	n := f.taps
	if !f.filled {
		n = f.pos
		if n == 0 {
			n = 1
		}
	}

	var rawSum, filtSum int64
	for i := 0; i < n; i++ {
		rawSum += int64(f.rawBuf[i])
		filtSum += int64(f.filtBuf[i])
	}

	f.lastRawAvg = uint16(mathx.Clamp(rawSum/int64(n), 0, 0xFFFF))
	avgX16 := filtSum / int64(n)
	f.lastAvg = uint16(mathx.Clamp(avgX16, 0, 0xFFFF))

	deg := (avgX16 + 8) / 16 // 1/16 degree -> nearest whole degree
	if deg < 0 {
		deg = 0
	}
	f.lastCompensated = uint16(deg)
	return f.lastCompensated
}

// LastAvg returns the filtered ADC-domain reading fed to the PID block.
func (f *TipFilter) LastAvg() uint16 { return f.lastAvg }

// LastRawAvg returns the ADC-domain moving average used by presence
// detection; it is the same value LastAvg returns.
func (f *TipFilter) LastRawAvg() uint16 { return f.lastRawAvg }
