package ironcore

import "ironcore-go/errcode"

// Fakes for the collaborator interfaces, used across ironcore_test.go.
// Each is a plain struct with knobs the tests set directly; none of them
// do anything beyond what a given scenario needs.

type fakeTip struct {
	compensated uint16
	avg         uint16
	rawAvg      uint16
}

func (f *fakeTip) ReadCompensated(update bool) uint16 { return f.compensated }
func (f *fakeTip) LastAvg() uint16                    { return f.avg }
func (f *fakeTip) LastRawAvg() uint16                 { return f.rawAvg }

type fakeColdJunc struct{ tempX10 int16 }

func (f *fakeColdJunc) ReadColdJunctionTempX10(unit TempUnit) int16 { return f.tempX10 }

type fakeSupply struct{ vX10 uint32 }

func (f *fakeSupply) SupplyVoltageX10() uint32 { return f.vX10 }

// fakePID returns a fixed value unless a function is supplied, letting
// tests model "PID saturates to max" by returning 1.
type fakePID struct {
	fn    func(setpointADC, measuredADC uint16) float64
	value float64
}

func (f *fakePID) Compute(setpointADC, measuredADC uint16) float64 {
	if f.fn != nil {
		return f.fn(setpointADC, measuredADC)
	}
	return f.value
}

type fakeUnits struct{}

func (fakeUnits) Human2ADC(temperature uint16) uint16 { return temperature }
func (fakeUnits) Convert(temperature uint16, to TempUnit) uint16 {
	if to == Fahrenheit {
		return temperature*9/5 + 32
	}
	return (temperature - 32) * 5 / 9
}

type fakePersister struct {
	sysSum, tipSum uint32
	saves          int
	lastSaveMode   SaveMode
}

func (f *fakePersister) ChecksumSettings(*SystemSettings) uint32 { return f.sysSum }
func (f *fakePersister) ChecksumProfile(*Profile) uint32         { return f.tipSum }
func (f *fakePersister) SaveSettings(mode SaveMode) {
	f.saves++
	f.lastSaveMode = mode
}

type fakeFatal struct {
	codes []errcode.Code
}

func (f *fakeFatal) Fatal(code errcode.Code) {
	f.codes = append(f.codes, code)
}

type fakeBuzzer struct {
	shortBeeps, longBeeps, alarmStarts, alarmStops int
}

func (f *fakeBuzzer) ShortBeep()  { f.shortBeeps++ }
func (f *fakeBuzzer) LongBeep()   { f.longBeeps++ }
func (f *fakeBuzzer) AlarmStart() { f.alarmStarts++ }
func (f *fakeBuzzer) AlarmStop()  { f.alarmStops++ }

type fakeTimer struct {
	period  uint16
	compare uint16
}

func (f *fakeTimer) SetAutoReload(period uint16) { f.period = period }
func (f *fakeTimer) SetCompare(ticks uint16)      { f.compare = ticks }

type fakeDelay struct{ period uint16 }

func (f *fakeDelay) SetAutoReload(period uint16) { f.period = period }

// newHarness wires up a controller with permissive fakes and a T12
// profile/settings pair suitable for most scenarios.
func newHarness() (*Iron, *fakeTip, *fakePID, *fakeSupply, *fakeFatal, *fakeBuzzer, *fakeTimer) {
	profile := &Profile{
		UserSetpoint:    320,
		PWMPeriod:       20000,
		PWMDelay:        2000,
		PIDTickPeriodMs: 100,
		SleepTimeoutMin: 0,
		NoIronValue:     3000,
		ImpedanceX10:    80,
		PowerLimitW:     60,
		TempUnit:        Celsius,
	}
	settings := &SystemSettings{
		CurrentProfile:     ProfileT12,
		SaveSettingsDelayS: 0,
		TempUnit:           Celsius,
		NoIronDelayMs:      2000,
		WakeOnButton:       true,
		InitMode:           ModeRun,
	}
	tip := &fakeTip{compensated: 25, avg: 100, rawAvg: 100}
	pid := &fakePID{value: 1}
	supply := &fakeSupply{vX10: 120}
	fatal := &fakeFatal{}
	buzzer := &fakeBuzzer{}
	pwm := &fakeTimer{}
	delay := &fakeDelay{}

	ir := New(profile, settings, Collaborators{
		Tip:       tip,
		ColdJunc:  &fakeColdJunc{tempX10: 250},
		Supply:    supply,
		PID:       pid,
		Units:     fakeUnits{},
		Persister: &fakePersister{},
		Fatal:     fatal,
		Buzzer:    buzzer,
		PWM:       pwm,
		Delay:     delay,
	})
	return ir, tip, pid, supply, fatal, buzzer, pwm
}
