package diagnostics

import (
	"ironcore-go/errcode"
	"ironcore-go/ironcore"
)

type fakeTip struct{}

func (fakeTip) ReadCompensated(update bool) uint16 { return 25 }
func (fakeTip) LastAvg() uint16                    { return 100 }
func (fakeTip) LastRawAvg() uint16                 { return 100 }

type fakeColdJunc struct{}

func (fakeColdJunc) ReadColdJunctionTempX10(ironcore.TempUnit) int16 { return 220 }

type fakeSupply struct{}

func (fakeSupply) SupplyVoltageX10() uint32 { return 120 }

type fakePID struct{}

func (fakePID) Compute(setpointADC, measuredADC uint16) float64 { return 0 }

type fakeUnits struct{}

func (fakeUnits) Human2ADC(t uint16) uint16 { return t }
func (fakeUnits) Convert(t uint16, to ironcore.TempUnit) uint16 {
	if to == ironcore.Fahrenheit {
		return t*9/5 + 32
	}
	return (t - 32) * 5 / 9
}

type fakePersister struct{}

func (fakePersister) ChecksumSettings(*ironcore.SystemSettings) uint32 { return 0 }
func (fakePersister) ChecksumProfile(*ironcore.Profile) uint32         { return 0 }
func (fakePersister) SaveSettings(ironcore.SaveMode)                   {}

type fakeFatal struct{}

func (fakeFatal) Fatal(errcode.Code) {}

type fakeBuzzer struct{}

func (fakeBuzzer) ShortBeep()  {}
func (fakeBuzzer) LongBeep()   {}
func (fakeBuzzer) AlarmStart() {}
func (fakeBuzzer) AlarmStop()  {}

type fakeTimer struct{}

func (fakeTimer) SetAutoReload(uint16) {}
func (fakeTimer) SetCompare(uint16)    {}

type fakeDelay struct{}

func (fakeDelay) SetAutoReload(uint16) {}

func testCollaborators() ironcore.Collaborators {
	return ironcore.Collaborators{
		Tip:       fakeTip{},
		ColdJunc:  fakeColdJunc{},
		Supply:    fakeSupply{},
		PID:       fakePID{},
		Units:     fakeUnits{},
		Persister: fakePersister{},
		Fatal:     fakeFatal{},
		Buzzer:    fakeBuzzer{},
		PWM:       fakeTimer{},
		Delay:     fakeDelay{},
	}
}
