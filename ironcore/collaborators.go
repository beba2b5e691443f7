package ironcore

import "ironcore-go/errcode"

// TipReader supplies tip-temperature readings in two domains: human units
// (for band checks and runaway tiering) and raw ADC units (for PID and
// presence detection). Grounded on the averaging filter behind the
// original firmware's TIP.last_avg / TIP.last_RawAvg.
type TipReader interface {
	// ReadCompensated returns the compensated tip temperature in the
	// active unit, optionally forcing a fresh average.
	ReadCompensated(update bool) uint16
	// LastAvg is the filtered ADC-domain average used as the PID
	// measured input.
	LastAvg() uint16
	// LastRawAvg is the unfiltered ADC-domain average used for presence
	// detection (bypasses the thermal filter so disconnection is seen
	// immediately).
	LastRawAvg() uint16
}

// ColdJunctionSensor reads the reference junction temperature at the
// thermocouple connector, needed to sanity-check tip presence.
type ColdJunctionSensor interface {
	ReadColdJunctionTempX10(unit TempUnit) int16
}

// SupplySensor reports the instantaneous supply rail voltage, volts x10.
type SupplySensor interface {
	SupplyVoltageX10() uint32
}

// PIDComputer is the external closed-loop controller block. Negative
// output is legal; ControlTick clamps it to zero.
type PIDComputer interface {
	Compute(setpointADC, measuredADC uint16) float64
}

// UnitConverter bridges user-unit setpoints and ADC-domain values, and
// converts temperatures between Celsius and Fahrenheit.
type UnitConverter interface {
	Human2ADC(temperature uint16) uint16 // 0 if invalid
	Convert(temperature uint16, to TempUnit) uint16
}

// SettingsPersister commits settings/profile to non-volatile storage and
// refreshes the canonical checksums SettingsWatcher compares against.
type SettingsPersister interface {
	ChecksumSettings(*SystemSettings) uint32
	ChecksumProfile(*Profile) uint32
	SaveSettings(mode SaveMode)
}

// FatalHandler receives unrecoverable error codes, typically to display or
// report them. An implementation may return: right after the call the core
// latches its own fail state, which forces the PWM output low.
type FatalHandler interface {
	Fatal(code errcode.Code)
}

// Buzzer is the audible feedback collaborator.
type Buzzer interface {
	ShortBeep()
	LongBeep()
	AlarmStart()
	AlarmStop()
}

// PWMTimer is the hardware timer driving the heater element.
type PWMTimer interface {
	SetAutoReload(period uint16)
	SetCompare(ticks uint16)
}

// DelayTimer is the hardware timer gating the ADC sampling window after
// each PWM edge.
type DelayTimer interface {
	SetAutoReload(period uint16)
}

// Collaborators bundles every external dependency the core needs. All
// fields are required; Iron does not defend against nil collaborators
// beyond what is necessary to keep zero-value tests cheap to construct.
type Collaborators struct {
	Tip         TipReader
	ColdJunc    ColdJunctionSensor
	Supply      SupplySensor
	PID         PIDComputer
	Units       UnitConverter
	Persister   SettingsPersister
	Fatal       FatalHandler
	Buzzer      Buzzer
	PWM         PWMTimer
	Delay       DelayTimer
}
