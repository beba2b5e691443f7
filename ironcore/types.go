// Package ironcore implements the periodic control loop of a soldering-iron
// controller: mode state machine, PWM power limiting, thermal-runaway
// supervision and tip-presence detection. It owns no hardware directly —
// everything that touches silicon (ADC averaging, PID math, the buzzer, the
// supply-voltage sensor, settings persistence) is injected as a collaborator
// so the core ticks deterministically under test.
package ironcore

import "ironcore-go/errcode"

// Millis is a monotonic millisecond timestamp. The core never reads a
// wall clock itself; every entry point takes one explicitly so that timing
// behaviour (debounce windows, runaway tiers, sleep timeout) is reproducible
// under test.
type Millis int64

// Mode is the iron's operating mode. The design leaves room for additional
// modes (boost, standby) that the current implementation collapses to sleep.
type Mode uint8

const (
	ModeRun Mode = iota
	ModeSleep
)

func (m Mode) String() string {
	if m == ModeRun {
		return "run"
	}
	return "sleep"
}

// WakeSource identifies what requested a wake from sleep.
type WakeSource uint8

const (
	WakeButton WakeSource = iota
	WakeEncoder
)

// DebugMode gates whether the PID target comes from the debug setpoint
// instead of the profile/user setpoint.
type DebugMode uint8

const (
	DebugOff DebugMode = iota
	DebugOn
)

// Presence reflects whether a tip is attached to the handle.
type Presence uint8

const (
	Present Presence = iota
	Absent
)

// FailState latches when the controller cannot safely continue (e.g. an
// unrecognised profile selection). Recoverable only by restart.
type FailState uint8

const (
	FailOff FailState = iota
	FailOn
)

// RunawayStatus is terminal once Triggered: a fatal error has already been
// raised and no in-process reset exists.
type RunawayStatus uint8

const (
	RunawayStatusOK RunawayStatus = iota
	RunawayStatusTriggered
)

// RunawayLevel is the highest over-temperature tier currently satisfied.
type RunawayLevel int8

const (
	RunawayOK RunawayLevel = iota
	RunawayL25
	RunawayL50
	RunawayL75
	RunawayL100
	RunawayL500
)

// TempUnit selects the active temperature unit for setpoints and runaway
// tiering.
type TempUnit uint8

const (
	Celsius TempUnit = iota
	Fahrenheit
)

// SaveMode selects what save_settings persists.
type SaveMode uint8

const (
	SaveKeepProfiles SaveMode = iota
	SaveFull
)

// ProfileID names a supported tip family. Anything else drives the
// controller into FailOn.
type ProfileID uint8

const (
	ProfileNone ProfileID = iota
	ProfileT12
	ProfileC245
	ProfileC210
)

// ADCMeasureTime is the fixed number of timer ticks reserved at the end of
// every PWM period for ADC conversion of the tip reading.
const ADCMeasureTime = 40

// DebounceWindow is the minimum stable duration a requested mode change
// must hold before ControlTick applies it (invariant I5).
const DebounceWindow = 500 * Millis(1)

// BootSettleWindow is the time after boot during which no PID
// recomputation happens, so averaging filters have data to work with.
const BootSettleWindow = 1000 * Millis(1)

// SetpointBand is the +/- tolerance, in the active unit, within which the
// tip is considered to have reached its setpoint.
const SetpointBand = 3

// Profile holds per-tip-family tuning, read by the core and mutated by an
// external UI/settings layer.
type Profile struct {
	UserSetpoint    uint16
	PWMPeriod       uint16
	PWMDelay        uint16
	PIDTickPeriodMs uint32
	SleepTimeoutMin uint16
	NoIronValue     uint16
	ImpedanceX10    uint16
	PowerLimitW     uint16
	TempUnit        TempUnit
}

// SystemSettings holds system-wide configuration, read by the core.
// PersistedSettingsChecksum/PersistedProfileChecksum are updated by the
// external settings module whenever it completes a save, and observed
// (read-only) by SettingsWatcher.
type SystemSettings struct {
	CurrentProfile            ProfileID
	SaveSettingsDelayS        uint16
	TempUnit                  TempUnit
	NoIronDelayMs             uint32
	WakeOnButton              bool
	InitMode                  Mode
	SetupMode                 bool
	PersistedSettingsChecksum uint32
	PersistedProfileChecksum  uint32
}

// state is the process-wide, singleton live state of the controller.
// It is mutated only from the foreground tick; ISR-adjacent collaborators
// touch only hardware registers and their own sample buffers.
type state struct {
	currentMode Mode

	currentSetpoint uint16
	debugMode       DebugMode
	debugSetpoint   uint16

	currentPowerPercent int8
	pwmOut              uint16
	pwmMax              uint16
	pwmLimit            uint16

	presence   Presence
	failState  FailState
	calibrating bool

	runawayStatus     RunawayStatus
	runawayLevel      RunawayLevel
	prevRunawayLevel  RunawayLevel
	runawayTimer      Millis

	lastModeChange   Millis
	currentModeTimer Millis
	lastSysChange    Millis
	lastNoPresent    Millis
	lastActivity     Millis

	updateModePending bool
	changeMode        Mode
	updatePwmPending  bool
	calReachedFlag    bool
	newActivity       bool

	pidLast Millis

	prevSysChecksum uint32
	prevTipChecksum uint32
	checksumTime    Millis

	lastAppliedProfile ProfileID

	fatal errcode.Code // set once runaway/invariant fatal has fired; empty otherwise
}
