// Package console implements a line-oriented debug shell over the iron
// core's public API: set/get temperature, mode, calibration and debug
// overrides. Each line is tokenized with shlex so quoted arguments behave
// the way a user typing at a serial terminal expects.
package console

import (
	"errors"

	"github.com/google/shlex"

	"ironcore-go/ironcore"
	"ironcore-go/x/strconvx"
	"ironcore-go/x/strx"
)

var ErrUnknownCommand = errors.New("console: unknown command")

// deviceIdentifier is satisfied by drivers/tcamp.Device; kept as a narrow
// interface here so this package doesn't import a concrete driver.
type deviceIdentifier interface {
	DebugDeviceID() (string, error)
}

// Console dispatches tokenized command lines against an *ironcore.Iron.
type Console struct {
	ir   *ironcore.Iron
	now  func() ironcore.Millis
	tamp deviceIdentifier
}

func New(ir *ironcore.Iron, now func() ironcore.Millis) *Console {
	return &Console{ir: ir, now: now}
}

// WithDeviceIdentifier attaches the thermocouple amplifier so "debug id"
// can dump its raw device-ID register for field diagnostics.
func (c *Console) WithDeviceIdentifier(d deviceIdentifier) *Console {
	c.tamp = d
	return c
}

// Exec tokenizes and runs a single command line, returning a one-line
// reply suitable for echoing back to the terminal.
func (c *Console) Exec(line string) (string, error) {
	tokens, err := shlex.Split(line)
	if err != nil {
		return "", err
	}
	if len(tokens) == 0 {
		return "", nil
	}

	cmd, args := tokens[0], tokens[1:]
	switch cmd {
	case "mode":
		return c.cmdMode(args)
	case "temp":
		return c.cmdTemp(args)
	case "debug":
		return c.cmdDebug(args)
	case "cal":
		return c.cmdCal(args)
	case "status":
		return c.cmdStatus()
	default:
		return "", ErrUnknownCommand
	}
}

func (c *Console) cmdMode(args []string) (string, error) {
	switch strx.Coalesce(arg(args, 0), "show") {
	case "run":
		c.ir.SetCurrentMode(c.now(), ironcore.ModeRun, true)
		return "mode set: run", nil
	case "sleep":
		c.ir.SetCurrentMode(c.now(), ironcore.ModeSleep, true)
		return "mode set: sleep", nil
	case "show":
		return "mode: " + c.ir.GetCurrentMode().String(), nil
	default:
		return "", ErrUnknownCommand
	}
}

func (c *Console) cmdTemp(args []string) (string, error) {
	if len(args) == 0 {
		return "setpoint: " + strconvx.Itoa(int(c.ir.GetSetTemperature())), nil
	}
	v, err := strconvx.Atoi(args[0])
	if err != nil || v < 0 {
		return "", errors.New("console: temp requires a non-negative integer")
	}
	c.ir.SetSetTemperature(c.now(), uint16(v))
	return "setpoint set: " + strconvx.Itoa(v), nil
}

func (c *Console) cmdDebug(args []string) (string, error) {
	switch strx.Coalesce(arg(args, 0), "") {
	case "on":
		c.ir.SetDebugMode(true)
		return "debug: on", nil
	case "off":
		c.ir.SetDebugMode(false)
		return "debug: off", nil
	case "temp":
		if len(args) < 2 {
			return "", errors.New("console: debug temp requires a value")
		}
		v, err := strconvx.Atoi(args[1])
		if err != nil || v < 0 {
			return "", errors.New("console: debug temp requires a non-negative integer")
		}
		c.ir.SetDebugTemp(uint16(v))
		return "debug setpoint set: " + strconvx.Itoa(v), nil
	case "id":
		if c.tamp == nil {
			return "", errors.New("console: no thermocouple amplifier attached")
		}
		hex, err := c.tamp.DebugDeviceID()
		if err != nil {
			return "", err
		}
		return "device id: 0x" + hex, nil
	default:
		return "", ErrUnknownCommand
	}
}

func (c *Console) cmdCal(args []string) (string, error) {
	switch strx.Coalesce(arg(args, 0), "") {
	case "on":
		c.ir.SetCalibrating(true)
		return "calibrating: on", nil
	case "off":
		c.ir.SetCalibrating(false)
		return "calibrating: off", nil
	default:
		return "", ErrUnknownCommand
	}
}

func (c *Console) cmdStatus() (string, error) {
	return "mode=" + c.ir.GetCurrentMode().String() +
		" setpoint=" + strconvx.Itoa(int(c.ir.GetSetTemperature())) +
		" power=" + strconvx.Itoa(int(c.ir.GetCurrentPower())) +
		" present=" + boolStr(c.ir.GetIronPresence()) +
		" fail=" + boolStr(c.ir.GetFailState()), nil
}

func arg(args []string, i int) string {
	if i < 0 || i >= len(args) {
		return ""
	}
	return args[i]
}

func boolStr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
