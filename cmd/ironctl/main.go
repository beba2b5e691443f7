// Command ironctl wires the iron control core to its collaborators, a
// diagnostics bus and a debug console, then drives it at a steady tick
// rate. Hardware access goes through tinygo.org/x/drivers.I2C so the same
// wiring runs unchanged on-target; off-target (this binary, built for the
// host) it talks to a software thermocouple-amplifier simulation instead
// of silicon, the same split x/fmtx and x/strconvx use for their
// host/MCU builds.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"time"

	"ironcore-go/bus"
	"ironcore-go/drivers/tcamp"
	"ironcore-go/ironcore"
	"ironcore-go/services/config"
	"ironcore-go/services/console"
	"ironcore-go/services/diagnostics"
	"ironcore-go/services/loop"
)

const tipFilterTaps = 8

func main() {
	ctx := context.Background()

	b := bus.NewBus(8)
	sysConn := b.NewConnection("system")
	uiConn := b.NewConnection("ui")

	plant := newSimPlant()
	tip := tcamp.NewTipFilter(tcamp.New(plant, tcamp.DefaultConfig()), tipFilterTaps)
	coldJunc := coldJunctionAdapter{tcamp.New(plant, tcamp.DefaultConfig())}

	profile := defaultProfile()
	settings := defaultSettings()

	diag := diagnostics.New(sysConn)
	collab := ironcore.Collaborators{
		Tip:       tip,
		ColdJunc:  coldJunc,
		Supply:    plant,
		PID:       &proportionalPID{},
		Units:     unitConverter{},
		Persister: newMemPersister(),
		Fatal:     diagnostics.NewFatalHandler(sysConn),
		Buzzer:    consoleBuzzer{},
		PWM:       plant,
		Delay:     &delayTimer{},
	}

	ir := ironcore.New(profile, settings, collab)
	if err := diag.Attach(ir); err != nil {
		fmt.Println("ironctl: diagnostics attach failed:", err)
		return
	}

	cfgSvc := config.NewConfigService()
	cfgCtx := context.WithValue(ctx, config.CtxProfileKey, "t12")
	cfgSvc.Start(cfgCtx, sysConn)

	loopSvc := loop.New(ir)
	loopSvc.Start(ctx, sysConn)

	cons := console.New(ir, func() ironcore.Millis {
		return ironcore.Millis(time.Now().UnixMilli())
	}).WithDeviceIdentifier(coldJunc.dev)
	runConsole(cons, uiConn)
}

func runConsole(cons *console.Console, uiConn *bus.Connection) {
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println("ironctl ready. commands: mode, temp, debug, cal, status")
	for scanner.Scan() {
		reply, err := cons.Exec(scanner.Text())
		if err != nil {
			fmt.Println("error:", err)
			continue
		}
		if reply != "" {
			fmt.Println(reply)
		}
	}
}

// coldJunctionAdapter maps the amplifier's cold-junction register onto
// ironcore.ColdJunctionSensor.
type coldJunctionAdapter struct{ dev *tcamp.Device }

func (a coldJunctionAdapter) ReadColdJunctionTempX10(unit ironcore.TempUnit) int16 {
	v, err := a.dev.ColdJunctionX10()
	if err != nil {
		return 0
	}
	if unit == ironcore.Fahrenheit {
		return int16(int32(v)*9/5 + 320)
	}
	return v
}

// unitConverter implements ironcore.UnitConverter with integer-only math.
// Human2ADC scales whole degrees Celsius to the 1/16-degree counts that
// tcamp.TipFilter reports as its ADC-domain averages.
type unitConverter struct{}

func (unitConverter) Human2ADC(temperature uint16) uint16 { return temperature * 16 }
func (unitConverter) Convert(temperature uint16, to ironcore.TempUnit) uint16 {
	if to == ironcore.Fahrenheit {
		return temperature*9/5 + 32
	}
	return (temperature - 32) * 5 / 9
}

func defaultProfile() *ironcore.Profile {
	return &ironcore.Profile{
		UserSetpoint:    320,
		PWMPeriod:       20000,
		PWMDelay:        2000,
		PIDTickPeriodMs: 100,
		SleepTimeoutMin: 10,
		NoIronValue:     3000,
		ImpedanceX10:    80,
		PowerLimitW:     60,
		TempUnit:        ironcore.Celsius,
	}
}

func defaultSettings() *ironcore.SystemSettings {
	return &ironcore.SystemSettings{
		CurrentProfile: ironcore.ProfileT12,
		TempUnit:       ironcore.Celsius,
		NoIronDelayMs:  2000,
		WakeOnButton:   true,
		InitMode:       ironcore.ModeRun,
	}
}
