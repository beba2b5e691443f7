// Package tcamp drives an MCP9600-class thermocouple-to-digital converter
// over I2C, exposing the hot-junction (tip) and cold-junction temperatures
// the iron core needs for PID compensation and presence detection.
package tcamp

import (
	"errors"

	"tinygo.org/x/drivers"

	"ironcore-go/x/conv"
)

const AddressDefault uint16 = 0x60

const (
	regHotJunction  = 0x00
	regDeltaJunc    = 0x01
	regColdJunction = 0x02
	regStatus       = 0x04
	regSensorCfg    = 0x05
	regDeviceID     = 0x20
)

const statusBurstReady = 1 << 6

var (
	ErrNotPresent = errors.New("tcamp: device ID mismatch")
)

// Config configures the converter. Integer-only.
type Config struct {
	Address     uint16
	ThermoType  ThermoType
	FilterCoeff uint8 // 0 (off) .. 7 (heaviest), per datasheet
}

type ThermoType uint8

const (
	TypeK ThermoType = iota
	TypeJ
	TypeT
	TypeN
)

func DefaultConfig() Config {
	return Config{Address: AddressDefault, ThermoType: TypeK}
}

// Device represents an MCP9600-class thermocouple amplifier on an I2C bus.
type Device struct {
	i2c  drivers.I2C
	addr uint16

	w [2]byte
	r [2]byte
}

func New(i2c drivers.I2C, cfg Config) *Device {
	addr := cfg.Address
	if addr == 0 {
		addr = AddressDefault
	}
	return &Device{i2c: i2c, addr: addr}
}

// Configure writes the sensor-type/filter register. Call once at startup.
func (d *Device) Configure(cfg Config) error {
	return d.writeByte(regSensorCfg, byte(cfg.ThermoType)<<4|cfg.FilterCoeff&0x07)
}

// Ready reports whether a new conversion burst has completed.
func (d *Device) Ready() (bool, error) {
	s, err := d.readByte(regStatus)
	if err != nil {
		return false, err
	}
	return s&statusBurstReady != 0, nil
}

// HotJunctionRawX16 returns the hot-junction (tip) reading in the device's
// native 1/16 degree-Celsius fixed point, sign-extended.
func (d *Device) HotJunctionRawX16() (int32, error) {
	return d.readTempX16(regHotJunction)
}

// ColdJunctionX10 returns the cold-junction (ambient) temperature in
// tenths of a degree Celsius, rounding to the nearest unit.
func (d *Device) ColdJunctionX10() (int16, error) {
	raw, err := d.readTempX16(regColdJunction)
	if err != nil {
		return 0, err
	}
	return int16(round16ToX10(raw)), nil
}

// HotJunctionX10 returns the hot-junction temperature in tenths of a
// degree Celsius. Negative readings saturate to 0 since a soldering tip
// never operates below freezing; callers needing the raw ADC-domain value
// for presence detection should use HotJunctionRawX16 directly.
func (d *Device) HotJunctionX10() (uint16, error) {
	raw, err := d.HotJunctionRawX16()
	if err != nil {
		return 0, err
	}
	x10 := round16ToX10(raw)
	if x10 < 0 {
		return 0, nil
	}
	return uint16(x10), nil
}

func round16ToX10(rawX16 int32) int32 {
	// x16 -> x10: multiply by 10, divide by 16, round to nearest.
	n := rawX16 * 10
	if n >= 0 {
		return (n + 8) / 16
	}
	return -((-n + 8) / 16)
}

func (d *Device) readTempX16(reg byte) (int32, error) {
	u, err := d.readWord(reg)
	if err != nil {
		return 0, err
	}
	// The register holds a two's-complement word at 0.0625 deg/LSB;
	// sign-extend it to int32.
	signed := int32(int16(u))
	return signed, nil
}

func (d *Device) readByte(reg byte) (byte, error) {
	d.w[0] = reg
	if err := d.i2c.Tx(d.addr, d.w[:1], d.r[:1]); err != nil {
		return 0, err
	}
	return d.r[0], nil
}

func (d *Device) writeByte(reg, val byte) error {
	d.w[0] = reg
	d.w[1] = val
	return d.i2c.Tx(d.addr, d.w[:2], nil)
}

// readWord reads a big-endian 16-bit register (MSB first).
func (d *Device) readWord(reg byte) (uint16, error) {
	d.w[0] = reg
	if err := d.i2c.Tx(d.addr, d.w[:1], d.r[:2]); err != nil {
		return 0, err
	}
	return uint16(d.r[0])<<8 | uint16(d.r[1]), nil
}

// DebugDeviceID reads the raw device-ID register and renders it as 8-digit
// hex without allocating, for "debug" command dumps over the console.
func (d *Device) DebugDeviceID() (string, error) {
	u, err := d.readWord(regDeviceID)
	if err != nil {
		return "", err
	}
	var buf [8]byte
	return string(conv.U32Hex(buf[:], uint32(u))), nil
}

// Identify confirms a device is present by probing the device-ID register.
// MCP9600-class parts report 0x40 in the high byte of the device-ID word.
func (d *Device) Identify() error {
	u, err := d.readWord(regDeviceID)
	if err != nil {
		return err
	}
	if u>>8 != 0x40 {
		return ErrNotPresent
	}
	return nil
}
