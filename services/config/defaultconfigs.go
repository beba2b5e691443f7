package config

// -----------------------------------------------------------------------------
// Embedded tip profiles
//
// Populate embeddedProfiles at build time (e.g. via code generation) or
// manually during development.
// Key: profile ID (same value placed in ctx under CtxProfileKey)
// Val: raw JSON bytes for that profile's Profile fields
// -----------------------------------------------------------------------------

const cfgT12 = `{
  "user_setpoint": 320,
  "pwm_period": 20000,
  "pwm_delay": 2000,
  "pid_tick_period_ms": 100,
  "sleep_timeout_min": 10,
  "no_iron_value": 3000,
  "impedance_x10": 80,
  "power_limit_w": 60,
  "temp_unit": "celsius"
}`

const cfgC245 = `{
  "user_setpoint": 350,
  "pwm_period": 20000,
  "pwm_delay": 2000,
  "pid_tick_period_ms": 100,
  "sleep_timeout_min": 5,
  "no_iron_value": 3200,
  "impedance_x10": 24,
  "power_limit_w": 125,
  "temp_unit": "celsius"
}`

const cfgC210 = `{
  "user_setpoint": 300,
  "pwm_period": 20000,
  "pwm_delay": 2000,
  "pid_tick_period_ms": 100,
  "sleep_timeout_min": 10,
  "no_iron_value": 2800,
  "impedance_x10": 55,
  "power_limit_w": 40,
  "temp_unit": "celsius"
}`

var embeddedProfiles = map[string][]byte{
	"t12":   []byte(cfgT12),
	"c245":  []byte(cfgC245),
	"c210":  []byte(cfgC210),
}
