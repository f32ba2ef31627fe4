package model

// PowerSource is the tagged union of a build's drive: a gas engine, an
// electric motor, or nothing. At most one arm is ever set.
type PowerSource struct {
	engine *Engine
	motor  *Motor
}

// NoPowerSource returns the empty power source.
func NoPowerSource() PowerSource {
	return PowerSource{}
}

// GasPowerSource wraps a gas engine as the build's power source.
func GasPowerSource(e *Engine) PowerSource {
	return PowerSource{engine: e}
}

// ElectricPowerSource wraps an electric motor as the build's power source.
func ElectricPowerSource(m *Motor) PowerSource {
	return PowerSource{motor: m}
}

// Engine returns the gas engine arm, if set.
func (p PowerSource) Engine() (*Engine, bool) {
	return p.engine, p.engine != nil
}

// Motor returns the electric motor arm, if set.
func (p PowerSource) Motor() (*Motor, bool) {
	return p.motor, p.motor != nil
}

// IsNone reports whether no power source is selected.
func (p PowerSource) IsNone() bool {
	return p.engine == nil && p.motor == nil
}

// Fuel returns the fuel tag of the selected power source. An empty build
// is treated as universal so that nothing is rejected before a power
// source is picked.
func (p PowerSource) Fuel() FuelTag {
	switch {
	case p.engine != nil:
		return FuelGas
	case p.motor != nil:
		return FuelElectric
	default:
		return FuelUniversal
	}
}

// Price returns the power source price. Returns false when the price is
// unknown; callers sum it as zero but must surface "unpriced" separately.
func (p PowerSource) Price() (float64, bool) {
	switch {
	case p.engine != nil && p.engine.Price != nil:
		return *p.engine.Price, true
	case p.motor != nil && p.motor.Price != nil:
		return *p.motor.Price, true
	}
	return 0, false
}

// WeightLbs returns the power source weight, if known.
func (p PowerSource) WeightLbs() (float64, bool) {
	switch {
	case p.engine != nil && p.engine.WeightLbs != nil:
		return *p.engine.WeightLbs, true
	case p.motor != nil && p.motor.WeightLbs != nil:
		return *p.motor.WeightLbs, true
	}
	return 0, false
}

// Label returns a short display label for the power source.
func (p PowerSource) Label() string {
	switch {
	case p.engine != nil:
		return p.engine.Name
	case p.motor != nil:
		return p.motor.Name
	default:
		return "none"
	}
}
