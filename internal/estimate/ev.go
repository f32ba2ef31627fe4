package estimate

import (
	"math"

	"github.com/kartwerks/kartpick/internal/model"
)

// DefaultEfficiency is the assumed drivetrain efficiency for electric
// builds.
const DefaultEfficiency = 0.85

// Use factors scale usable battery energy by riding style.
const (
	UseFactorLight    = 0.7  // cruising, flat ground
	UseFactorModerate = 0.5  // mixed riding
	UseFactorHeavy    = 0.35 // aggressive, hills, frequent stops
)

const (
	milesPerKWh    = 3   // small-kart consumption assumption
	chargeOverhead = 1.2 // charging inefficiency on top of rated Ah
	dutyFactor     = 0.5 // motors rarely run at continuous full power
)

// RangeMiles estimates riding range: usable energy is pack watt-hours
// scaled by efficiency and use factor, at 3 miles per kWh. Rounded to one
// decimal. False when voltage, capacity, or motor power is missing.
func RangeMiles(voltage, ampHours, powerKW, efficiency, useFactor float64) (float64, bool) {
	if voltage <= 0 || ampHours <= 0 || powerKW <= 0 {
		return 0, false
	}
	if efficiency <= 0 {
		efficiency = DefaultEfficiency
	}
	usableKWh := voltage * ampHours * efficiency * useFactor / 1000
	return round1(usableKWh * milesPerKWh), true
}

// RuntimeMinutes estimates full-throttle-equivalent runtime in minutes,
// assuming the motor averages half its rated draw.
func RuntimeMinutes(voltage, ampHours, powerKW, efficiency float64) (int, bool) {
	if voltage <= 0 || ampHours <= 0 || powerKW <= 0 {
		return 0, false
	}
	if efficiency <= 0 {
		efficiency = DefaultEfficiency
	}
	usableKWh := voltage * ampHours * efficiency / 1000
	hours := usableKWh / powerKW
	return int(math.Round(hours * 60 * dutyFactor)), true
}

// ChargingHours estimates time to charge a pack from empty, with a 20%
// overhead for charging losses. False when charger amps are unknown or
// non-positive.
func ChargingHours(ampHours, chargerAmps float64) (float64, bool) {
	if ampHours <= 0 || chargerAmps <= 0 {
		return 0, false
	}
	return round1(ampHours * chargeOverhead / chargerAmps), true
}

// RangeSet holds range estimates across the three riding styles.
type RangeSet struct {
	Light    float64
	Moderate float64
	Heavy    float64
}

// EVEstimate is the combined electric-build estimate.
type EVEstimate struct {
	Range          RangeSet
	RuntimeMinutes int
	ChargingHours  float64
	AmpHours       float64
	HasRange       bool
	HasCharging    bool
}

// BatteryAmpHours reads pack capacity from a battery part's
// specifications.
func BatteryAmpHours(specs model.Specifications) (float64, bool) {
	ah, ok := specs.Number("capacity_ah", "ah", "amp_hours")
	if !ok || ah <= 0 {
		return 0, false
	}
	return ah, true
}

// chargerAmps reads output current from a charger part's specifications.
func chargerAmps(specs model.Specifications) (float64, bool) {
	amps, ok := specs.Number("current_output", "output_amps", "amps")
	if !ok || amps <= 0 {
		return 0, false
	}
	return amps, true
}

// Electric computes the full EV estimate for a build. ampHoursOverride,
// when positive, substitutes for the battery's rated capacity (useful for
// what-if runs); otherwise capacity comes from the first selected
// battery. Charging time comes from the selected charger, if any.
func Electric(power model.PowerSource, selection *model.Selection, ampHoursOverride float64) EVEstimate {
	est := EVEstimate{}

	motor, ok := power.Motor()
	if !ok {
		return est
	}

	ah := ampHoursOverride
	if ah <= 0 {
		if battery, found := selection.First(model.CategoryBattery); found {
			ah, _ = BatteryAmpHours(battery.Specifications)
		}
	}
	if ah <= 0 {
		return est
	}
	est.AmpHours = ah

	est.Range.Light, est.HasRange = RangeMiles(motor.Voltage, ah, motor.PowerKW, DefaultEfficiency, UseFactorLight)
	est.Range.Moderate, _ = RangeMiles(motor.Voltage, ah, motor.PowerKW, DefaultEfficiency, UseFactorModerate)
	est.Range.Heavy, _ = RangeMiles(motor.Voltage, ah, motor.PowerKW, DefaultEfficiency, UseFactorHeavy)
	est.RuntimeMinutes, _ = RuntimeMinutes(motor.Voltage, ah, motor.PowerKW, DefaultEfficiency)

	if charger, found := selection.First(model.CategoryCharger); found {
		if amps, haveAmps := chargerAmps(charger.Specifications); haveAmps {
			est.ChargingHours, est.HasCharging = ChargingHours(ah, amps)
		}
	}

	return est
}
