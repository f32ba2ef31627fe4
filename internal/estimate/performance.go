// Package estimate derives performance and EV figures for a build. Every
// function is pure: explicit numeric inputs, and a false second return
// instead of NaN or infinity when an input is missing or zero. The
// formulas are documented approximations tuned for small karts, not
// physics simulations.
package estimate

import (
	"math"

	"github.com/kartwerks/kartpick/internal/model"
)

// Tier is one row of the horsepower tier table.
type Tier struct {
	Name             string
	RecommendedRatio string
	ClutchTeeth      string
	AxleTeeth        string
	SpeedRange       string
	MinHP            float64 // inclusive lower bound
}

// Tiers is the horsepower tier configuration, ascending by MinHP. It is
// exported so the thresholds can be tested and displayed without
// duplicating them.
var Tiers = []Tier{
	{Name: "Entry-Level", MinHP: 0, RecommendedRatio: "5:1", ClutchTeeth: "10T", AxleTeeth: "50T", SpeedRange: "25-30 mph"},
	{Name: "Mid-Range", MinHP: 6, RecommendedRatio: "6:1", ClutchTeeth: "12T", AxleTeeth: "72T", SpeedRange: "35-45 mph"},
	{Name: "High Performance", MinHP: 10, RecommendedRatio: "7:1", ClutchTeeth: "12T", AxleTeeth: "84T", SpeedRange: "45-55+ mph"},
}

// TierFor returns the tier for a horsepower figure.
func TierFor(horsepower float64) Tier {
	tier := Tiers[0]
	for _, t := range Tiers {
		if horsepower >= t.MinHP {
			tier = t
		}
	}
	return tier
}

// Default weights, in pounds, for build weight estimation.
const (
	baseKartWeightLbs      = 100
	defaultEngineWeightLbs = 40
)

// estimatedPartWeights gives rough per-category part weights in pounds,
// used when a part carries no weight specification.
var estimatedPartWeights = map[model.PartCategory]float64{
	model.CategoryClutch:          2.5,
	model.CategoryTorqueConverter: 8.0,
	model.CategoryChain:           1.0,
	model.CategorySprocket:        0.5,
	model.CategoryCarburetor:      1.5,
	model.CategoryExhaust:         3.0,
	model.CategoryHeader:          2.0,
	model.CategoryAirFilter:       0.5,
	model.CategoryCamshaft:        0.8,
	model.CategoryFlywheel:        3.0,
	model.CategoryPiston:          0.3,
	model.CategoryConnectingRod:   0.2,
	model.CategoryIgnition:        0.5,
	model.CategoryFuelSystem:      2.0,
	model.CategoryAxle:            5.0,
	model.CategoryWheel:           2.0,
	model.CategoryTire:            3.0,
	model.CategoryBrake:           2.5,
	model.CategoryThrottle:        0.3,
	model.CategoryFrame:           20.0,
	model.CategoryGasket:          0.1,
	model.CategoryHardware:        0.2,
	model.CategoryBattery:         25.0,
	model.CategoryMotorController: 3.0,
	model.CategoryCharger:         4.0,
}

// CostPerHP returns price divided by horsepower. False when either input
// is missing or non-positive.
func CostPerHP(price *float64, horsepower float64) (float64, bool) {
	if price == nil || *price <= 0 || horsepower <= 0 {
		return 0, false
	}
	return *price / horsepower, true
}

// PowerToWeight returns horsepower per 100 lbs, rounded to one decimal.
// False when either input is missing or non-positive.
func PowerToWeight(horsepower, weightLbs float64) (float64, bool) {
	if horsepower <= 0 || weightLbs <= 0 {
		return 0, false
	}
	return round1(horsepower / (weightLbs / 100)), true
}

// BuildHP sums the engine's base horsepower and any hp_contribution
// specifications on the selected parts, rounded to one decimal.
func BuildHP(engine *model.Engine, parts []model.Part) (float64, bool) {
	if engine == nil {
		return 0, false
	}
	total := engine.Horsepower
	for _, part := range parts {
		if contribution, ok := part.Specifications.Number("hp_contribution"); ok {
			total += contribution
		}
	}
	return round1(total), true
}

// BuildTorque sums base torque and part torque_contribution specs. When
// the engine record has no torque figure, it is estimated from
// horsepower at a typical small-engine 3600 RPM: torque = hp*5252/rpm.
func BuildTorque(engine *model.Engine, parts []model.Part) (float64, bool) {
	if engine == nil {
		return 0, false
	}
	base := engine.Torque
	if base <= 0 {
		base = engine.Horsepower * 5252 / 3600
	}
	total := base
	for _, part := range parts {
		if contribution, ok := part.Specifications.Number("torque_contribution"); ok {
			total += contribution
		}
	}
	return round1(total), true
}

// BuildWeight estimates total build weight in pounds: base kart frame
// plus power source plus parts. Parts without a weight_lbs or weight_oz
// specification fall back to the per-category estimates.
func BuildWeight(power model.PowerSource, parts []model.Part) float64 {
	total := float64(baseKartWeightLbs)

	if !power.IsNone() {
		if weight, ok := power.WeightLbs(); ok {
			total += weight
		} else {
			total += defaultEngineWeightLbs
		}
	}

	for _, part := range parts {
		switch {
		case hasNumber(part.Specifications, "weight_lbs"):
			w, _ := part.Specifications.Number("weight_lbs")
			total += w
		case hasNumber(part.Specifications, "weight_oz"):
			w, _ := part.Specifications.Number("weight_oz")
			total += w / 16
		default:
			if w, ok := estimatedPartWeights[part.Category]; ok {
				total += w
			} else {
				total += 1.0
			}
		}
	}

	return math.Round(total)
}

// TopSpeed estimates top speed in MPH from horsepower, weight, and final
// drive ratio: (hp*200)/(weight/100)/ratio, rounded to the nearest MPH.
func TopSpeed(horsepower, weightLbs, gearRatio float64) (float64, bool) {
	if horsepower <= 0 || weightLbs <= 0 || gearRatio <= 0 {
		return 0, false
	}
	const speedConstant = 200
	return math.Round(horsepower * speedConstant / (weightLbs / 100) / gearRatio), true
}

// Accel0to20 estimates 0-20 MPH time in seconds, clamped to the 2-8s
// range typical of karts.
func Accel0to20(horsepower, weightLbs float64) (float64, bool) {
	ptw, ok := PowerToWeight(horsepower, weightLbs)
	if !ok {
		return 0, false
	}
	return round1(clamp(10-ptw*0.8, 2, 8)), true
}

// Accel0to30 estimates 0-30 MPH time in seconds, clamped to 3-12s.
func Accel0to30(horsepower, weightLbs float64) (float64, bool) {
	ptw, ok := PowerToWeight(horsepower, weightLbs)
	if !ok {
		return 0, false
	}
	return round1(clamp(15-ptw*1.0, 3, 12)), true
}

// GearRatio returns the final drive ratio, driven teeth over driver
// teeth. False when either count is missing or non-positive.
func GearRatio(clutchTeeth, axleTeeth float64) (float64, bool) {
	if clutchTeeth <= 0 || axleTeeth <= 0 {
		return 0, false
	}
	return axleTeeth / clutchTeeth, true
}

// GearRatioFromSelection reads sprocket teeth from the selected clutch or
// torque converter (driver) and sprocket (driven). Defaults to 1:1 when
// either side is unknown.
func GearRatioFromSelection(selection *model.Selection) float64 {
	var clutchTeeth, axleTeeth float64

	for _, category := range []model.PartCategory{model.CategoryClutch, model.CategoryTorqueConverter} {
		if part, ok := selection.First(category); ok {
			if teeth, found := part.Specifications.Number("sprocket_teeth", "teeth"); found {
				clutchTeeth = teeth
				break
			}
		}
	}
	if part, ok := selection.First(model.CategorySprocket); ok {
		if teeth, found := part.Specifications.Number("teeth"); found {
			axleTeeth = teeth
		}
	}

	if ratio, ok := GearRatio(clutchTeeth, axleTeeth); ok {
		return ratio
	}
	return 1.0
}

// Metrics is the combined performance result for a gas build.
type Metrics struct {
	HP           float64
	Torque       float64
	TopSpeed     float64
	PowerToWt    float64
	Accel0to20   float64
	Accel0to30   float64
	WeightLbs    float64
	GearRatio    float64
	Tier         Tier
	HasPower     bool
	HasTopSpeed  bool
	HasPowerToWt bool
}

// Performance computes the full metric set for a gas build.
func Performance(power model.PowerSource, selection *model.Selection) Metrics {
	engine, _ := power.Engine()
	parts := selection.All()

	m := Metrics{GearRatio: GearRatioFromSelection(selection)}
	m.HP, m.HasPower = BuildHP(engine, parts)
	m.Torque, _ = BuildTorque(engine, parts)
	m.WeightLbs = BuildWeight(power, parts)
	m.TopSpeed, m.HasTopSpeed = TopSpeed(m.HP, m.WeightLbs, m.GearRatio)
	m.PowerToWt, m.HasPowerToWt = PowerToWeight(m.HP, m.WeightLbs)
	m.Accel0to20, _ = Accel0to20(m.HP, m.WeightLbs)
	m.Accel0to30, _ = Accel0to30(m.HP, m.WeightLbs)
	if m.HasPower {
		m.Tier = TierFor(m.HP)
	}
	return m
}

func hasNumber(specs model.Specifications, key string) bool {
	_, ok := specs.Number(key)
	return ok
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
