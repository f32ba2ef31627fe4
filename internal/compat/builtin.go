package compat

import (
	"fmt"

	"github.com/kartwerks/kartpick/internal/model"
)

// shaftMountCategories mount directly on the engine output shaft, so
// their bore must match the shaft diameter.
var shaftMountCategories = []model.PartCategory{
	model.CategoryClutch,
	model.CategoryTorqueConverter,
	model.CategorySprocket,
}

// gasChecks runs the built-in physical checks for a gas build. All checks
// are skipped when no engine is selected.
func gasChecks(power model.PowerSource, selection *model.Selection) []model.Warning {
	engine, ok := power.Engine()
	if !ok {
		return nil
	}

	var warnings []model.Warning

	// Shaft/bore match for everything that rides the engine shaft.
	for _, category := range shaftMountCategories {
		for _, part := range selection.Parts(category) {
			bore, found := part.Specifications.Number("bore_diameter", "bore_in")
			if !found {
				continue
			}
			if !diametersMatch(bore, engine.ShaftDiameter) {
				warnings = append(warnings, model.Warning{
					Severity: model.SeverityError,
					Message: fmt.Sprintf("Shaft diameter mismatch: engine has %g\" shaft, but %s bore is %g\"",
						engine.ShaftDiameter, category.Label(), bore),
					Categories: []model.PartCategory{model.CategoryEngineSlot, category},
				})
			}
		}
	}

	// Chain pitch must match sprocket pitch.
	if chain, ok := selection.First(model.CategoryChain); ok {
		if sprocket, ok := selection.First(model.CategorySprocket); ok {
			chainPitch, haveChain := chain.Specifications.Text("pitch", "chain_size")
			sprocketPitch, haveSprocket := sprocket.Specifications.Text("pitch", "chain_size")
			if haveChain && haveSprocket && chainPitch != sprocketPitch {
				warnings = append(warnings, model.Warning{
					Severity: model.SeverityError,
					Message: fmt.Sprintf("Chain pitch mismatch: chain is %s pitch, but sprocket is %s pitch",
						chainPitch, sprocketPitch),
					Categories: []model.PartCategory{model.CategoryChain, model.CategorySprocket},
				})
			}
		}
	}

	// Brake hub must fit the axle.
	if brake, ok := selection.First(model.CategoryBrake); ok {
		if axle, ok := selection.First(model.CategoryAxle); ok {
			brakeDiameter, haveBrake := brake.Specifications.Number("axle_diameter")
			axleDiameter, haveAxle := axle.Specifications.Number("diameter")
			if haveBrake && haveAxle && !diametersMatch(brakeDiameter, axleDiameter) {
				warnings = append(warnings, model.Warning{
					Severity: model.SeverityError,
					Message: fmt.Sprintf("Axle diameter mismatch: brake requires %g\" axle, but selected axle is %g\"",
						brakeDiameter, axleDiameter),
					Categories: []model.PartCategory{model.CategoryBrake, model.CategoryAxle},
				})
			}
		}
	}

	// Tire must fit the wheel.
	if tire, tireCategory, ok := firstTire(selection); ok {
		if wheel, haveWheel := selection.First(model.CategoryWheel); haveWheel {
			tireDiameter, haveTire := tire.Specifications.Number("wheel_diameter")
			wheelDiameter, haveDiameter := wheel.Specifications.Number("diameter")
			if haveTire && haveDiameter && !diametersMatch(tireDiameter, wheelDiameter) {
				warnings = append(warnings, model.Warning{
					Severity: model.SeverityError,
					Message: fmt.Sprintf("Size mismatch: tire is for %g\" wheels, but wheel diameter is %g\"",
						tireDiameter, wheelDiameter),
					Categories: []model.PartCategory{tireCategory, model.CategoryWheel},
				})
			}
		}
	}

	// Wheel bolt pattern must match the axle hub.
	if wheel, ok := selection.First(model.CategoryWheel); ok {
		if axle, haveAxle := selection.First(model.CategoryAxle); haveAxle {
			wheelPattern, haveWheel := wheel.Specifications.Text("bolt_pattern")
			axlePattern, havePattern := axle.Specifications.Text("bolt_pattern")
			if haveWheel && havePattern && wheelPattern != axlePattern {
				warnings = append(warnings, model.Warning{
					Severity: model.SeverityError,
					Message: fmt.Sprintf("Bolt pattern mismatch: wheel has %s pattern, but axle hub is %s",
						wheelPattern, axlePattern),
					Categories: []model.PartCategory{model.CategoryWheel, model.CategoryAxle},
				})
			}
		}
	}

	_, hasClutch := selection.First(model.CategoryClutch)
	_, hasTC := selection.First(model.CategoryTorqueConverter)

	if !hasClutch && !hasTC {
		warnings = append(warnings, model.Warning{
			Severity:   model.SeverityInfo,
			Message:    "Consider adding a clutch or torque converter for power transfer",
			Categories: []model.PartCategory{model.CategoryEngineSlot},
		})
	}
	if hasClutch && hasTC {
		warnings = append(warnings, model.Warning{
			Severity:   model.SeverityWarning,
			Message:    "Both a clutch and a torque converter are selected; usually only one is needed",
			Categories: []model.PartCategory{model.CategoryClutch, model.CategoryTorqueConverter},
		})
	}

	return warnings
}

// evChecks runs the built-in electrical checks for an electric build:
// voltage equality across battery, controller, and charger, and rating
// headroom on the controller and charger. Undersized current or power is
// a warning rather than an error — the system may still run, just not at
// full output.
func evChecks(power model.PowerSource, selection *model.Selection) []model.Warning {
	motor, ok := power.Motor()
	if !ok {
		return nil
	}

	var warnings []model.Warning
	requiredAmps, haveAmps := motor.RequiredAmps()

	for _, battery := range selection.Parts(model.CategoryBattery) {
		voltage, found := battery.Specifications.Number("voltage", "voltage_v")
		if found && voltage != motor.Voltage {
			warnings = append(warnings, model.Warning{
				Severity: model.SeverityError,
				Message: fmt.Sprintf("Battery voltage mismatch: battery is %gV, but motor is %gV",
					voltage, motor.Voltage),
				Categories: []model.PartCategory{model.CategoryBattery, model.CategoryMotorSlot},
			})
		}
	}

	if controller, ok := selection.First(model.CategoryMotorController); ok {
		if voltage, found := controller.Specifications.Number("voltage", "voltage_v", "voltage_max"); found && voltage != motor.Voltage {
			warnings = append(warnings, model.Warning{
				Severity: model.SeverityError,
				Message: fmt.Sprintf("Controller voltage mismatch: controller is %gV, but motor is %gV",
					voltage, motor.Voltage),
				Categories: []model.PartCategory{model.CategoryMotorController, model.CategoryMotorSlot},
			})
		}
		if amps, found := controller.Specifications.Number("max_current", "rated_current", "current_amps", "continuous_amps"); found && haveAmps && amps < requiredAmps {
			warnings = append(warnings, model.Warning{
				Severity: model.SeverityWarning,
				Message: fmt.Sprintf("Controller rated at %gA may be below motor draw (~%.0fA)",
					amps, requiredAmps),
				Categories: []model.PartCategory{model.CategoryMotorController, model.CategoryMotorSlot},
			})
		}
		if kw, found := controller.Specifications.Number("power_kw", "max_power_kw", "rated_power_kw"); found && kw < motor.PowerKW {
			warnings = append(warnings, model.Warning{
				Severity: model.SeverityWarning,
				Message: fmt.Sprintf("Controller rated at %g kW is below motor %g kW",
					kw, motor.PowerKW),
				Categories: []model.PartCategory{model.CategoryMotorController, model.CategoryMotorSlot},
			})
		}
	}

	if charger, ok := selection.First(model.CategoryCharger); ok {
		if voltage, found := charger.Specifications.Number("voltage", "voltage_v", "output_voltage"); found && voltage != motor.Voltage {
			warnings = append(warnings, model.Warning{
				Severity: model.SeverityError,
				Message: fmt.Sprintf("Charger voltage mismatch: charger is %gV, but system is %gV",
					voltage, motor.Voltage),
				Categories: []model.PartCategory{model.CategoryCharger, model.CategoryMotorSlot},
			})
		}
		if kw, found := charger.Specifications.Number("power_kw", "output_power_kw"); found && kw < motor.PowerKW {
			warnings = append(warnings, model.Warning{
				Severity: model.SeverityWarning,
				Message: fmt.Sprintf("Charger rated at %g kW is below motor %g kW",
					kw, motor.PowerKW),
				Categories: []model.PartCategory{model.CategoryCharger, model.CategoryMotorSlot},
			})
		}
	}

	return warnings
}

// firstTire returns the first selected tire across the tire categories.
func firstTire(selection *model.Selection) (model.Part, model.PartCategory, bool) {
	for _, category := range []model.PartCategory{model.CategoryTire, model.CategoryTireFront, model.CategoryTireRear} {
		if part, ok := selection.First(category); ok {
			return part, category, true
		}
	}
	return model.Part{}, "", false
}
