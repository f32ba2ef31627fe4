// Package model defines the core data structures for the kartpick application.
package model

import (
	"fmt"
	"time"
)

// PartCategory identifies the slot a part occupies in a build. The set is
// closed and must match the database enum `part_category`.
type PartCategory string

// Part category constants.
const (
	// Drivetrain.
	CategoryClutch          PartCategory = "clutch"
	CategoryTorqueConverter PartCategory = "torque_converter"
	CategoryChain           PartCategory = "chain"
	CategorySprocket        PartCategory = "sprocket"

	// Chassis.
	CategoryAxle      PartCategory = "axle"
	CategoryWheel     PartCategory = "wheel"
	CategoryTire      PartCategory = "tire"
	CategoryTireFront PartCategory = "tire_front"
	CategoryTireRear  PartCategory = "tire_rear"
	CategoryBrake     PartCategory = "brake"
	CategoryThrottle  PartCategory = "throttle"
	CategoryPedals    PartCategory = "pedals"
	CategoryFrame     PartCategory = "frame"

	// Engine performance.
	CategoryCarburetor    PartCategory = "carburetor"
	CategoryExhaust       PartCategory = "exhaust"
	CategoryAirFilter     PartCategory = "air_filter"
	CategoryCamshaft      PartCategory = "camshaft"
	CategoryValveSpring   PartCategory = "valve_spring"
	CategoryFlywheel      PartCategory = "flywheel"
	CategoryIgnition      PartCategory = "ignition"
	CategoryConnectingRod PartCategory = "connecting_rod"
	CategoryPiston        PartCategory = "piston"
	CategoryCrankshaft    PartCategory = "crankshaft"
	CategoryOilSystem     PartCategory = "oil_system"
	CategoryHeader        PartCategory = "header"
	CategoryFuelSystem    PartCategory = "fuel_system"
	CategoryGasket        PartCategory = "gasket"
	CategoryHardware      PartCategory = "hardware"
	CategoryOther         PartCategory = "other"

	// EV system.
	CategoryBattery            PartCategory = "battery"
	CategoryMotorController    PartCategory = "motor_controller"
	CategoryBMS                PartCategory = "bms"
	CategoryCharger            PartCategory = "charger"
	CategoryThrottleController PartCategory = "throttle_controller"
	CategoryVoltageConverter   PartCategory = "voltage_converter"
	CategoryBatteryMount       PartCategory = "battery_mount"
	CategoryWiringHarness      PartCategory = "wiring_harness"
	CategoryFuseKillSwitch     PartCategory = "fuse_kill_switch"
)

// FuelTag describes which power source a category (or rule) applies to.
type FuelTag string

// Fuel tag constants.
const (
	FuelGas       FuelTag = "gas"
	FuelElectric  FuelTag = "electric"
	FuelUniversal FuelTag = "universal"
)

// CategoryGroup is a display grouping for categories. Grouping drives the
// cost breakdown and UI sections only, never matching logic.
type CategoryGroup string

// Category group constants.
const (
	GroupPowerSource CategoryGroup = "power_source"
	GroupDrivetrain  CategoryGroup = "drivetrain"
	GroupChassis     CategoryGroup = "chassis"
	GroupEngine      CategoryGroup = "engine"
	GroupEVSystem    CategoryGroup = "ev_system"
	GroupOther       CategoryGroup = "other"
)

// CategoryInfo carries the static metadata for one part category.
type CategoryInfo struct {
	Category    PartCategory
	Label       string
	Group       CategoryGroup
	Fuel        FuelTag
	MultiValued bool
}

// CategoryTable lists every category in declaration order. Declaration
// order is the tie-break order for cost breakdown sorting.
var CategoryTable = []CategoryInfo{
	{CategoryClutch, "Clutch", GroupDrivetrain, FuelGas, false},
	{CategoryTorqueConverter, "Torque Converter", GroupDrivetrain, FuelGas, false},
	{CategoryChain, "Chain", GroupDrivetrain, FuelUniversal, false},
	{CategorySprocket, "Sprocket", GroupDrivetrain, FuelUniversal, false},
	{CategoryAxle, "Axle", GroupChassis, FuelUniversal, false},
	{CategoryWheel, "Wheel", GroupChassis, FuelUniversal, true},
	{CategoryTire, "Tire", GroupChassis, FuelUniversal, true},
	{CategoryTireFront, "Front Tire", GroupChassis, FuelUniversal, true},
	{CategoryTireRear, "Rear Tire", GroupChassis, FuelUniversal, true},
	{CategoryBrake, "Brake", GroupChassis, FuelUniversal, false},
	{CategoryThrottle, "Throttle", GroupChassis, FuelUniversal, false},
	{CategoryPedals, "Pedals", GroupChassis, FuelUniversal, false},
	{CategoryFrame, "Frame", GroupChassis, FuelUniversal, false},
	{CategoryCarburetor, "Carburetor", GroupEngine, FuelGas, false},
	{CategoryExhaust, "Exhaust", GroupEngine, FuelGas, false},
	{CategoryAirFilter, "Air Filter", GroupEngine, FuelGas, false},
	{CategoryCamshaft, "Camshaft", GroupEngine, FuelGas, false},
	{CategoryValveSpring, "Valve Spring", GroupEngine, FuelGas, false},
	{CategoryFlywheel, "Flywheel", GroupEngine, FuelGas, false},
	{CategoryIgnition, "Ignition", GroupEngine, FuelGas, false},
	{CategoryConnectingRod, "Connecting Rod", GroupEngine, FuelGas, false},
	{CategoryPiston, "Piston", GroupEngine, FuelGas, false},
	{CategoryCrankshaft, "Crankshaft", GroupEngine, FuelGas, false},
	{CategoryOilSystem, "Oil System", GroupEngine, FuelGas, false},
	{CategoryHeader, "Header", GroupEngine, FuelGas, false},
	{CategoryFuelSystem, "Fuel System", GroupEngine, FuelGas, false},
	{CategoryGasket, "Gasket", GroupEngine, FuelGas, false},
	{CategoryHardware, "Hardware", GroupOther, FuelUniversal, false},
	{CategoryOther, "Other", GroupOther, FuelUniversal, false},
	{CategoryBattery, "Battery", GroupEVSystem, FuelElectric, true},
	{CategoryMotorController, "Motor Controller", GroupEVSystem, FuelElectric, false},
	{CategoryBMS, "BMS", GroupEVSystem, FuelElectric, false},
	{CategoryCharger, "Charger", GroupEVSystem, FuelElectric, false},
	{CategoryThrottleController, "Throttle Controller", GroupEVSystem, FuelElectric, false},
	{CategoryVoltageConverter, "Voltage Converter", GroupEVSystem, FuelElectric, false},
	{CategoryBatteryMount, "Battery Mount", GroupEVSystem, FuelElectric, false},
	{CategoryWiringHarness, "Wiring Harness", GroupEVSystem, FuelElectric, false},
	{CategoryFuseKillSwitch, "Fuse / Kill Switch", GroupEVSystem, FuelElectric, false},
}

var categoryIndex = func() map[PartCategory]int {
	m := make(map[PartCategory]int, len(CategoryTable))
	for i, info := range CategoryTable {
		m[info.Category] = i
	}
	return m
}()

// LookupCategory returns the metadata for a category.
func LookupCategory(c PartCategory) (CategoryInfo, bool) {
	i, ok := categoryIndex[c]
	if !ok {
		return CategoryInfo{}, false
	}
	return CategoryTable[i], true
}

// CategoryOrder returns the declaration index of a category, or the length
// of the table for unknown categories so they sort last.
func CategoryOrder(c PartCategory) int {
	if i, ok := categoryIndex[c]; ok {
		return i
	}
	return len(CategoryTable)
}

// Valid reports whether the category is part of the closed enumeration.
func (c PartCategory) Valid() bool {
	_, ok := categoryIndex[c]
	return ok
}

// Label returns the display label for the category.
func (c PartCategory) Label() string {
	if info, ok := LookupCategory(c); ok {
		return info.Label
	}
	return string(c)
}

// MultiValued reports whether a category may hold more than one part.
func (c PartCategory) MultiValued() bool {
	info, ok := LookupCategory(c)
	return ok && info.MultiValued
}

// CompatibleWith reports whether a part in this category may be combined
// with the given power source fuel type. Universal categories match
// everything, and an unselected power source rejects nothing.
func (c PartCategory) CompatibleWith(fuel FuelTag) bool {
	info, ok := LookupCategory(c)
	if !ok {
		return false
	}
	if info.Fuel == FuelUniversal || fuel == FuelUniversal {
		return true
	}
	return info.Fuel == fuel
}

// Part represents a single catalog part.
type Part struct {
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	Price          *float64       `json:"price"` // nil means "contact for price", never zero
	Specifications Specifications `json:"specifications"`
	ID             string         `json:"id"`
	Slug           string         `json:"slug"`
	Name           string         `json:"name"`
	Brand          string         `json:"brand"`
	Category       PartCategory   `json:"category"`
	IsActive       bool           `json:"is_active"`
}

// Validate ensures the part has valid data.
func (p *Part) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("part id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("part name is required")
	}
	if !p.Category.Valid() {
		return fmt.Errorf("unknown part category %q", p.Category)
	}
	if p.Price != nil && *p.Price < 0 {
		return fmt.Errorf("part price cannot be negative, got %.2f", *p.Price)
	}
	return nil
}
