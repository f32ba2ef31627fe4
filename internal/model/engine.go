package model

import (
	"fmt"
	"time"
)

// ShaftType describes the output shaft profile of an engine or motor.
type ShaftType string

// Shaft type constants. Must match the database enum `shaft_type`.
const (
	ShaftStraight ShaftType = "straight"
	ShaftTapered  ShaftType = "tapered"
	ShaftThreaded ShaftType = "threaded"
)

// Valid reports whether the shaft type is one of the known values.
func (s ShaftType) Valid() bool {
	switch s {
	case ShaftStraight, ShaftTapered, ShaftThreaded:
		return true
	}
	return false
}

// Engine represents a gas engine in the catalog.
type Engine struct {
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	WeightLbs      *float64  `json:"weight_lbs"`
	Price          *float64  `json:"price"`
	ShaftKeyway    *string   `json:"shaft_keyway"`
	ID             string    `json:"id"`
	Slug           string    `json:"slug"`
	Name           string    `json:"name"`
	Brand          string    `json:"brand"`
	MountType      string    `json:"mount_type"` // footprint descriptor, e.g. "162mm x 75.5mm"
	ShaftType      ShaftType `json:"shaft_type"`
	DisplacementCC float64   `json:"displacement_cc"`
	Horsepower     float64   `json:"horsepower"`
	Torque         float64   `json:"torque"`
	ShaftDiameter  float64   `json:"shaft_diameter"` // inches
	ShaftLength    float64   `json:"shaft_length"`   // inches
	IsActive       bool      `json:"is_active"`
}

// Validate ensures the engine has valid data.
func (e *Engine) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("engine id is required")
	}
	if e.Name == "" {
		return fmt.Errorf("engine name is required")
	}
	if e.Horsepower <= 0 {
		return fmt.Errorf("horsepower must be positive, got %.2f", e.Horsepower)
	}
	if e.Torque <= 0 {
		return fmt.Errorf("torque must be positive, got %.2f", e.Torque)
	}
	if e.ShaftDiameter <= 0 {
		return fmt.Errorf("shaft diameter must be positive, got %.3f", e.ShaftDiameter)
	}
	if !e.ShaftType.Valid() {
		return fmt.Errorf("unknown shaft type %q", e.ShaftType)
	}
	if e.Price != nil && *e.Price < 0 {
		return fmt.Errorf("engine price cannot be negative, got %.2f", *e.Price)
	}
	return nil
}
