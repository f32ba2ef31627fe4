package model

import (
	"fmt"
	"time"
)

// Motor represents an electric motor in the catalog.
type Motor struct {
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	PeakPowerKW   *float64  `json:"peak_power_kw"`
	WeightLbs     *float64  `json:"weight_lbs"`
	Price         *float64  `json:"price"`
	ShaftDiameter *float64  `json:"shaft_diameter"` // inches; nil for direct-mount motors
	ID            string    `json:"id"`
	Slug          string    `json:"slug"`
	Name          string    `json:"name"`
	Brand         string    `json:"brand"`
	ShaftType     ShaftType `json:"shaft_type"`
	Voltage       float64   `json:"voltage"`  // nominal system voltage: 24, 36, 48, 72...
	PowerKW       float64   `json:"power_kw"` // continuous power
	TorqueLbFt    float64   `json:"torque_lbft"`
	IsActive      bool      `json:"is_active"`
}

// RequiredAmps returns the continuous current the motor draws at its rated
// power, `power_kw * 1000 / voltage`. Returns false if either input is
// missing or non-positive.
func (m *Motor) RequiredAmps() (float64, bool) {
	if m.Voltage <= 0 || m.PowerKW <= 0 {
		return 0, false
	}
	return m.PowerKW * 1000 / m.Voltage, true
}

// Validate ensures the motor has valid data.
func (m *Motor) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("motor id is required")
	}
	if m.Name == "" {
		return fmt.Errorf("motor name is required")
	}
	if m.Voltage <= 0 {
		return fmt.Errorf("voltage must be positive, got %.1f", m.Voltage)
	}
	if m.PowerKW <= 0 {
		return fmt.Errorf("power must be positive, got %.2f kW", m.PowerKW)
	}
	if m.ShaftDiameter != nil && *m.ShaftDiameter <= 0 {
		return fmt.Errorf("shaft diameter must be positive, got %.3f", *m.ShaftDiameter)
	}
	if m.Price != nil && *m.Price < 0 {
		return fmt.Errorf("motor price cannot be negative, got %.2f", *m.Price)
	}
	return nil
}
