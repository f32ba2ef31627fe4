package model

import (
	"fmt"
	"time"
)

// Build is the persisted form of a build: ids only, re-resolved against
// the catalog on load. Ids that no longer resolve are silently dropped
// since the catalog may have changed since the build was saved.
type Build struct {
	CreatedAt   time.Time                 `json:"created_at"`
	UpdatedAt   time.Time                 `json:"updated_at"`
	Parts       map[PartCategory][]string `json:"parts"`
	EngineID    *string                   `json:"engine_id,omitempty"`
	MotorID     *string                   `json:"motor_id,omitempty"`
	ID          string                    `json:"id"`
	Name        string                    `json:"name"`
	Description string                    `json:"description"`
	TotalPrice  float64                   `json:"total_price"`
}

// Validate ensures the build record has valid data.
func (b *Build) Validate() error {
	if b.ID == "" {
		return fmt.Errorf("build id is required")
	}
	if b.Name == "" {
		return fmt.Errorf("build name is required")
	}
	if b.EngineID != nil && b.MotorID != nil {
		return fmt.Errorf("build cannot have both an engine and a motor")
	}
	for category, ids := range b.Parts {
		if !category.Valid() {
			return fmt.Errorf("unknown part category %q", category)
		}
		if len(ids) == 0 {
			return fmt.Errorf("category %q has no part ids", category)
		}
	}
	return nil
}
