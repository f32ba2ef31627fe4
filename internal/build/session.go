// Package build holds the mutable state of one in-progress build: the
// selected power source and the parts chosen per category. A Session is
// constructed per build and passed explicitly; nothing here is global, so
// multiple builds can be edited side by side in tests.
package build

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kartwerks/kartpick/internal/common"
	"github.com/kartwerks/kartpick/internal/model"
)

// Session is the mutable state of one build-editing session.
type Session struct {
	selection   *model.Selection
	id          string
	name        string
	description string
	power       model.PowerSource
}

// NewSession creates an empty build session.
func NewSession() *Session {
	return &Session{
		id:        uuid.NewString(),
		selection: model.NewSelection(),
	}
}

// ID returns the build document id.
func (s *Session) ID() string { return s.id }

// Name returns the build name.
func (s *Session) Name() string { return s.name }

// SetName sets the build name.
func (s *Session) SetName(name string) { s.name = name }

// Description returns the build description.
func (s *Session) Description() string { return s.description }

// SetDescription sets the build description.
func (s *Session) SetDescription(desc string) { s.description = desc }

// PowerSource returns the currently selected power source.
func (s *Session) PowerSource() model.PowerSource { return s.power }

// Selection returns the current selection. The engines treat it as
// read-only; mutation goes through the Session methods.
func (s *Session) Selection() *model.Selection { return s.selection }

// SetEngine selects a gas engine as the power source, clearing any
// electric motor. Selecting the engine that is already selected toggles
// it off.
func (s *Session) SetEngine(engine *model.Engine) {
	if engine == nil {
		s.power = model.NoPowerSource()
		return
	}
	if current, ok := s.power.Engine(); ok && current.ID == engine.ID {
		s.power = model.NoPowerSource()
		return
	}
	s.power = model.GasPowerSource(engine)
}

// SetMotor selects an electric motor as the power source, clearing any
// gas engine. Selecting the motor that is already selected toggles it off.
func (s *Session) SetMotor(motor *model.Motor) {
	if motor == nil {
		s.power = model.NoPowerSource()
		return
	}
	if current, ok := s.power.Motor(); ok && current.ID == motor.ID {
		s.power = model.NoPowerSource()
		return
	}
	s.power = model.ElectricPowerSource(motor)
}

// SetPart selects a part for its category. A nil part removes the
// category's selection entirely. Single-valued categories are replaced;
// multi-valued categories append. Selecting a part that is already
// selected toggles it off. Parts whose category conflicts with the
// current power source fuel type are rejected here, before the
// compatibility engine ever sees them.
func (s *Session) SetPart(category model.PartCategory, part *model.Part) error {
	if part == nil {
		s.selection.Drop(category)
		return nil
	}
	if part.Category != category {
		return fmt.Errorf("part %q belongs to category %q, not %q", part.ID, part.Category, category)
	}
	if err := s.checkFuel(category); err != nil {
		return err
	}

	// Same id twice is a deselect.
	if s.selection.Contains(category, part.ID) {
		s.selection.Remove(category, part.ID)
		return nil
	}

	if category.MultiValued() {
		s.selection.Add(*part)
	} else {
		s.selection.Replace(*part)
	}
	return nil
}

// AddPart appends a part to its category regardless of the category's
// single/multi setting, deduplicating by id.
func (s *Session) AddPart(part *model.Part) error {
	if part == nil {
		return fmt.Errorf("part cannot be nil")
	}
	if err := s.checkFuel(part.Category); err != nil {
		return err
	}
	s.selection.Add(*part)
	return nil
}

// RemovePart removes one specific part by id.
func (s *Session) RemovePart(category model.PartCategory, id string) bool {
	return s.selection.Remove(category, id)
}

// Clear resets the power source and empties the selection.
func (s *Session) Clear() {
	s.power = model.NoPowerSource()
	s.selection.Clear()
}

// TotalPrice sums the power source price and all selected part prices.
// Unknown prices count as zero; hasUnpriced reports whether any selected
// item had no price, so callers can show "contact for price".
func (s *Session) TotalPrice() (total float64, hasUnpriced bool) {
	if !s.power.IsNone() {
		price, ok := s.power.Price()
		if ok {
			total += price
		} else {
			hasUnpriced = true
		}
	}
	for _, part := range s.selection.All() {
		if part.Price != nil {
			total += *part.Price
		} else {
			hasUnpriced = true
		}
	}
	return total, hasUnpriced
}

// PartIDs returns category -> selected part ids, for persistence.
func (s *Session) PartIDs() map[model.PartCategory][]string {
	out := make(map[model.PartCategory][]string)
	for _, category := range s.selection.Categories() {
		parts := s.selection.Parts(category)
		ids := make([]string, 0, len(parts))
		for _, p := range parts {
			ids = append(ids, p.ID)
		}
		out[category] = ids
	}
	return out
}

// Serialize converts the session to its persisted form.
func (s *Session) Serialize() model.Build {
	record := model.Build{
		ID:          s.id,
		Name:        s.name,
		Description: s.description,
		Parts:       s.PartIDs(),
		UpdatedAt:   time.Now(),
	}
	if engine, ok := s.power.Engine(); ok {
		id := engine.ID
		record.EngineID = &id
	}
	if motor, ok := s.power.Motor(); ok {
		id := motor.ID
		record.MotorID = &id
	}
	record.TotalPrice, _ = s.TotalPrice()
	return record
}

func (s *Session) checkFuel(category model.PartCategory) error {
	if !category.Valid() {
		return fmt.Errorf("unknown part category %q", category)
	}
	if !category.CompatibleWith(s.power.Fuel()) {
		return fmt.Errorf("%w: %s parts with a %s power source",
			common.ErrFuelMismatch, category, s.power.Fuel())
	}
	return nil
}
