// Package catalog provides the immutable catalog snapshot the engines
// compute against, plus seed-file loading for imports. A snapshot is
// fetched once per session; refreshing means fetching a new snapshot.
package catalog

import (
	"context"
	"fmt"
	"sort"

	"github.com/kartwerks/kartpick/internal/model"
	"github.com/kartwerks/kartpick/internal/service"
)

// Snapshot is a read-only view of the catalog. An empty snapshot is a
// valid input everywhere: no warnings, zero cost.
type Snapshot struct {
	enginesByID map[string]*model.Engine
	motorsByID  map[string]*model.Motor
	partsByID   map[string]*model.Part
	engines     []model.Engine
	motors      []model.Motor
	parts       []model.Part
	rules       []model.CompatibilityRule
}

// NewSnapshot builds a snapshot from already-fetched records. Inactive
// records and inactive rules are filtered out.
func NewSnapshot(engines []model.Engine, motors []model.Motor, parts []model.Part, rules []model.CompatibilityRule) *Snapshot {
	s := &Snapshot{
		enginesByID: make(map[string]*model.Engine),
		motorsByID:  make(map[string]*model.Motor),
		partsByID:   make(map[string]*model.Part),
	}
	for _, e := range engines {
		if !e.IsActive {
			continue
		}
		s.engines = append(s.engines, e)
	}
	for i := range s.engines {
		s.enginesByID[s.engines[i].ID] = &s.engines[i]
	}
	for _, m := range motors {
		if !m.IsActive {
			continue
		}
		s.motors = append(s.motors, m)
	}
	for i := range s.motors {
		s.motorsByID[s.motors[i].ID] = &s.motors[i]
	}
	for _, p := range parts {
		if !p.IsActive {
			continue
		}
		s.parts = append(s.parts, p)
	}
	for i := range s.parts {
		s.partsByID[s.parts[i].ID] = &s.parts[i]
	}
	for _, r := range rules {
		if r.IsActive {
			s.rules = append(s.rules, r)
		}
	}
	return s
}

// Load fetches the full catalog from the store and snapshots it.
func Load(ctx context.Context, store service.CatalogStore) (*Snapshot, error) {
	engines, err := store.GetEngines(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load engines: %w", err)
	}
	motors, err := store.GetMotors(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load motors: %w", err)
	}
	parts, err := store.GetParts(ctx, service.PartFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load parts: %w", err)
	}
	rules, err := store.GetCompatibilityRules(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load compatibility rules: %w", err)
	}
	return NewSnapshot(engines, motors, parts, rules), nil
}

// Engines returns all active engines.
func (s *Snapshot) Engines() []model.Engine { return s.engines }

// Motors returns all active motors.
func (s *Snapshot) Motors() []model.Motor { return s.motors }

// Parts returns all active parts.
func (s *Snapshot) Parts() []model.Part { return s.parts }

// Rules returns all active compatibility rules.
func (s *Snapshot) Rules() []model.CompatibilityRule { return s.rules }

// EngineByID looks up an engine.
func (s *Snapshot) EngineByID(id string) (*model.Engine, bool) {
	e, ok := s.enginesByID[id]
	return e, ok
}

// MotorByID looks up a motor.
func (s *Snapshot) MotorByID(id string) (*model.Motor, bool) {
	m, ok := s.motorsByID[id]
	return m, ok
}

// PartByID looks up a part.
func (s *Snapshot) PartByID(id string) (*model.Part, bool) {
	p, ok := s.partsByID[id]
	return p, ok
}

// PartsByCategory returns the active parts in one category.
func (s *Snapshot) PartsByCategory(category model.PartCategory) []model.Part {
	var out []model.Part
	for _, p := range s.parts {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// CheaperAlternatives returns up to limit parts in the same category as
// the given part with a lower price, cheapest first. Unpriced parts are
// never suggested.
func (s *Snapshot) CheaperAlternatives(part model.Part, limit int) []model.Part {
	if part.Price == nil || limit <= 0 {
		return nil
	}
	var out []model.Part
	for _, candidate := range s.PartsByCategory(part.Category) {
		if candidate.ID == part.ID || candidate.Price == nil {
			continue
		}
		if *candidate.Price < *part.Price {
			out = append(out, candidate)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return *out[i].Price < *out[j].Price
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
