package catalog

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/kartwerks/kartpick/internal/model"
	"github.com/kartwerks/kartpick/internal/service"
)

// Seed is a parsed catalog seed file. Records are validated and carry
// assigned ids; they are ready to save.
type Seed struct {
	Engines []model.Engine
	Motors  []model.Motor
	Parts   []model.Part
	Rules   []model.CompatibilityRule
}

// Len returns the total record count across all sections.
func (s *Seed) Len() int {
	return len(s.Engines) + len(s.Motors) + len(s.Parts) + len(s.Rules)
}

// seedFile is the YAML shape of a seed file. All sections are optional.
type seedFile struct {
	Engines []seedEngine `yaml:"engines"`
	Motors  []seedMotor  `yaml:"motors"`
	Parts   []seedPart   `yaml:"parts"`
	Rules   []seedRule   `yaml:"rules"`
}

type seedEngine struct {
	ID             string   `yaml:"id"`
	Slug           string   `yaml:"slug"`
	Name           string   `yaml:"name"`
	Brand          string   `yaml:"brand"`
	MountType      string   `yaml:"mount_type"`
	ShaftType      string   `yaml:"shaft_type"`
	ShaftKeyway    *string  `yaml:"shaft_keyway"`
	DisplacementCC float64  `yaml:"displacement_cc"`
	Horsepower     float64  `yaml:"horsepower"`
	Torque         float64  `yaml:"torque"`
	ShaftDiameter  float64  `yaml:"shaft_diameter"`
	ShaftLength    float64  `yaml:"shaft_length"`
	WeightLbs      *float64 `yaml:"weight_lbs"`
	Price          *float64 `yaml:"price"`
	Active         *bool    `yaml:"active"`
}

type seedMotor struct {
	ID            string   `yaml:"id"`
	Slug          string   `yaml:"slug"`
	Name          string   `yaml:"name"`
	Brand         string   `yaml:"brand"`
	ShaftType     string   `yaml:"shaft_type"`
	Voltage       float64  `yaml:"voltage"`
	PowerKW       float64  `yaml:"power_kw"`
	TorqueLbFt    float64  `yaml:"torque_lbft"`
	PeakPowerKW   *float64 `yaml:"peak_power_kw"`
	ShaftDiameter *float64 `yaml:"shaft_diameter"`
	WeightLbs     *float64 `yaml:"weight_lbs"`
	Price         *float64 `yaml:"price"`
	Active        *bool    `yaml:"active"`
}

type seedPart struct {
	Specifications map[string]any `yaml:"specifications"`
	ID             string         `yaml:"id"`
	Slug           string         `yaml:"slug"`
	Name           string         `yaml:"name"`
	Brand          string         `yaml:"brand"`
	Category       string         `yaml:"category"`
	Price          *float64       `yaml:"price"`
	Active         *bool          `yaml:"active"`
}

type seedRule struct {
	ID             string        `yaml:"id"`
	Name           string        `yaml:"name"`
	AppliesTo      string        `yaml:"applies_to"`
	SourceCategory string        `yaml:"source_category"`
	TargetCategory string        `yaml:"target_category"`
	Condition      seedCondition `yaml:"condition"`
	Message        string        `yaml:"message"`
	Severity       string        `yaml:"severity"`
	Active         *bool         `yaml:"active"`
}

type seedCondition struct {
	SourceKey  string   `yaml:"source_key"`
	TargetKey  string   `yaml:"target_key"`
	Comparison string   `yaml:"comparison"`
	Tolerance  *float64 `yaml:"tolerance"`
}

// ParseSeedFile reads and parses a seed file from disk.
func ParseSeedFile(path string) (*Seed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()

	seed, err := ParseSeed(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return seed, nil
}

// ParseSeed parses seed YAML. Unknown fields are rejected so typos in
// hand-written seed files fail loudly instead of silently dropping data.
// Records without an id get a generated one; records default to active.
func ParseSeed(r io.Reader) (*Seed, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var file seedFile
	if err := decoder.Decode(&file); err != nil {
		if err == io.EOF {
			return &Seed{}, nil
		}
		return nil, fmt.Errorf("invalid seed YAML: %w", err)
	}

	now := time.Now().UTC()
	seed := &Seed{}

	for i, se := range file.Engines {
		engine := model.Engine{
			ID:             orGenerated(se.ID),
			Slug:           se.Slug,
			Name:           se.Name,
			Brand:          se.Brand,
			MountType:      se.MountType,
			ShaftType:      model.ShaftType(se.ShaftType),
			ShaftKeyway:    se.ShaftKeyway,
			DisplacementCC: se.DisplacementCC,
			Horsepower:     se.Horsepower,
			Torque:         se.Torque,
			ShaftDiameter:  se.ShaftDiameter,
			ShaftLength:    se.ShaftLength,
			WeightLbs:      se.WeightLbs,
			Price:          se.Price,
			IsActive:       activeDefault(se.Active),
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := engine.Validate(); err != nil {
			return nil, fmt.Errorf("engines[%d] (%s): %w", i, se.Name, err)
		}
		seed.Engines = append(seed.Engines, engine)
	}

	for i, sm := range file.Motors {
		motor := model.Motor{
			ID:            orGenerated(sm.ID),
			Slug:          sm.Slug,
			Name:          sm.Name,
			Brand:         sm.Brand,
			ShaftType:     model.ShaftType(sm.ShaftType),
			Voltage:       sm.Voltage,
			PowerKW:       sm.PowerKW,
			TorqueLbFt:    sm.TorqueLbFt,
			PeakPowerKW:   sm.PeakPowerKW,
			ShaftDiameter: sm.ShaftDiameter,
			WeightLbs:     sm.WeightLbs,
			Price:         sm.Price,
			IsActive:      activeDefault(sm.Active),
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := motor.Validate(); err != nil {
			return nil, fmt.Errorf("motors[%d] (%s): %w", i, sm.Name, err)
		}
		seed.Motors = append(seed.Motors, motor)
	}

	for i, sp := range file.Parts {
		part := model.Part{
			ID:             orGenerated(sp.ID),
			Slug:           sp.Slug,
			Name:           sp.Name,
			Brand:          sp.Brand,
			Category:       model.PartCategory(sp.Category),
			Specifications: model.Specifications(sp.Specifications),
			Price:          sp.Price,
			IsActive:       activeDefault(sp.Active),
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := part.Validate(); err != nil {
			return nil, fmt.Errorf("parts[%d] (%s): %w", i, sp.Name, err)
		}
		seed.Parts = append(seed.Parts, part)
	}

	for i, sr := range file.Rules {
		rule := model.CompatibilityRule{
			ID:             orGenerated(sr.ID),
			Name:           sr.Name,
			AppliesTo:      model.FuelTag(sr.AppliesTo),
			SourceCategory: model.PartCategory(sr.SourceCategory),
			TargetCategory: model.PartCategory(sr.TargetCategory),
			Condition: model.RuleCondition{
				SourceKey:  sr.Condition.SourceKey,
				TargetKey:  sr.Condition.TargetKey,
				Comparison: model.RuleComparison(sr.Condition.Comparison),
				Tolerance:  sr.Condition.Tolerance,
			},
			Message:   sr.Message,
			Severity:  model.Severity(sr.Severity),
			IsActive:  activeDefault(sr.Active),
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := rule.Validate(); err != nil {
			return nil, fmt.Errorf("rules[%d] (%s): %w", i, sr.Name, err)
		}
		seed.Rules = append(seed.Rules, rule)
	}

	return seed, nil
}

// Import saves every seed record through the store. onRecord, when
// non-nil, is called after each saved record so callers can drive a
// progress display.
func Import(ctx context.Context, store service.CatalogStore, seed *Seed, onRecord func()) error {
	tick := func() {
		if onRecord != nil {
			onRecord()
		}
	}

	for i := range seed.Engines {
		if err := store.SaveEngine(ctx, &seed.Engines[i]); err != nil {
			return fmt.Errorf("failed to save engine %s: %w", seed.Engines[i].Name, err)
		}
		tick()
	}
	for i := range seed.Motors {
		if err := store.SaveMotor(ctx, &seed.Motors[i]); err != nil {
			return fmt.Errorf("failed to save motor %s: %w", seed.Motors[i].Name, err)
		}
		tick()
	}
	for i := range seed.Parts {
		if err := store.SavePart(ctx, &seed.Parts[i]); err != nil {
			return fmt.Errorf("failed to save part %s: %w", seed.Parts[i].Name, err)
		}
		tick()
	}
	for i := range seed.Rules {
		if err := store.SaveCompatibilityRule(ctx, &seed.Rules[i]); err != nil {
			return fmt.Errorf("failed to save rule %s: %w", seed.Rules[i].Name, err)
		}
		tick()
	}
	return nil
}

func orGenerated(id string) string {
	if id != "" {
		return id
	}
	return uuid.New().String()
}

func activeDefault(active *bool) bool {
	return active == nil || *active
}
