package catalog

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kartwerks/kartpick/internal/model"
	"github.com/kartwerks/kartpick/internal/service"
)

const sampleSeed = `
engines:
  - id: predator-212
    slug: predator-212
    name: Predator 212
    brand: Harbor Freight
    shaft_type: straight
    displacement_cc: 212
    horsepower: 6.5
    torque: 8.1
    shaft_diameter: 0.75
    shaft_length: 2.43
    price: 189.99
motors:
  - name: 2kW BLDC
    shaft_type: straight
    voltage: 48
    power_kw: 2
    torque_lbft: 6.2
    price: 320
parts:
  - name: Max-Torque SS Clutch
    category: clutch
    price: 35.99
    specifications:
      bore_diameter: 0.75
      teeth: 12
      pitch: "#35"
  - name: Retired Clutch
    category: clutch
    active: false
rules:
  - name: Chain pitch must match sprocket
    applies_to: gas
    source_category: chain
    target_category: sprocket
    condition:
      source_key: pitch
      target_key: pitch
    message: Chain and sprocket pitch must match
    severity: error
`

func TestParseSeed(t *testing.T) {
	seed, err := ParseSeed(strings.NewReader(sampleSeed))
	require.NoError(t, err)
	assert.Equal(t, 5, seed.Len())

	require.Len(t, seed.Engines, 1)
	engine := seed.Engines[0]
	assert.Equal(t, "predator-212", engine.ID)
	assert.Equal(t, model.ShaftStraight, engine.ShaftType)
	require.NotNil(t, engine.Price)
	assert.InDelta(t, 189.99, *engine.Price, 0.001)
	assert.True(t, engine.IsActive, "active defaults to true")
	assert.False(t, engine.CreatedAt.IsZero())

	// Records without an id get a generated one.
	require.Len(t, seed.Motors, 1)
	assert.NotEmpty(t, seed.Motors[0].ID)

	require.Len(t, seed.Parts, 2)
	part := seed.Parts[0]
	assert.Equal(t, model.CategoryClutch, part.Category)
	bore, ok := part.Specifications.Number("bore_diameter")
	require.True(t, ok)
	assert.InDelta(t, 0.75, bore, 0.001)
	assert.False(t, seed.Parts[1].IsActive, "explicit active: false is honored")

	require.Len(t, seed.Rules, 1)
	rule := seed.Rules[0]
	assert.Equal(t, model.FuelGas, rule.AppliesTo)
	assert.Equal(t, model.SeverityError, rule.Severity)
	assert.Equal(t, "pitch", rule.Condition.SourceKey)
}

func TestParseSeedEmpty(t *testing.T) {
	seed, err := ParseSeed(strings.NewReader(""))
	require.NoError(t, err)
	assert.Zero(t, seed.Len())
}

func TestParseSeedRejectsUnknownFields(t *testing.T) {
	_, err := ParseSeed(strings.NewReader(`
parts:
  - name: Clutch
    category: clutch
    pirce: 35.99
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid seed YAML")
}

func TestParseSeedValidationContext(t *testing.T) {
	_, err := ParseSeed(strings.NewReader(`
parts:
  - name: Flux Capacitor
    category: flux_capacitor
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parts[0] (Flux Capacitor)")
}

// recordingStore captures saves so Import can be tested without a database.
type recordingStore struct {
	service.CatalogStore

	engines []string
	motors  []string
	parts   []string
	rules   []string
}

func (r *recordingStore) SaveEngine(_ context.Context, engine *model.Engine) error {
	r.engines = append(r.engines, engine.Name)
	return nil
}

func (r *recordingStore) SaveMotor(_ context.Context, motor *model.Motor) error {
	r.motors = append(r.motors, motor.Name)
	return nil
}

func (r *recordingStore) SavePart(_ context.Context, part *model.Part) error {
	r.parts = append(r.parts, part.Name)
	return nil
}

func (r *recordingStore) SaveCompatibilityRule(_ context.Context, rule *model.CompatibilityRule) error {
	r.rules = append(r.rules, rule.Name)
	return nil
}

func TestImport(t *testing.T) {
	seed, err := ParseSeed(strings.NewReader(sampleSeed))
	require.NoError(t, err)

	store := &recordingStore{}
	saved := 0
	err = Import(context.Background(), store, seed, func() { saved++ })
	require.NoError(t, err)

	assert.Equal(t, seed.Len(), saved)
	assert.Equal(t, []string{"Predator 212"}, store.engines)
	assert.Equal(t, []string{"2kW BLDC"}, store.motors)
	assert.Equal(t, []string{"Max-Torque SS Clutch", "Retired Clutch"}, store.parts)
	assert.Equal(t, []string{"Chain pitch must match sprocket"}, store.rules)
}
