package build

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kartwerks/kartpick/internal/common"
	"github.com/kartwerks/kartpick/internal/model"
)

func gasEngine(id string, price float64) *model.Engine {
	return &model.Engine{
		ID:            id,
		Name:          "Engine " + id,
		ShaftType:     model.ShaftStraight,
		Horsepower:    6.5,
		Torque:        8.1,
		ShaftDiameter: 0.75,
		Price:         &price,
		IsActive:      true,
	}
}

func evMotor(id string, price float64) *model.Motor {
	return &model.Motor{
		ID:       id,
		Name:     "Motor " + id,
		Voltage:  48,
		PowerKW:  2,
		Price:    &price,
		IsActive: true,
	}
}

func catalogPart(id string, category model.PartCategory, price float64) *model.Part {
	return &model.Part{
		ID:       id,
		Name:     "Part " + id,
		Category: category,
		Price:    &price,
		IsActive: true,
	}
}

func TestPowerSourceMutualExclusion(t *testing.T) {
	s := NewSession()

	s.SetEngine(gasEngine("eng-1", 200))
	_, isEngine := s.PowerSource().Engine()
	assert.True(t, isEngine)

	s.SetMotor(evMotor("mtr-1", 300))
	_, isEngine = s.PowerSource().Engine()
	_, isMotor := s.PowerSource().Motor()
	assert.False(t, isEngine, "selecting a motor must clear the engine")
	assert.True(t, isMotor)

	s.SetEngine(gasEngine("eng-1", 200))
	_, isMotor = s.PowerSource().Motor()
	assert.False(t, isMotor, "selecting an engine must clear the motor")
}

func TestPowerSourceToggle(t *testing.T) {
	s := NewSession()
	engine := gasEngine("eng-1", 200)

	s.SetEngine(engine)
	assert.False(t, s.PowerSource().IsNone())

	// Same id again deselects.
	s.SetEngine(engine)
	assert.True(t, s.PowerSource().IsNone())

	motor := evMotor("mtr-1", 300)
	s.SetMotor(motor)
	s.SetMotor(motor)
	assert.True(t, s.PowerSource().IsNone())
}

func TestSetPartToggleAndReplace(t *testing.T) {
	s := NewSession()

	// Single-valued category replaces.
	require.NoError(t, s.SetPart(model.CategoryAxle, catalogPart("a1", model.CategoryAxle, 50)))
	require.NoError(t, s.SetPart(model.CategoryAxle, catalogPart("a2", model.CategoryAxle, 60)))
	axles := s.Selection().Parts(model.CategoryAxle)
	require.Len(t, axles, 1)
	assert.Equal(t, "a2", axles[0].ID)

	// Same id toggles off.
	require.NoError(t, s.SetPart(model.CategoryAxle, catalogPart("a2", model.CategoryAxle, 60)))
	assert.Empty(t, s.Selection().Parts(model.CategoryAxle))

	// Multi-valued category appends.
	require.NoError(t, s.SetPart(model.CategoryWheel, catalogPart("w1", model.CategoryWheel, 20)))
	require.NoError(t, s.SetPart(model.CategoryWheel, catalogPart("w2", model.CategoryWheel, 20)))
	assert.Len(t, s.Selection().Parts(model.CategoryWheel), 2)

	// Nil part clears the category.
	require.NoError(t, s.SetPart(model.CategoryWheel, nil))
	assert.Empty(t, s.Selection().Parts(model.CategoryWheel))
}

func TestSetPartCategoryMismatch(t *testing.T) {
	s := NewSession()
	err := s.SetPart(model.CategoryAxle, catalogPart("c1", model.CategoryClutch, 30))
	assert.Error(t, err)
}

func TestFuelGating(t *testing.T) {
	s := NewSession()

	// No power source selected: everything is allowed.
	require.NoError(t, s.SetPart(model.CategoryClutch, catalogPart("c1", model.CategoryClutch, 30)))
	require.NoError(t, s.SetPart(model.CategoryBattery, catalogPart("b1", model.CategoryBattery, 150)))

	s.Clear()
	s.SetMotor(evMotor("mtr-1", 300))

	err := s.SetPart(model.CategoryCarburetor, catalogPart("carb", model.CategoryCarburetor, 40))
	assert.ErrorIs(t, err, common.ErrFuelMismatch, "gas-only parts must be rejected on an electric build")

	require.NoError(t, s.SetPart(model.CategoryBattery, catalogPart("b1", model.CategoryBattery, 150)))
	require.NoError(t, s.SetPart(model.CategoryAxle, catalogPart("a1", model.CategoryAxle, 50)))
}

func TestTotalPrice(t *testing.T) {
	s := NewSession()
	s.SetEngine(gasEngine("eng-1", 200))
	require.NoError(t, s.SetPart(model.CategoryClutch, catalogPart("c1", model.CategoryClutch, 35.50)))

	total, hasUnpriced := s.TotalPrice()
	assert.InDelta(t, 235.50, total, 0.001)
	assert.False(t, hasUnpriced)

	unpriced := &model.Part{ID: "a1", Name: "Axle", Category: model.CategoryAxle, IsActive: true}
	require.NoError(t, s.SetPart(model.CategoryAxle, unpriced))

	total, hasUnpriced = s.TotalPrice()
	assert.InDelta(t, 235.50, total, 0.001, "unpriced parts count as zero")
	assert.True(t, hasUnpriced)
}

func TestSerialize(t *testing.T) {
	s := NewSession()
	s.SetName("Weekend racer")
	s.SetEngine(gasEngine("eng-1", 200))
	require.NoError(t, s.SetPart(model.CategoryClutch, catalogPart("c1", model.CategoryClutch, 35)))
	require.NoError(t, s.SetPart(model.CategoryWheel, catalogPart("w1", model.CategoryWheel, 20)))
	require.NoError(t, s.SetPart(model.CategoryWheel, catalogPart("w2", model.CategoryWheel, 20)))

	record := s.Serialize()
	require.NoError(t, record.Validate())
	assert.Equal(t, "Weekend racer", record.Name)
	require.NotNil(t, record.EngineID)
	assert.Equal(t, "eng-1", *record.EngineID)
	assert.Nil(t, record.MotorID)
	assert.Equal(t, []string{"c1"}, record.Parts[model.CategoryClutch])
	assert.Equal(t, []string{"w1", "w2"}, record.Parts[model.CategoryWheel])
	assert.InDelta(t, 275, record.TotalPrice, 0.001)
}

func TestClear(t *testing.T) {
	s := NewSession()
	s.SetEngine(gasEngine("eng-1", 200))
	require.NoError(t, s.SetPart(model.CategoryClutch, catalogPart("c1", model.CategoryClutch, 35)))

	s.Clear()
	assert.True(t, s.PowerSource().IsNone())
	assert.Zero(t, s.Selection().Len())
}
