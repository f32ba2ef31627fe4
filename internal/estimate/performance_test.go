package estimate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kartwerks/kartpick/internal/model"
)

func TestTierFor(t *testing.T) {
	tests := []struct {
		wantName   string
		horsepower float64
	}{
		{"Entry-Level", 0.5},
		{"Entry-Level", 5.9},
		{"Mid-Range", 6},
		{"Mid-Range", 9.9},
		{"High Performance", 10},
		{"High Performance", 22},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.wantName, TierFor(tt.horsepower).Name, "hp=%g", tt.horsepower)
	}
}

func TestBuildHP(t *testing.T) {
	engine := &model.Engine{Horsepower: 6.5}

	t.Run("base only", func(t *testing.T) {
		hp, ok := BuildHP(engine, nil)
		require.True(t, ok)
		assert.InDelta(t, 6.5, hp, 0.001)
	})

	t.Run("with contributions", func(t *testing.T) {
		parts := []model.Part{
			{Category: model.CategoryCarburetor, Specifications: model.Specifications{"hp_contribution": 1.0}},
			{Category: model.CategoryExhaust, Specifications: model.Specifications{"hp_contribution": 0.5}},
			{Category: model.CategoryAirFilter},
		}
		hp, ok := BuildHP(engine, parts)
		require.True(t, ok)
		assert.InDelta(t, 8.0, hp, 0.001)
	})

	t.Run("no engine", func(t *testing.T) {
		_, ok := BuildHP(nil, nil)
		assert.False(t, ok)
	})
}

func TestBuildTorque(t *testing.T) {
	t.Run("rated torque", func(t *testing.T) {
		tq, ok := BuildTorque(&model.Engine{Horsepower: 6.5, Torque: 8.1}, nil)
		require.True(t, ok)
		assert.InDelta(t, 8.1, tq, 0.001)
	})

	t.Run("falls back to hp at 3600 rpm", func(t *testing.T) {
		tq, ok := BuildTorque(&model.Engine{Horsepower: 6.5}, nil)
		require.True(t, ok)
		// 6.5 * 5252 / 3600 = 9.48...
		assert.InDelta(t, 9.5, tq, 0.001)
	})
}

func TestBuildWeight(t *testing.T) {
	t.Run("default engine weight", func(t *testing.T) {
		power := model.GasPowerSource(&model.Engine{Horsepower: 6.5})
		assert.InDelta(t, 140, BuildWeight(power, nil), 0.001)
	})

	t.Run("rated engine weight wins", func(t *testing.T) {
		w := 38.0
		power := model.GasPowerSource(&model.Engine{Horsepower: 6.5, WeightLbs: &w})
		assert.InDelta(t, 138, BuildWeight(power, nil), 0.001)
	})

	t.Run("part weight sources", func(t *testing.T) {
		parts := []model.Part{
			{Category: model.CategoryAxle, Specifications: model.Specifications{"weight_lbs": 6.0}},
			{Category: model.CategorySprocket, Specifications: model.Specifications{"weight_oz": 8.0}},
			{Category: model.CategoryClutch}, // estimated 2.5
		}
		// 100 + 6 + 0.5 + 2.5 = 109
		assert.InDelta(t, 109, BuildWeight(model.NoPowerSource(), parts), 0.001)
	})
}

func TestTopSpeedAndAccel(t *testing.T) {
	speed, ok := TopSpeed(6.5, 140, 6)
	require.True(t, ok)
	assert.InDelta(t, 155, speed, 0.001)

	_, ok = TopSpeed(6.5, 140, 0)
	assert.False(t, ok)

	ptw, ok := PowerToWeight(6.5, 140)
	require.True(t, ok)
	assert.InDelta(t, 4.6, ptw, 0.001)

	a20, ok := Accel0to20(6.5, 140)
	require.True(t, ok)
	assert.InDelta(t, 6.3, a20, 0.001)

	a30, ok := Accel0to30(6.5, 140)
	require.True(t, ok)
	assert.InDelta(t, 10.4, a30, 0.001)

	// High power-to-weight builds pin at the clamp floor.
	a20, _ = Accel0to20(22, 150)
	assert.InDelta(t, 2, a20, 0.001)
	a30, _ = Accel0to30(22, 150)
	assert.InDelta(t, 3, a30, 0.001)
}

func TestCostPerHP(t *testing.T) {
	price := 349.99
	got, ok := CostPerHP(&price, 6.5)
	require.True(t, ok)
	assert.InDelta(t, 53.84, got, 0.01)

	_, ok = CostPerHP(nil, 6.5)
	assert.False(t, ok)

	_, ok = CostPerHP(&price, 0)
	assert.False(t, ok)
}

func TestGearRatioFromSelection(t *testing.T) {
	t.Run("clutch and sprocket", func(t *testing.T) {
		sel := model.NewSelection()
		sel.Add(model.Part{
			ID:             "cl-1",
			Category:       model.CategoryClutch,
			Specifications: model.Specifications{"sprocket_teeth": 12.0},
		})
		sel.Add(model.Part{
			ID:             "sp-1",
			Category:       model.CategorySprocket,
			Specifications: model.Specifications{"teeth": 72.0},
		})
		assert.InDelta(t, 6.0, GearRatioFromSelection(sel), 0.001)
	})

	t.Run("defaults to 1:1", func(t *testing.T) {
		assert.InDelta(t, 1.0, GearRatioFromSelection(model.NewSelection()), 0.001)
	})
}

func TestPerformance(t *testing.T) {
	engine := &model.Engine{
		ID:         "eng-1",
		Name:       "Predator 212",
		Horsepower: 6.5,
		Torque:     8.1,
	}
	sel := model.NewSelection()
	sel.Add(model.Part{
		ID:             "cl-1",
		Category:       model.CategoryClutch,
		Specifications: model.Specifications{"sprocket_teeth": 12.0},
	})
	sel.Add(model.Part{
		ID:             "sp-1",
		Category:       model.CategorySprocket,
		Specifications: model.Specifications{"teeth": 72.0},
	})

	m := Performance(model.GasPowerSource(engine), sel)
	require.True(t, m.HasPower)
	assert.InDelta(t, 6.5, m.HP, 0.001)
	assert.InDelta(t, 8.1, m.Torque, 0.001)
	assert.InDelta(t, 6.0, m.GearRatio, 0.001)
	// 100 base + 40 default engine + 2.5 clutch + 0.5 sprocket
	assert.InDelta(t, 143, m.WeightLbs, 0.001)
	require.True(t, m.HasTopSpeed)
	assert.InDelta(t, 152, m.TopSpeed, 0.001)
	assert.Equal(t, "Mid-Range", m.Tier.Name)

	empty := Performance(model.NoPowerSource(), model.NewSelection())
	assert.False(t, empty.HasPower)
	assert.False(t, empty.HasTopSpeed)
}
