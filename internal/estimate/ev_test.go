package estimate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kartwerks/kartpick/internal/model"
)

func TestRangeMiles(t *testing.T) {
	tests := []struct {
		name      string
		voltage   float64
		ampHours  float64
		powerKW   float64
		useFactor float64
		want      float64
		wantOK    bool
	}{
		{
			name:      "48V 20Ah moderate use",
			voltage:   48,
			ampHours:  20,
			powerKW:   2,
			useFactor: UseFactorModerate,
			want:      1.2,
			wantOK:    true,
		},
		{
			name:      "48V 20Ah light use",
			voltage:   48,
			ampHours:  20,
			powerKW:   2,
			useFactor: UseFactorLight,
			want:      1.7,
			wantOK:    true,
		},
		{
			name:      "72V 50Ah heavy use",
			voltage:   72,
			ampHours:  50,
			powerKW:   5,
			useFactor: UseFactorHeavy,
			want:      3.2,
			wantOK:    true,
		},
		{
			name:      "missing capacity",
			voltage:   48,
			ampHours:  0,
			powerKW:   2,
			useFactor: UseFactorModerate,
			wantOK:    false,
		},
		{
			name:      "missing motor power",
			voltage:   48,
			ampHours:  20,
			powerKW:   0,
			useFactor: UseFactorModerate,
			wantOK:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := RangeMiles(tt.voltage, tt.ampHours, tt.powerKW, DefaultEfficiency, tt.useFactor)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.InDelta(t, tt.want, got, 0.001)
			}
		})
	}
}

func TestRuntimeMinutes(t *testing.T) {
	got, ok := RuntimeMinutes(48, 20, 2, DefaultEfficiency)
	require.True(t, ok)
	assert.Equal(t, 12, got)

	_, ok = RuntimeMinutes(48, 0, 2, DefaultEfficiency)
	assert.False(t, ok)

	_, ok = RuntimeMinutes(0, 20, 2, DefaultEfficiency)
	assert.False(t, ok)
}

func TestChargingHours(t *testing.T) {
	got, ok := ChargingHours(20, 5)
	require.True(t, ok)
	assert.InDelta(t, 4.8, got, 0.001)

	_, ok = ChargingHours(20, 0)
	assert.False(t, ok, "unknown charger current must not divide by zero")

	_, ok = ChargingHours(0, 5)
	assert.False(t, ok)
}

func TestElectric(t *testing.T) {
	motor := &model.Motor{
		ID:      "mtr-1",
		Name:    "2kW BLDC",
		Voltage: 48,
		PowerKW: 2,
	}
	power := model.ElectricPowerSource(motor)

	t.Run("battery and charger from selection", func(t *testing.T) {
		sel := model.NewSelection()
		sel.Add(model.Part{
			ID:       "bat-1",
			Name:     "48V 20Ah pack",
			Category: model.CategoryBattery,
			Specifications: model.Specifications{
				"capacity_ah": 20.0,
			},
		})
		sel.Add(model.Part{
			ID:       "chg-1",
			Name:     "5A charger",
			Category: model.CategoryCharger,
			Specifications: model.Specifications{
				"current_output": 5.0,
			},
		})

		est := Electric(power, sel, 0)
		require.True(t, est.HasRange)
		assert.InDelta(t, 20.0, est.AmpHours, 0.001)
		assert.InDelta(t, 1.2, est.Range.Moderate, 0.001)
		assert.InDelta(t, 1.7, est.Range.Light, 0.001)
		assert.Equal(t, 12, est.RuntimeMinutes)
		require.True(t, est.HasCharging)
		assert.InDelta(t, 4.8, est.ChargingHours, 0.001)
	})

	t.Run("capacity override wins over battery spec", func(t *testing.T) {
		sel := model.NewSelection()
		sel.Add(model.Part{
			ID:             "bat-1",
			Name:           "48V 20Ah pack",
			Category:       model.CategoryBattery,
			Specifications: model.Specifications{"capacity_ah": 20.0},
		})

		est := Electric(power, sel, 40)
		require.True(t, est.HasRange)
		assert.InDelta(t, 40.0, est.AmpHours, 0.001)
		assert.InDelta(t, 2.4, est.Range.Moderate, 0.001)
	})

	t.Run("no battery and no override yields nothing", func(t *testing.T) {
		est := Electric(power, model.NewSelection(), 0)
		assert.False(t, est.HasRange)
		assert.False(t, est.HasCharging)
	})

	t.Run("gas build yields nothing", func(t *testing.T) {
		engine := &model.Engine{ID: "eng-1", Name: "Predator 212", Horsepower: 6.5}
		est := Electric(model.GasPowerSource(engine), model.NewSelection(), 20)
		assert.False(t, est.HasRange)
	})
}
