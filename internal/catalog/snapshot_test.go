package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kartwerks/kartpick/internal/model"
)

func snapPart(id string, category model.PartCategory, price *float64, active bool) model.Part {
	return model.Part{ID: id, Name: "Part " + id, Category: category, Price: price, IsActive: active}
}

func price(v float64) *float64 { return &v }

func TestSnapshotFiltersInactive(t *testing.T) {
	snap := NewSnapshot(
		[]model.Engine{
			{ID: "e1", Name: "Active", IsActive: true},
			{ID: "e2", Name: "Retired", IsActive: false},
		},
		[]model.Motor{
			{ID: "m1", Name: "Active", IsActive: true},
			{ID: "m2", Name: "Retired", IsActive: false},
		},
		[]model.Part{
			snapPart("p1", model.CategoryClutch, price(30), true),
			snapPart("p2", model.CategoryClutch, price(40), false),
		},
		[]model.CompatibilityRule{
			{ID: "r1", IsActive: true},
			{ID: "r2", IsActive: false},
		},
	)

	assert.Len(t, snap.Engines(), 1)
	assert.Len(t, snap.Motors(), 1)
	assert.Len(t, snap.Parts(), 1)
	assert.Len(t, snap.Rules(), 1)

	_, ok := snap.EngineByID("e2")
	assert.False(t, ok, "inactive records are not resolvable")
	_, ok = snap.PartByID("p2")
	assert.False(t, ok)
}

func TestSnapshotLookups(t *testing.T) {
	snap := NewSnapshot(
		[]model.Engine{{ID: "e1", Name: "Predator 212", IsActive: true}},
		[]model.Motor{{ID: "m1", Name: "2kW BLDC", IsActive: true}},
		[]model.Part{
			snapPart("c1", model.CategoryClutch, price(30), true),
			snapPart("w1", model.CategoryWheel, price(20), true),
			snapPart("w2", model.CategoryWheel, price(25), true),
		},
		nil,
	)

	engine, ok := snap.EngineByID("e1")
	require.True(t, ok)
	assert.Equal(t, "Predator 212", engine.Name)

	motor, ok := snap.MotorByID("m1")
	require.True(t, ok)
	assert.Equal(t, "2kW BLDC", motor.Name)

	part, ok := snap.PartByID("w2")
	require.True(t, ok)
	assert.Equal(t, model.CategoryWheel, part.Category)

	wheels := snap.PartsByCategory(model.CategoryWheel)
	require.Len(t, wheels, 2)
	assert.Empty(t, snap.PartsByCategory(model.CategoryAxle))
}

func TestEmptySnapshot(t *testing.T) {
	snap := NewSnapshot(nil, nil, nil, nil)
	assert.Empty(t, snap.Engines())
	assert.Empty(t, snap.Parts())
	_, ok := snap.PartByID("anything")
	assert.False(t, ok)
	assert.Nil(t, snap.CheaperAlternatives(snapPart("x", model.CategoryClutch, price(10), true), 2))
}

func TestCheaperAlternatives(t *testing.T) {
	snap := NewSnapshot(nil, nil, []model.Part{
		snapPart("c-10", model.CategoryClutch, price(10), true),
		snapPart("c-20", model.CategoryClutch, price(20), true),
		snapPart("c-30", model.CategoryClutch, price(30), true),
		snapPart("c-50", model.CategoryClutch, price(50), true),
		snapPart("c-free", model.CategoryClutch, nil, true),
		snapPart("a-5", model.CategoryAxle, price(5), true),
	}, nil)

	selected, ok := snap.PartByID("c-50")
	require.True(t, ok)

	t.Run("cheapest first, capped", func(t *testing.T) {
		alts := snap.CheaperAlternatives(*selected, 2)
		require.Len(t, alts, 2)
		assert.Equal(t, "c-10", alts[0].ID)
		assert.Equal(t, "c-20", alts[1].ID)
	})

	t.Run("other categories and unpriced parts are excluded", func(t *testing.T) {
		alts := snap.CheaperAlternatives(*selected, 10)
		require.Len(t, alts, 3)
		for _, alt := range alts {
			assert.Equal(t, model.CategoryClutch, alt.Category)
			assert.NotNil(t, alt.Price)
		}
	})

	t.Run("nothing cheaper", func(t *testing.T) {
		cheapest, ok := snap.PartByID("c-10")
		require.True(t, ok)
		assert.Empty(t, snap.CheaperAlternatives(*cheapest, 2))
	})

	t.Run("unpriced part gets no suggestions", func(t *testing.T) {
		free, ok := snap.PartByID("c-free")
		require.True(t, ok)
		assert.Nil(t, snap.CheaperAlternatives(*free, 2))
	})
}
