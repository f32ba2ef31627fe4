package build

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kartwerks/kartpick/internal/catalog"
	"github.com/kartwerks/kartpick/internal/model"
)

func testSnapshot() *catalog.Snapshot {
	return catalog.NewSnapshot(
		[]model.Engine{*gasEngine("eng-1", 200)},
		[]model.Motor{*evMotor("mtr-1", 300)},
		[]model.Part{
			*catalogPart("c1", model.CategoryClutch, 35),
			*catalogPart("a1", model.CategoryAxle, 50),
			*catalogPart("b1", model.CategoryBattery, 150),
		},
		nil,
	)
}

func TestResolveRestoresSession(t *testing.T) {
	engineID := "eng-1"
	record := model.Build{
		ID:       "bld-1",
		Name:     "Weekend racer",
		EngineID: &engineID,
		Parts: map[model.PartCategory][]string{
			model.CategoryClutch: {"c1"},
			model.CategoryAxle:   {"a1"},
		},
	}

	session := Resolve(record, testSnapshot())
	assert.Equal(t, "bld-1", session.ID())
	assert.Equal(t, "Weekend racer", session.Name())

	engine, ok := session.PowerSource().Engine()
	require.True(t, ok)
	assert.Equal(t, "eng-1", engine.ID)
	assert.True(t, session.Selection().Contains(model.CategoryClutch, "c1"))
	assert.True(t, session.Selection().Contains(model.CategoryAxle, "a1"))
}

func TestResolveDropsStaleIDs(t *testing.T) {
	engineID := "gone"
	record := model.Build{
		ID:       "bld-1",
		Name:     "Stale",
		EngineID: &engineID,
		Parts: map[model.PartCategory][]string{
			model.CategoryClutch: {"c1", "missing"},
		},
	}

	session := Resolve(record, testSnapshot())
	assert.True(t, session.PowerSource().IsNone())
	assert.True(t, session.Selection().Contains(model.CategoryClutch, "c1"))
	assert.Equal(t, 1, session.Selection().Len())
}

func TestResolveDropsFuelConflicts(t *testing.T) {
	motorID := "mtr-1"
	record := model.Build{
		ID:      "bld-1",
		Name:    "Electric",
		MotorID: &motorID,
		Parts: map[model.PartCategory][]string{
			// Clutch is gas-only; a saved electric build referencing it
			// (from an older catalog) must drop it quietly.
			model.CategoryClutch:  {"c1"},
			model.CategoryBattery: {"b1"},
		},
	}

	session := Resolve(record, testSnapshot())
	_, ok := session.PowerSource().Motor()
	require.True(t, ok)
	assert.False(t, session.Selection().Contains(model.CategoryClutch, "c1"))
	assert.True(t, session.Selection().Contains(model.CategoryBattery, "b1"))
}
