package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kartwerks/kartpick/internal/common"
	"github.com/kartwerks/kartpick/internal/model"
	"github.com/kartwerks/kartpick/internal/service"
)

// Helper function to create test storage.
func createTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err, "failed to create storage")

	ctx := context.Background()
	require.NoError(t, store.Migrate(ctx), "failed to migrate")

	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testEngine(id string) *model.Engine {
	price := 189.99
	weight := 38.0
	keyway := "3/16"
	return &model.Engine{
		ID:             id,
		Slug:           "predator-212-" + id,
		Name:           "Predator 212",
		Brand:          "Harbor Freight",
		MountType:      "162mm x 75.5mm",
		ShaftType:      model.ShaftStraight,
		ShaftKeyway:    &keyway,
		DisplacementCC: 212,
		Horsepower:     6.5,
		Torque:         8.1,
		ShaftDiameter:  0.75,
		ShaftLength:    2.43,
		WeightLbs:      &weight,
		Price:          &price,
		IsActive:       true,
	}
}

func testMotor(id string) *model.Motor {
	price := 299.0
	return &model.Motor{
		ID:         id,
		Slug:       "bldc-2kw-" + id,
		Name:       "2kW BLDC Motor",
		Brand:      "Mophorn",
		ShaftType:  model.ShaftStraight,
		Voltage:    48,
		PowerKW:    2,
		TorqueLbFt: 6.2,
		Price:      &price,
		IsActive:   true,
	}
}

func testPart(id string, category model.PartCategory, price float64) *model.Part {
	return &model.Part{
		ID:       id,
		Slug:     "part-" + id,
		Name:     "Part " + id,
		Brand:    "GoPowerSports",
		Category: category,
		Specifications: model.Specifications{
			"bore_diameter": 0.75,
			"pitch":         "#35",
		},
		Price:    &price,
		IsActive: true,
	}
}

func TestMigrate(t *testing.T) {
	store := createTestStorage(t)

	var version int
	err := store.db.QueryRow("PRAGMA user_version").Scan(&version)
	require.NoError(t, err)
	assert.Equal(t, ExpectedSchemaVersion, version)

	// Migrating an up-to-date database is a no-op.
	require.NoError(t, store.Migrate(context.Background()))
}

func TestEngineRoundTrip(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	engine := testEngine("eng-1")
	require.NoError(t, store.SaveEngine(ctx, engine))

	got, err := store.GetEngineByID(ctx, "eng-1")
	require.NoError(t, err)
	assert.Equal(t, engine.Name, got.Name)
	assert.Equal(t, engine.ShaftType, got.ShaftType)
	assert.InDelta(t, engine.ShaftDiameter, got.ShaftDiameter, 0.0001)
	require.NotNil(t, got.Price)
	assert.InDelta(t, *engine.Price, *got.Price, 0.001)
	require.NotNil(t, got.ShaftKeyway)
	assert.Equal(t, "3/16", *got.ShaftKeyway)

	// Upsert updates in place.
	engine.Horsepower = 7.5
	require.NoError(t, store.SaveEngine(ctx, engine))
	got, err = store.GetEngineByID(ctx, "eng-1")
	require.NoError(t, err)
	assert.InDelta(t, 7.5, got.Horsepower, 0.001)

	engines, err := store.GetEngines(ctx)
	require.NoError(t, err)
	assert.Len(t, engines, 1)
}

func TestGetEngineByIDNotFound(t *testing.T) {
	store := createTestStorage(t)

	_, err := store.GetEngineByID(context.Background(), "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestMotorRoundTrip(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	motor := testMotor("mtr-1")
	require.NoError(t, store.SaveMotor(ctx, motor))

	got, err := store.GetMotorByID(ctx, "mtr-1")
	require.NoError(t, err)
	assert.InDelta(t, 48.0, got.Voltage, 0.001)
	assert.InDelta(t, 2.0, got.PowerKW, 0.001)
	assert.Nil(t, got.ShaftDiameter)

	motors, err := store.GetMotors(ctx)
	require.NoError(t, err)
	assert.Len(t, motors, 1)
}

func TestPartRoundTripAndFilters(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SavePart(ctx, testPart("p1", model.CategoryClutch, 35.99)))
	require.NoError(t, store.SavePart(ctx, testPart("p2", model.CategoryClutch, 89.99)))
	require.NoError(t, store.SavePart(ctx, testPart("p3", model.CategorySprocket, 18.50)))

	got, err := store.GetPartByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, model.CategoryClutch, got.Category)
	bore, ok := got.Specifications.Number("bore_diameter")
	require.True(t, ok, "specifications must survive the round trip")
	assert.InDelta(t, 0.75, bore, 0.0001)

	all, err := store.GetParts(ctx, service.PartFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	clutches, err := store.GetParts(ctx, service.PartFilter{Category: model.CategoryClutch})
	require.NoError(t, err)
	assert.Len(t, clutches, 2)

	maxPrice := 50.0
	cheap, err := store.GetParts(ctx, service.PartFilter{MaxPrice: &maxPrice})
	require.NoError(t, err)
	assert.Len(t, cheap, 2)

	limited, err := store.GetParts(ctx, service.PartFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestSavePartRejectsInvalid(t *testing.T) {
	store := createTestStorage(t)

	part := testPart("p1", "flux_capacitor", 10)
	err := store.SavePart(context.Background(), part)
	assert.Error(t, err)
}

func TestRuleRoundTrip(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	tolerance := 0.01
	rule := &model.CompatibilityRule{
		ID:             "rule-1",
		Name:           "Chain pitch match",
		AppliesTo:      model.FuelGas,
		SourceCategory: model.CategoryChain,
		TargetCategory: model.CategorySprocket,
		Condition: model.RuleCondition{
			SourceKey:  "pitch",
			TargetKey:  "pitch",
			Comparison: model.CompareEquals,
			Tolerance:  &tolerance,
		},
		Message:  "Chain pitch must match sprocket pitch",
		Severity: model.SeverityError,
		IsActive: true,
	}
	require.NoError(t, store.SaveCompatibilityRule(ctx, rule))

	rules, err := store.GetCompatibilityRules(ctx)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, "pitch", rules[0].Condition.SourceKey)
	require.NotNil(t, rules[0].Condition.Tolerance)
	assert.InDelta(t, 0.01, *rules[0].Condition.Tolerance, 0.0001)
	assert.Equal(t, model.SeverityError, rules[0].Severity)
}

func TestBuildRoundTrip(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	engineID := "eng-1"
	build := &model.Build{
		ID:       "bld-1",
		Name:     "Weekend racer",
		EngineID: &engineID,
		Parts: map[model.PartCategory][]string{
			model.CategoryClutch: {"p1"},
			model.CategoryWheel:  {"w1", "w2"},
		},
		TotalPrice: 412.47,
	}
	require.NoError(t, store.SaveBuild(ctx, build))

	got, err := store.GetBuild(ctx, "bld-1")
	require.NoError(t, err)
	assert.Equal(t, "Weekend racer", got.Name)
	require.NotNil(t, got.EngineID)
	assert.Equal(t, "eng-1", *got.EngineID)
	assert.Equal(t, []string{"w1", "w2"}, got.Parts[model.CategoryWheel])

	byName, err := store.GetBuildByName(ctx, "Weekend racer")
	require.NoError(t, err)
	assert.Equal(t, "bld-1", byName.ID)

	builds, err := store.ListBuilds(ctx)
	require.NoError(t, err)
	assert.Len(t, builds, 1)

	require.NoError(t, store.DeleteBuild(ctx, "bld-1"))
	_, err = store.GetBuild(ctx, "bld-1")
	assert.ErrorIs(t, err, common.ErrNotFound)

	err = store.DeleteBuild(ctx, "bld-1")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSaveBuildDuplicateName(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	for i, id := range []string{"bld-1", "bld-2"} {
		build := &model.Build{
			ID:   id,
			Name: "Weekend racer",
			Parts: map[model.PartCategory][]string{
				model.CategoryClutch: {fmt.Sprintf("p%d", i+1)},
			},
		}
		err := store.SaveBuild(ctx, build)
		if i == 0 {
			require.NoError(t, err)
		} else {
			assert.ErrorIs(t, err, common.ErrDuplicateEntry)
		}
	}
}
