package build

import (
	"log/slog"

	"github.com/kartwerks/kartpick/internal/catalog"
	"github.com/kartwerks/kartpick/internal/model"
)

// Resolve reconstructs a session from a persisted build record by looking
// every id up in the current catalog snapshot. Ids with no matching
// catalog entry are dropped silently: the catalog may have changed since
// the build was saved, and a stale id is not an error.
func Resolve(record model.Build, snap *catalog.Snapshot) *Session {
	session := NewSession()
	session.id = record.ID
	session.name = record.Name
	session.description = record.Description

	switch {
	case record.EngineID != nil:
		if engine, ok := snap.EngineByID(*record.EngineID); ok {
			session.SetEngine(engine)
		} else {
			slog.Debug("dropping unknown engine id from saved build", "build", record.ID, "engine", *record.EngineID)
		}
	case record.MotorID != nil:
		if motor, ok := snap.MotorByID(*record.MotorID); ok {
			session.SetMotor(motor)
		} else {
			slog.Debug("dropping unknown motor id from saved build", "build", record.ID, "motor", *record.MotorID)
		}
	}

	// Iterate the category table so restored display order is stable
	// rather than map order.
	for _, info := range model.CategoryTable {
		ids, ok := record.Parts[info.Category]
		if !ok {
			continue
		}
		for _, id := range ids {
			part, found := snap.PartByID(id)
			if !found {
				slog.Debug("dropping unknown part id from saved build", "build", record.ID, "part", id)
				continue
			}
			if err := session.AddPart(part); err != nil {
				// Fuel conflicts can appear when catalog fuel tags
				// changed after the build was saved; treat like a
				// stale id.
				slog.Debug("dropping incompatible part from saved build", "build", record.ID, "part", id, "error", err)
			}
		}
	}

	return session
}
