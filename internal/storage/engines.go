package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/kartwerks/kartpick/internal/common"
	"github.com/kartwerks/kartpick/internal/model"
)

const engineColumns = `id, slug, name, brand, mount_type, shaft_type, shaft_keyway,
	displacement_cc, horsepower, torque, shaft_diameter, shaft_length,
	weight_lbs, price, is_active, created_at, updated_at`

// GetEngines retrieves all engines, active and inactive, ordered by name.
func (s *SQLiteStorage) GetEngines(ctx context.Context) ([]model.Engine, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+engineColumns+`
		FROM engines
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query engines: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var engines []model.Engine
	for rows.Next() {
		engine, scanErr := scanEngine(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		engines = append(engines, engine)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate engines: %w", err)
	}
	return engines, nil
}

// GetEngineByID retrieves a single engine.
func (s *SQLiteStorage) GetEngineByID(ctx context.Context, id string) (*model.Engine, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT `+engineColumns+`
		FROM engines
		WHERE id = ?
	`, id)

	engine, err := scanEngine(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("engine %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &engine, nil
}

// SaveEngine inserts or updates an engine.
func (s *SQLiteStorage) SaveEngine(ctx context.Context, engine *model.Engine) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateEngine(engine); err != nil {
		return err
	}

	now := time.Now().UTC()
	if engine.CreatedAt.IsZero() {
		engine.CreatedAt = now
	}
	engine.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO engines (`+engineColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			slug = excluded.slug,
			name = excluded.name,
			brand = excluded.brand,
			mount_type = excluded.mount_type,
			shaft_type = excluded.shaft_type,
			shaft_keyway = excluded.shaft_keyway,
			displacement_cc = excluded.displacement_cc,
			horsepower = excluded.horsepower,
			torque = excluded.torque,
			shaft_diameter = excluded.shaft_diameter,
			shaft_length = excluded.shaft_length,
			weight_lbs = excluded.weight_lbs,
			price = excluded.price,
			is_active = excluded.is_active,
			updated_at = excluded.updated_at
	`,
		engine.ID, nullString(engine.Slug), engine.Name, engine.Brand,
		engine.MountType, string(engine.ShaftType), engine.ShaftKeyway,
		engine.DisplacementCC, engine.Horsepower, engine.Torque,
		engine.ShaftDiameter, engine.ShaftLength, engine.WeightLbs,
		engine.Price, engine.IsActive, engine.CreatedAt, engine.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save engine: %w", err)
	}
	return nil
}

// scanner covers *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanEngine(row scanner) (model.Engine, error) {
	var engine model.Engine
	var slug, brand, mountType, shaftType sql.NullString

	err := row.Scan(
		&engine.ID, &slug, &engine.Name, &brand, &mountType, &shaftType,
		&engine.ShaftKeyway, &engine.DisplacementCC, &engine.Horsepower,
		&engine.Torque, &engine.ShaftDiameter, &engine.ShaftLength,
		&engine.WeightLbs, &engine.Price, &engine.IsActive,
		&engine.CreatedAt, &engine.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Engine{}, err
	}
	if err != nil {
		return model.Engine{}, fmt.Errorf("failed to scan engine: %w", err)
	}

	engine.Slug = slug.String
	engine.Brand = brand.String
	engine.MountType = mountType.String
	engine.ShaftType = model.ShaftType(shaftType.String)
	return engine, nil
}

// nullString maps "" to NULL so unique indexes on optional columns hold.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
