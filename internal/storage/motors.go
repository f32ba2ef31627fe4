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

const motorColumns = `id, slug, name, brand, shaft_type, voltage, power_kw,
	torque_lbft, peak_power_kw, shaft_diameter, weight_lbs, price,
	is_active, created_at, updated_at`

// GetMotors retrieves all motors, active and inactive, ordered by name.
func (s *SQLiteStorage) GetMotors(ctx context.Context) ([]model.Motor, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+motorColumns+`
		FROM motors
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query motors: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var motors []model.Motor
	for rows.Next() {
		motor, scanErr := scanMotor(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		motors = append(motors, motor)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate motors: %w", err)
	}
	return motors, nil
}

// GetMotorByID retrieves a single motor.
func (s *SQLiteStorage) GetMotorByID(ctx context.Context, id string) (*model.Motor, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT `+motorColumns+`
		FROM motors
		WHERE id = ?
	`, id)

	motor, err := scanMotor(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("motor %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &motor, nil
}

// SaveMotor inserts or updates a motor.
func (s *SQLiteStorage) SaveMotor(ctx context.Context, motor *model.Motor) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateMotor(motor); err != nil {
		return err
	}

	now := time.Now().UTC()
	if motor.CreatedAt.IsZero() {
		motor.CreatedAt = now
	}
	motor.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO motors (`+motorColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			slug = excluded.slug,
			name = excluded.name,
			brand = excluded.brand,
			shaft_type = excluded.shaft_type,
			voltage = excluded.voltage,
			power_kw = excluded.power_kw,
			torque_lbft = excluded.torque_lbft,
			peak_power_kw = excluded.peak_power_kw,
			shaft_diameter = excluded.shaft_diameter,
			weight_lbs = excluded.weight_lbs,
			price = excluded.price,
			is_active = excluded.is_active,
			updated_at = excluded.updated_at
	`,
		motor.ID, nullString(motor.Slug), motor.Name, motor.Brand,
		string(motor.ShaftType), motor.Voltage, motor.PowerKW,
		motor.TorqueLbFt, motor.PeakPowerKW, motor.ShaftDiameter,
		motor.WeightLbs, motor.Price, motor.IsActive,
		motor.CreatedAt, motor.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save motor: %w", err)
	}
	return nil
}

func scanMotor(row scanner) (model.Motor, error) {
	var motor model.Motor
	var slug, brand, shaftType sql.NullString

	err := row.Scan(
		&motor.ID, &slug, &motor.Name, &brand, &shaftType,
		&motor.Voltage, &motor.PowerKW, &motor.TorqueLbFt,
		&motor.PeakPowerKW, &motor.ShaftDiameter, &motor.WeightLbs,
		&motor.Price, &motor.IsActive, &motor.CreatedAt, &motor.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Motor{}, err
	}
	if err != nil {
		return model.Motor{}, fmt.Errorf("failed to scan motor: %w", err)
	}

	motor.Slug = slug.String
	motor.Brand = brand.String
	motor.ShaftType = model.ShaftType(shaftType.String)
	return motor, nil
}
