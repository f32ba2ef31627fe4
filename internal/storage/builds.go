package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kartwerks/kartpick/internal/common"
	"github.com/kartwerks/kartpick/internal/model"
)

const buildColumns = `id, name, description, engine_id, motor_id, parts,
	total_price, created_at, updated_at`

// SaveBuild inserts or updates a saved build. Build names are unique;
// saving a new build under an existing name fails with
// common.ErrDuplicateEntry.
func (s *SQLiteStorage) SaveBuild(ctx context.Context, build *model.Build) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateBuild(build); err != nil {
		return err
	}

	parts := build.Parts
	if parts == nil {
		parts = map[model.PartCategory][]string{}
	}
	partsJSON, err := json.Marshal(parts)
	if err != nil {
		return fmt.Errorf("failed to marshal build parts: %w", err)
	}

	now := time.Now().UTC()
	if build.CreatedAt.IsZero() {
		build.CreatedAt = now
	}
	build.UpdatedAt = now

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO builds (`+buildColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			engine_id = excluded.engine_id,
			motor_id = excluded.motor_id,
			parts = excluded.parts,
			total_price = excluded.total_price,
			updated_at = excluded.updated_at
	`,
		build.ID, build.Name, build.Description, build.EngineID,
		build.MotorID, string(partsJSON), build.TotalPrice,
		build.CreatedAt, build.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: builds.name") {
			return fmt.Errorf("build name %q: %w", build.Name, common.ErrDuplicateEntry)
		}
		return fmt.Errorf("failed to save build: %w", err)
	}
	return nil
}

// GetBuild retrieves a saved build by id.
func (s *SQLiteStorage) GetBuild(ctx context.Context, id string) (*model.Build, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}
	return s.getBuildWhere(ctx, "id = ?", id)
}

// GetBuildByName retrieves a saved build by its unique name.
func (s *SQLiteStorage) GetBuildByName(ctx context.Context, name string) (*model.Build, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}
	return s.getBuildWhere(ctx, "name = ?", name)
}

func (s *SQLiteStorage) getBuildWhere(ctx context.Context, where string, arg any) (*model.Build, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+buildColumns+`
		FROM builds
		WHERE `+where,
		arg)

	build, err := scanBuild(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("build %v: %w", arg, common.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &build, nil
}

// ListBuilds retrieves all saved builds, most recently updated first.
func (s *SQLiteStorage) ListBuilds(ctx context.Context) ([]model.Build, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+buildColumns+`
		FROM builds
		ORDER BY updated_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query builds: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var builds []model.Build
	for rows.Next() {
		build, scanErr := scanBuild(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		builds = append(builds, build)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate builds: %w", err)
	}
	return builds, nil
}

// DeleteBuild removes a saved build by id.
func (s *SQLiteStorage) DeleteBuild(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM builds WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete build: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("build %s: %w", id, common.ErrNotFound)
	}
	return nil
}

func scanBuild(row scanner) (model.Build, error) {
	var build model.Build
	var description sql.NullString
	var partsJSON string

	err := row.Scan(
		&build.ID, &build.Name, &description, &build.EngineID,
		&build.MotorID, &partsJSON, &build.TotalPrice,
		&build.CreatedAt, &build.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Build{}, err
	}
	if err != nil {
		return model.Build{}, fmt.Errorf("failed to scan build: %w", err)
	}

	build.Description = description.String
	if err := json.Unmarshal([]byte(partsJSON), &build.Parts); err != nil {
		return model.Build{}, fmt.Errorf("failed to unmarshal parts for build %s: %w", build.ID, err)
	}
	return build, nil
}
