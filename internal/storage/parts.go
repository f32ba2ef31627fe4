package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/kartwerks/kartpick/internal/common"
	"github.com/kartwerks/kartpick/internal/model"
	"github.com/kartwerks/kartpick/internal/service"
)

const partColumns = `id, slug, name, brand, category, specifications, price,
	is_active, created_at, updated_at`

// GetParts retrieves parts matching the filter, ordered by category then
// name. A zero filter returns everything.
func (s *SQLiteStorage) GetParts(ctx context.Context, filter service.PartFilter) ([]model.Part, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT ` + partColumns + ` FROM parts WHERE 1=1`
	var args []any

	if filter.Category != "" {
		query += ` AND category = ?`
		args = append(args, string(filter.Category))
	}
	if filter.Brand != "" {
		query += ` AND brand = ?`
		args = append(args, filter.Brand)
	}
	if filter.MinPrice != nil {
		query += ` AND price >= ?`
		args = append(args, *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query += ` AND price <= ?`
		args = append(args, *filter.MaxPrice)
	}

	query += ` ORDER BY category, name`

	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
		if filter.Offset > 0 {
			query += ` OFFSET ?`
			args = append(args, filter.Offset)
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query parts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var parts []model.Part
	for rows.Next() {
		part, scanErr := scanPart(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		parts = append(parts, part)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate parts: %w", err)
	}
	return parts, nil
}

// GetPartByID retrieves a single part.
func (s *SQLiteStorage) GetPartByID(ctx context.Context, id string) (*model.Part, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT `+partColumns+`
		FROM parts
		WHERE id = ?
	`, id)

	part, err := scanPart(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("part %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &part, nil
}

// SavePart inserts or updates a part. Specifications are stored as JSON.
func (s *SQLiteStorage) SavePart(ctx context.Context, part *model.Part) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validatePart(part); err != nil {
		return err
	}

	specs := part.Specifications
	if specs == nil {
		specs = model.Specifications{}
	}
	specsJSON, err := json.Marshal(specs)
	if err != nil {
		return fmt.Errorf("failed to marshal specifications: %w", err)
	}

	now := time.Now().UTC()
	if part.CreatedAt.IsZero() {
		part.CreatedAt = now
	}
	part.UpdatedAt = now

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO parts (`+partColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			slug = excluded.slug,
			name = excluded.name,
			brand = excluded.brand,
			category = excluded.category,
			specifications = excluded.specifications,
			price = excluded.price,
			is_active = excluded.is_active,
			updated_at = excluded.updated_at
	`,
		part.ID, nullString(part.Slug), part.Name, part.Brand,
		string(part.Category), string(specsJSON), part.Price,
		part.IsActive, part.CreatedAt, part.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save part: %w", err)
	}
	return nil
}

func scanPart(row scanner) (model.Part, error) {
	var part model.Part
	var slug, brand sql.NullString
	var category, specsJSON string

	err := row.Scan(
		&part.ID, &slug, &part.Name, &brand, &category, &specsJSON,
		&part.Price, &part.IsActive, &part.CreatedAt, &part.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Part{}, err
	}
	if err != nil {
		return model.Part{}, fmt.Errorf("failed to scan part: %w", err)
	}

	part.Slug = slug.String
	part.Brand = brand.String
	part.Category = model.PartCategory(category)
	if err := json.Unmarshal([]byte(specsJSON), &part.Specifications); err != nil {
		return model.Part{}, fmt.Errorf("failed to unmarshal specifications for part %s: %w", part.ID, err)
	}
	return part, nil
}
