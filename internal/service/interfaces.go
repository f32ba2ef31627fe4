// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/kartwerks/kartpick/internal/model"
)

// PartFilter defines filtering options for part queries. Zero values mean
// "no constraint".
type PartFilter struct {
	MinPrice *float64
	MaxPrice *float64
	Category model.PartCategory
	Brand    string
	Limit    int
	Offset   int
}

// CatalogStore is the contract for the catalog provider. Every method may
// return an empty slice; empty is valid, not an error.
type CatalogStore interface {
	// Engine operations
	GetEngines(ctx context.Context) ([]model.Engine, error)
	GetEngineByID(ctx context.Context, id string) (*model.Engine, error)
	SaveEngine(ctx context.Context, engine *model.Engine) error

	// Motor operations
	GetMotors(ctx context.Context) ([]model.Motor, error)
	GetMotorByID(ctx context.Context, id string) (*model.Motor, error)
	SaveMotor(ctx context.Context, motor *model.Motor) error

	// Part operations
	GetParts(ctx context.Context, filter PartFilter) ([]model.Part, error)
	GetPartByID(ctx context.Context, id string) (*model.Part, error)
	SavePart(ctx context.Context, part *model.Part) error

	// Compatibility rule operations
	GetCompatibilityRules(ctx context.Context) ([]model.CompatibilityRule, error)
	SaveCompatibilityRule(ctx context.Context, rule *model.CompatibilityRule) error
}

// BuildStore is the contract for saved-build persistence.
type BuildStore interface {
	SaveBuild(ctx context.Context, record *model.Build) error
	GetBuild(ctx context.Context, id string) (*model.Build, error)
	GetBuildByName(ctx context.Context, name string) (*model.Build, error)
	ListBuilds(ctx context.Context) ([]model.Build, error)
	DeleteBuild(ctx context.Context, id string) error
}

// Storage is the combined persistence contract.
type Storage interface {
	CatalogStore
	BuildStore

	Migrate(ctx context.Context) error
	Close() error
}
