package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/kartwerks/kartpick/internal/build"
	"github.com/kartwerks/kartpick/internal/catalog"
	"github.com/kartwerks/kartpick/internal/config"
	"github.com/kartwerks/kartpick/internal/model"
	"github.com/kartwerks/kartpick/internal/service"
	"github.com/kartwerks/kartpick/internal/storage"
)

// initStorage initializes the storage service with proper path expansion.
func initStorage(ctx context.Context) (service.Storage, error) {
	// Get database path from config
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDBPath()
	}

	// Expand tilde and environment variables
	dbPath = config.ExpandPath(dbPath)

	// Initialize storage
	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// loadSnapshot opens storage and fetches the catalog in one step.
func loadSnapshot(ctx context.Context) (*catalog.Snapshot, service.Storage, error) {
	store, err := initStorage(ctx)
	if err != nil {
		return nil, nil, err
	}
	snap, err := catalog.Load(ctx, store)
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}
	return snap, store, nil
}

// workFilePath is where the in-progress build lives between invocations.
func workFilePath() string {
	return filepath.Join(config.Dir(), "current_build.json")
}

// loadSession reads the working build and resolves it against the
// catalog. A missing work file yields a fresh empty session.
func loadSession(snap *catalog.Snapshot) (*build.Session, error) {
	data, err := os.ReadFile(workFilePath())
	if errors.Is(err, os.ErrNotExist) {
		return build.NewSession(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read working build: %w", err)
	}

	var record model.Build
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to parse working build: %w", err)
	}
	return build.Resolve(record, snap), nil
}

// saveSession writes the working build back to disk.
func saveSession(session *build.Session) error {
	record := session.Serialize()
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize working build: %w", err)
	}

	if err := os.MkdirAll(config.Dir(), 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(workFilePath(), data, 0600); err != nil {
		return fmt.Errorf("failed to write working build: %w", err)
	}
	return nil
}
