// Package db provides test utilities for database operations.
//
// This file contains test helpers that should be used by all tests
// requiring database access. Using these helpers ensures:
// - In-memory databases for speed
// - Proper cleanup via t.Cleanup()
// - Consistent patterns across the codebase
package db

import (
	"testing"
)

// NewTestDB creates an in-memory database for testing.
// The database is automatically closed when the test completes.
// Schema migrations are applied automatically.
func NewTestDB(t testing.TB) *PlannerDB {
	t.Helper()

	pdb, err := OpenPlannerInMemory()
	if err != nil {
		t.Fatalf("create test db: %v", err)
	}

	t.Cleanup(func() {
		_ = pdb.Close()
	})

	return pdb
}
