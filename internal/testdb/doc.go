//go:build integration

// Package testdb provides helpers for integration tests that need a real
// PostgreSQL database. Tests are skipped when no database URL is configured.
// Each test runs inside a transaction that is rolled back afterwards.
package testdb
