// Package store defines the persistence contract for tasks.
// The interfaces here keep the service layer independent of the
// database driver; the PostgreSQL implementation lives in
// internal/platform/postgres.
package store
