// Package postgres provides the PostgreSQL implementation of the
// store.TaskStore interface, the mapping of driver errors onto store errors,
// and the embedded goose migrations that create the schema.
package postgres
