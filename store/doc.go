// Package store persists ingested instances and solved schedules in
// PostgreSQL via pgxpool. It is optional: nothing else in this module
// requires a database, and cmd/rollingstock runs entirely in-memory when
// no Postgres DSN is configured.
//
// Grounded on: shivamshaw23-Hintro's pkg/db/postgres.go
// (pgxpool.ParseConfig + pool tuning + a connectivity-verifying Ping on
// construction, a standalone HealthCheck helper) and
// internal/repository's pool-holding-struct-with-query-methods shape.
package store
