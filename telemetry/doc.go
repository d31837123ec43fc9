// Package telemetry defines the per-phase summary sink the scheduler
// reports to after each cleaning phase, plus a no-op default and an
// optional PostgreSQL-backed implementation for runs that want
// results persisted centrally.
package telemetry
