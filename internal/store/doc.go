// Package store defines the persistence interfaces the engine depends on,
// together with the sentinel errors shared by all implementations. The
// concrete PostgreSQL implementations live in internal/platform/postgres;
// tests substitute in-memory fakes behind the same interfaces.
package store
