// Package postgres contains the PostgreSQL implementations of the store
// interfaces, using the pgx stdlib driver, together with the embedded goose
// migrations that create the schema and seed the default prompt library.
package postgres
