// Package sqlite implements the content store on SQLite.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. Store owns the database handle; ContentStore returns the
// driven.ContentStore view used by the services.
//
// # Schema
//
// The schema is managed through versioned migrations in the migrations/
// directory. Each migration is a pair of .up.sql and .down.sql files and the
// applied version is recorded in schema_migrations. Block types are stored as
// JSON in blocks.block_type.
//
// # Data Location
//
// By default, the database is stored at ~/.bismuth/data/bismuth.db
//
// # Thread Safety
//
// The pool holds a single connection and writers take a store-wide mutex,
// so a block content rewrite cannot interleave with another write.
package sqlite
