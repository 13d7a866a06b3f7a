// Package postgres provides PostgreSQL-backed implementations of the
// store interfaces. All stores operate on a store.DBTX so they can run
// against either a connection pool or an open transaction.
package postgres
