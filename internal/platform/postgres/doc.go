// Package postgres provides PostgreSQL implementations of the persistence
// interfaces defined in the store package. Each store accepts a DBTX so it can
// run against either a plain connection or an enclosing transaction.
package postgres
