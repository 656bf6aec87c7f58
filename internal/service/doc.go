// Package service implements the application's use cases on top of the
// domain transition engine and the storage layer. Batch operations run as
// single all-or-nothing transactions that share one reference time, so every
// word in a batch is judged against the same clock. External calls, the
// translation provider and the passage generator, always happen outside
// those transactions.
package service
