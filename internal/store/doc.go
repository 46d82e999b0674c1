// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the application's core logic, so services depend on behavior rather than
// on a specific database.
package store
