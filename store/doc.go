// Package store defines the persistence contract for vCon containers and
// houses the in-memory implementation. Durable backends live in sub-packages
// (see store/sqlite) so callers depend only on the Store interface and the
// wiring layer decides which implementation to instantiate.
package store
