// Package testutil provides fluent builders for constructing vCon
// containers in tests without repeating boilerplate.
package testutil
