// Package validation provides field-level validation primitives shared by the
// configuration stores and the admin API. Validation failures are collected
// into a Result with machine-readable error codes rather than returned as
// bare errors, so API handlers can surface every failing field at once.
package validation
