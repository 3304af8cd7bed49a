// Package conv provides safe integer type conversion utilities.
//
// These functions perform bounds checking when values read from disk or
// supplied by callers are narrowed to a signed or platform-sized type.
//
// For conversions that are provably safe by domain constraints (e.g., slice
// lengths widened to uint64), use direct type casts instead.
package conv
