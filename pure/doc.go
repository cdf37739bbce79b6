// Package pure answers calls to pure, narrow-domain integer functions from
// tables computed once, up front.
//
// PrecalculateI1O1 to PrecalculateI4O1 (and the two-result I1O2 and I2O2
// variants) evaluate a function over the full cartesian product of its declared
// argument ranges and return a value offering three calling conventions:
//
//   - Unchecked: a plain table read. Arguments outside their range panic.
//   - Checked: reports (value, true) in range and (zero, false) outside.
//   - Fallback: out-of-range arguments are computed by the original function.
//
// Dispatch picks Unchecked or Fallback by the mode given with WithMode or
// WithConfig. Option mode is only reachable through Checked.
//
// Every convention agrees with the original function for every in-range input.
// Tables are never populated lazily and never evicted: this is not a cache.
//
// WARNING: only tabulate functions that are pure and total over their ranges.
// A function that panics for an in-range input makes the build fail.
//
// For tables built when the program is compiled rather than when it starts, see
// the codegen package and cmd/precalcgen.
package pure
