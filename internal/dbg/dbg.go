// Package dbg centralises the debug-only assertion toggle used across the
// ecm packages. It mirrors go-detour's own internal/dbg location, but
// where the teacher used that package for a throwaway navmesh query demo,
// here it hosts the single switch that lets every package decide whether
// contract checks (see spec §7, "contract violations") panic loudly during
// development or are compiled out entirely in a release build.
package dbg

import "github.com/arl/assertgo"

// Assert panics with a formatted message if cond is false, but only when
// the binary was built with the 'debug' build tag (see assertgo). In a
// release build this is a no-op, matching spec §7: contract violations are
// "represented as debug-time assertions; in release these are undefined
// behaviour (caller's responsibility)".
func Assert(cond bool, format string, args ...interface{}) {
	assert.True(cond, format, args...)
}
