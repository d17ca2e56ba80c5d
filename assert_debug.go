// +build osm2ch_debug

package edgegraph

import "fmt"

// debugAssert panics when cond is false. It only compiles in under the
// osm2ch_debug build tag, so routine builds pay nothing for invariant
// checks that matter during development but that a well-formed Graph
// should never actually trip.
func debugAssert(cond bool, msg string) {
	if !cond {
		panic(fmt.Sprintf("assertion failed: %s", msg))
	}
}
