// +build !osm2ch_debug

package edgegraph

// debugAssert is a no-op outside the osm2ch_debug build tag.
func debugAssert(cond bool, msg string) {}
