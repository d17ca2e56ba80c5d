package edgegraph

import (
	"fmt"
	"os"
)

// logDebugWarning reports a non-fatal anomaly detected while classifying
// or resolving turns, e.g. a conflict region the resolver could only
// partially untangle. It never interrupts processing: the affected
// candidates simply keep whatever modifiers they had going in.
func logDebugWarning(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "warning: "+format+"\n", args...)
}

// logProgress prints a progress message when verbose is set, matching the
// teacher's fmt.Printf-gated-by-a-bool style used throughout OSM loading.
func logProgress(verbose bool, format string, args ...interface{}) {
	if !verbose {
		return
	}
	fmt.Printf(format, args...)
}
