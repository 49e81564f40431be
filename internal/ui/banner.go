package ui

import (
	"fmt"
	"io"
)

// Banner prints the startup banner, the first thing a run's stdout
// shows.
func Banner(w io.Writer) {
	fmt.Fprintln(w, "leapsbounds — bounded best-first search for minimal superpermutations")
	fmt.Fprintln(w)
}
