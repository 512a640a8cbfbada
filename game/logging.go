package game

import (
	"fmt"
	"io"
)

// logWriter is the destination for log output.
var logWriter io.Writer

// SetLogWriter sets the log output destination.
func SetLogWriter(w io.Writer) {
	logWriter = w
}

// Logf writes a formatted log message.
func Logf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if logWriter != nil {
		fmt.Fprintln(logWriter, msg)
	} else {
		fmt.Println(msg)
	}
}

// logWorldState logs the current engine state.
func (g *Game) logWorldState() {
	Logf("=== Tick %d ===", g.tick)
	Logf("Fluid: %d particles", g.sim.Count())
	if g.cube.Broken() {
		Logf("Cube: broken into %d fragments", len(g.cube.Fragments()))
	} else {
		Logf("Cube: intact, health %.1f", g.cube.Health())
	}
	Logf("Scene entities: %d", g.scene.Count())
	Logf("")
}
