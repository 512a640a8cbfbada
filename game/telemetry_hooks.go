package game

import "log/slog"

// flushTelemetry closes the stats window when due and routes the results
// to the callback, the log, and the CSV output.
func (g *Game) flushTelemetry() {
	if !g.collector.WindowDone(g.tick) {
		return
	}

	stats := g.collector.CloseWindow(g.tick, g.velocities, g.densities)
	perfStats := g.perfCollector.Stats()
	g.lastStats = &stats

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
		g.logWorldState()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteWindow(stats); err != nil {
			slog.Error("failed to write stats window", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndStep); err != nil {
			slog.Error("failed to write perf stats", "error", err)
		}
	}
}
