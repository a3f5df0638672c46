package skydrift

import (
	"context"
	"log/slog"
	"time"
)

// SetDebugMode enables or disables debug mode. When enabled, per-frame
// timing and population stats are logged at debug level through Logger.
func (e *Engine) SetDebugMode(enabled bool) {
	e.debug = enabled
}

// debugLog reports one frame's stats.
func (e *Engine) debugLog(st frameStats, elapsed time.Duration) {
	if !e.debug {
		return
	}
	Logger().LogAttrs(context.Background(), slog.LevelDebug, "skydrift: frame",
		slog.Uint64("frame", e.frames),
		slog.String("scene", e.scene.String()),
		slog.Duration("elapsed", elapsed),
		slog.Int("entities", st.entities),
		slog.Int("spawned", st.spawned),
		slog.Int("culled", st.culled),
	)
}
