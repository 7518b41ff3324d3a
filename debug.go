package watchface

import "time"

// frameStats holds per-frame timing and command metrics.
// Only populated when the engine runs in debug mode.
type frameStats struct {
	drawTime     time.Duration
	commandCount int
	mode         PowerMode
	weatherSet   bool
}

// debugLog reports frame stats at debug level.
func (e *Engine) debugLog(stats frameStats) {
	if !e.debug {
		return
	}
	e.logger.Debug("frame drawn",
		"draw", stats.drawTime,
		"commands", stats.commandCount,
		"mode", stats.mode.String(),
		"weather", stats.weatherSet,
		"batches", countBatches(e.frame.Commands()),
	)
}

// SetDebugMode enables or disables per-frame stats logging.
func (e *Engine) SetDebugMode(enabled bool) {
	e.debug = enabled
}

// countBatches counts contiguous runs of commands sharing the same type and
// paint. This reports how many state changes a batching canvas would make.
func countBatches(commands []DrawCommand) int {
	if len(commands) == 0 {
		return 0
	}
	count := 1
	prev := commandBatchKey(&commands[0])
	for i := 1; i < len(commands); i++ {
		cur := commandBatchKey(&commands[i])
		if cur != prev {
			count++
			prev = cur
		}
	}
	return count
}

type batchKey struct {
	typ       CommandType
	style     FontStyle
	size      float64
	antiAlias bool
}

func commandBatchKey(cmd *DrawCommand) batchKey {
	return batchKey{
		typ:       cmd.Type,
		style:     cmd.Paint.Style,
		size:      cmd.Paint.Size,
		antiAlias: cmd.AntiAlias,
	}
}
