// Package goroutine launches background work with panic containment.
package goroutine

import (
	"runtime/debug"

	"tempus/internal/shared/logger"
)

// SafeGo runs fn in a goroutine that survives panics. The engine's
// fan-out and audit paths run through here: a panic in one of them is
// logged with its stack under the given name and the process keeps
// serving.
func SafeGo(log logger.Interface, name string, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Errorw("recovered panic in background task",
					"task", name,
					"panic", r,
					"stack", string(debug.Stack()),
				)
			}
		}()
		fn()
	}()
}
