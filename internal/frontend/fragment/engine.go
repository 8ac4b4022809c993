package fragment

import (
	"context"
	"fmt"

	"github.com/TiendoLabs/tiendo-go/internal/infrastructure/observability/logging"
)

// ExecFunc activates one script. The engine supplies each script exactly
// once; the implementation decides what activation means (a browser bridge,
// a recorder in tests).
type ExecFunc func(ctx context.Context, script Script) error

// Engine activates a fragment's scripts after its markup has been swapped
// in. External scripts run sequentially in document order so dependencies
// between them hold; every activation is guarded so one failure never stops
// the rest.
type Engine struct {
	exec   ExecFunc
	logger *logging.ChanneledLogger
}

func NewEngine(exec ExecFunc, logger *logging.ChanneledLogger) (*Engine, error) {
	if exec == nil {
		return nil, fmt.Errorf("fragment engine requires an exec function")
	}
	return &Engine{exec: exec, logger: logger}, nil
}

// Activate runs every script of frag once, in document order. Failures and
// panics are logged and swallowed; the remaining scripts still activate.
// Inline script content is not retained after activation.
func (e *Engine) Activate(ctx context.Context, frag Fragment) {
	for i, script := range frag.Scripts {
		e.activateOne(ctx, i, script)
	}
}

func (e *Engine) activateOne(ctx context.Context, index int, script Script) {
	defer func() {
		if r := recover(); r != nil && e.logger != nil {
			e.logger.Fragment().Error("Script activation panicked", "index", index, "src", script.Src, "panic", fmt.Sprint(r))
		}
	}()

	if err := e.exec(ctx, script); err != nil && e.logger != nil {
		e.logger.Fragment().Warn("Script activation failed", "index", index, "src", script.Src, "error", err)
	}
}
