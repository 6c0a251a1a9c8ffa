package scaffold

import "github.com/Alazar42/CelerisProjectStarter/internal/domain"

// Observer receives run signals for presentation. Calls come from the
// goroutine running Create and must not block for long.
type Observer interface {
	StageChanged(stage domain.Stage)
	// Downloaded receives the cumulative byte count; values never decrease within a run.
	Downloaded(total int64)
	CleanupFailed(err error)
}

// ObserverFuncs adapts optional functions to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	OnStage   func(domain.Stage)
	OnBytes   func(int64)
	OnCleanup func(error)
}

func (o ObserverFuncs) StageChanged(stage domain.Stage) {
	if o.OnStage != nil {
		o.OnStage(stage)
	}
}

func (o ObserverFuncs) Downloaded(total int64) {
	if o.OnBytes != nil {
		o.OnBytes(total)
	}
}

func (o ObserverFuncs) CleanupFailed(err error) {
	if o.OnCleanup != nil {
		o.OnCleanup(err)
	}
}

// NopObserver ignores every signal.
var NopObserver Observer = ObserverFuncs{}
