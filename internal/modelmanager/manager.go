// Package modelmanager declares the contract the pipeline definition
// subsystem expects from its external collaborator: the model manager that
// owns model lookup, loading, and reload notifications. Nothing in this
// package executes inference; it only describes what a model and a model
// instance must expose so validation and subscription can happen without
// this subsystem knowing how models are actually stored or served.
package modelmanager

import (
	"context"
	"time"

	"github.com/specialistvlad/pipelinedef/internal/pipelinemodel"
)

// Observer is notified when a subscribed Model or ModelInstance changes
// (typically: reloaded to a new version, or about to unload). The pipeline
// definition's subscription manager is the canonical Observer; the model
// holds only non-owning references to its observers, never the reverse.
type Observer interface {
	OnModelChange(ctx context.Context, modelName string, modelVersion uint64)
}

// UnloadGuard is a scoped handle that prevents a ModelInstance from
// unloading while held. Release must be safe to call more than once and on
// every exit path, including error returns.
type UnloadGuard interface {
	Release()
}

// ModelInstance is one concrete, versioned, loaded realization of a Model.
type ModelInstance interface {
	Name() string
	Version() uint64

	Subscribe(o Observer)
	Unsubscribe(o Observer)

	// WaitForLoaded blocks up to timeout for the instance to become
	// available, returning an acquired UnloadGuard on success. A zero
	// timeout performs a single non-blocking check, the mode the Runtime
	// Factory's introspection calls use.
	WaitForLoaded(ctx context.Context, timeout time.Duration) (UnloadGuard, error)

	GetInputsInfo() map[string]pipelinemodel.TensorInfo
	GetOutputsInfo() map[string]pipelinemodel.TensorInfo
	GetModelConfig() pipelinemodel.ModelConfig
}

// Model groups every loaded version of one named model and lets callers
// subscribe to it as a whole (default-version tracking) rather than to one
// specific version.
type Model interface {
	Name() string
	GetModelInstanceByVersion(version uint64) (ModelInstance, bool)

	Subscribe(o Observer)
	Unsubscribe(o Observer)
}

// Manager is the top-level external collaborator: model lookup by name or
// by (name, version). The pipeline definition subsystem assumes Manager
// implementations are thread-safe on their own; it never takes a lock
// against the manager itself.
type Manager interface {
	FindModelByName(name string) (Model, bool)
	FindModelInstance(name string, version uint64) (ModelInstance, bool)

	// Names lists every model the manager currently knows about, in no
	// particular order. It exists for diagnostics, such as "did you mean"
	// suggestions on a missing-model lookup, not for iteration in the hot
	// validation path.
	Names() []string
}
